package debug

import (
	"fmt"

	"github.com/gogpu/deferred/lights"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/text/message"
)

// Batch is one shader batch of a row.
type Batch struct {
	Shader lights.ShaderID

	// Runs holds the number of lights of each vertex array run.
	Runs []int
}

// Lights returns the number of lights in the batch.
func (b Batch) Lights() int {
	n := 0
	for _, r := range b.Runs {
		n += r
	}
	return n
}

// Row is the record of one visited container.
type Row struct {
	Container lights.Container
	Batches   []Batch
}

// Lights returns the number of lights in the row.
func (r Row) Lights() int {
	n := 0
	for _, b := range r.Batches {
		n += b.Lights()
	}
	return n
}

// Visualizer records a traversal. It implements lights.Consumer.
//
// Each traversal replaces the rows of the previous one.
type Visualizer struct {
	opts    options
	face    font.Face
	printer *message.Printer

	rows []Row
}

// Ensure Visualizer implements lights.Consumer.
var _ lights.Consumer = (*Visualizer)(nil)

// NewVisualizer creates a visualizer labelling rows with the Go Regular
// font.
func NewVisualizer(opts ...Option) (*Visualizer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("debug: parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    o.fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("debug: create face: %w", err)
	}

	return &Visualizer{
		opts:    o,
		face:    face,
		printer: message.NewPrinter(o.locale),
	}, nil
}

// Close releases the font face.
func (v *Visualizer) Close() error {
	return v.face.Close()
}

// Rows returns the rows of the last traversal.
func (v *Visualizer) Rows() []Row {
	return v.rows
}

// Summary returns a one-line description of the last traversal with counts
// formatted for the configured locale.
func (v *Visualizer) Summary() string {
	containers, batches, runs, lightsN := 0, 0, 0, 0
	for _, r := range v.rows {
		containers++
		for _, b := range r.Batches {
			batches++
			runs += len(b.Runs)
			lightsN += b.Lights()
		}
	}
	return v.printer.Sprintf("%d containers, %d shader batches, %d array runs, %d lights",
		containers, batches, runs, lightsN)
}

// label returns the text drawn in front of a row.
func (v *Visualizer) label(r Row) string {
	c := r.Container
	if c.Kind == lights.ContainerClipGroup {
		return v.printer.Sprintf("clip %d/g%d (%d)", c.Instance, c.Group, r.Lights())
	}
	return v.printer.Sprintf("group %d (%d)", c.Group, r.Lights())
}

// OnStart discards the rows of the previous traversal.
func (v *Visualizer) OnStart() error {
	v.rows = v.rows[:0]
	return nil
}

// OnStartGroup starts a row for a group.
func (v *Visualizer) OnStartGroup(group lights.GroupID) (lights.ContainerConsumer, error) {
	return v.startRow(lights.Container{Kind: lights.ContainerGroup, Group: group}), nil
}

// OnStartClipGroup starts a row for a clip group.
func (v *Visualizer) OnStartClipGroup(instance lights.InstanceID, group lights.GroupID) (lights.ContainerConsumer, error) {
	return v.startRow(lights.Container{Kind: lights.ContainerClipGroup, Group: group, Instance: instance}), nil
}

// OnFinish ends the traversal.
func (v *Visualizer) OnFinish() error {
	return nil
}

func (v *Visualizer) startRow(c lights.Container) *rowRecorder {
	v.rows = append(v.rows, Row{Container: c})
	return &rowRecorder{row: &v.rows[len(v.rows)-1]}
}

// rowRecorder fills one Row. The row pointer stays valid because rows are
// only appended between containers.
type rowRecorder struct {
	row *Row
}

func (r *rowRecorder) OnStart() error { return nil }

func (r *rowRecorder) OnLightShaderStart(shader lights.ShaderID) error {
	r.row.Batches = append(r.row.Batches, Batch{Shader: shader})
	return nil
}

func (r *rowRecorder) OnLightArrayStart(lights.LightID) error {
	b := &r.row.Batches[len(r.row.Batches)-1]
	b.Runs = append(b.Runs, 0)
	return nil
}

func (r *rowRecorder) OnLight(lights.ShaderID, lights.LightID) error {
	b := &r.row.Batches[len(r.row.Batches)-1]
	b.Runs[len(b.Runs)-1]++
	return nil
}

func (r *rowRecorder) OnLightShaderFinish(lights.ShaderID) error { return nil }

func (r *rowRecorder) OnFinish() error { return nil }
