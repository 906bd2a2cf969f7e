package debug

import (
	"image"
	"image/color"

	"github.com/gogpu/deferred/lights"
	"golang.org/x/image/colornames"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const padding = 8

// palette colors shader batches by shader id.
var palette = []color.RGBA{
	colornames.Steelblue,
	colornames.Darkorange,
	colornames.Seagreen,
	colornames.Crimson,
	colornames.Mediumpurple,
	colornames.Goldenrod,
	colornames.Teal,
	colornames.Hotpink,
}

// ShaderColor returns the bar color of a shader.
func ShaderColor(s lights.ShaderID) color.RGBA {
	return palette[int(s%lights.ShaderID(len(palette)))]
}

// layout holds the geometry of a rendered traversal.
type layout struct {
	labelWidth int
	barX       int
	width      int
	height     int
}

func (v *Visualizer) layout() layout {
	summary := font.MeasureString(v.face, v.Summary()).Ceil()

	var l layout
	maxLights := 0
	for _, r := range v.rows {
		if w := font.MeasureString(v.face, v.label(r)).Ceil(); w > l.labelWidth {
			l.labelWidth = w
		}
		maxLights = max(maxLights, r.Lights())
	}
	l.barX = padding + l.labelWidth + padding
	l.width = max(l.barX+maxLights*v.opts.lightWidth+padding, padding+summary+padding)
	l.height = padding + (len(v.rows)+1)*v.opts.rowHeight + padding
	return l
}

// rowTop returns the y coordinate of row i. Row -1 is the summary line.
func (v *Visualizer) rowTop(i int) int {
	return padding + (i+1)*v.opts.rowHeight
}

// BarBounds returns the rectangle of batch b of row i in an unscaled
// rendering.
func (v *Visualizer) BarBounds(i, b int) image.Rectangle {
	l := v.layout()
	x := l.barX
	for _, prev := range v.rows[i].Batches[:b] {
		x += prev.Lights() * v.opts.lightWidth
	}
	y := v.rowTop(i)
	w := v.rows[i].Batches[b].Lights() * v.opts.lightWidth
	return image.Rect(x, y+3, x+w, y+v.opts.rowHeight-3)
}

// Render draws the rows of the last traversal.
func (v *Visualizer) Render() *image.RGBA {
	l := v.layout()
	img := image.NewRGBA(image.Rect(0, 0, l.width, l.height))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(v.opts.background), image.Point{}, xdraw.Src)

	v.drawText(img, padding, v.rowTop(-1), v.Summary())

	for i, r := range v.rows {
		v.drawText(img, padding, v.rowTop(i), v.label(r))
		for b, batch := range r.Batches {
			bar := v.BarBounds(i, b)
			xdraw.Draw(img, bar, image.NewUniform(ShaderColor(batch.Shader)), image.Point{}, xdraw.Src)

			// Separate array runs.
			x := bar.Min.X
			for _, run := range batch.Runs[:max(len(batch.Runs)-1, 0)] {
				x += run * v.opts.lightWidth
				sep := image.Rect(x, bar.Min.Y, x+1, bar.Max.Y)
				xdraw.Draw(img, sep, image.NewUniform(v.opts.background), image.Point{}, xdraw.Src)
			}
		}
	}

	if v.opts.scale == 1 {
		return img
	}
	scaled := image.NewRGBA(image.Rect(0, 0, l.width*v.opts.scale, l.height*v.opts.scale))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return scaled
}

// drawText draws s with its baseline centered in the row starting at top.
func (v *Visualizer) drawText(dst *image.RGBA, x, top int, s string) {
	m := v.face.Metrics()
	baseline := top + (v.opts.rowHeight+m.Ascent.Ceil()-m.Descent.Ceil())/2
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(v.opts.foreground),
		Face: v.face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(s)
}
