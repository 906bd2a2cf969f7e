package lightpass

import (
	"fmt"

	"github.com/gogpu/deferred"
	"github.com/gogpu/deferred/internal/cache"
	"github.com/gogpu/deferred/lights"
	"github.com/gogpu/deferred/stencil"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Stats reports what the renderer drew.
type Stats struct {
	// Frames is the number of completed traversals.
	Frames int

	// The remaining counters cover the last traversal.
	Containers  int
	ClipVolumes int
	ShaderBinds int
	ArrayBinds  int
	Lights      int

	// Pipelines describes the pipeline cache over the renderer's lifetime.
	Pipelines cache.Stats
}

// Renderer draws a light graph. It implements lights.Consumer.
//
// A Renderer may be used for any number of traversals but only one at a
// time. It is not safe for concurrent use.
type Renderer struct {
	factory     PipelineFactory
	drawer      LightDrawer
	clipVolumes ClipVolumeDrawer

	target       gputypes.TextureFormat
	depthStencil gputypes.TextureFormat

	pipelines *cache.LRU[PipelineKey, hal.RenderPipeline]

	// retired holds pipelines evicted during a frame. Draws recorded
	// earlier in the frame may still reference them, so they are
	// destroyed once the frame is finished.
	retired []hal.RenderPipeline
	inFrame bool

	stats  Stats
	closed bool
}

// Ensure Renderer implements lights.Consumer.
var _ lights.Consumer = (*Renderer)(nil)

// New creates a renderer. device may be nil, in which case it behaves like
// NullDeviceHandle.
func New(device DeviceHandle, factory PipelineFactory, drawer LightDrawer, opts ...Option) (*Renderer, error) {
	if factory == nil {
		return nil, ErrNilFactory
	}
	if drawer == nil {
		return nil, ErrNilDrawer
	}
	if device == nil {
		device = NullDeviceHandle{}
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.target == gputypes.TextureFormatUndefined {
		o.target = device.SurfaceFormat()
	}
	if o.target == gputypes.TextureFormatUndefined {
		o.target = gputypes.TextureFormatBGRA8Unorm
	}

	r := &Renderer{
		factory:      factory,
		drawer:       drawer,
		clipVolumes:  o.clipVolumes,
		target:       o.target,
		depthStencil: o.depthStencil,
	}
	r.pipelines = cache.NewLRU(o.cacheSize, func(k PipelineKey, p hal.RenderPipeline) {
		if r.inFrame {
			deferred.Logger().Debug("lightpass: pipeline retired", "key", k.String())
			r.retired = append(r.retired, p)
			return
		}
		deferred.Logger().Debug("lightpass: pipeline released", "key", k.String())
		r.factory.DestroyPipeline(p)
	})
	return r, nil
}

// TargetFormat returns the color format pipelines are created for.
func (r *Renderer) TargetFormat() gputypes.TextureFormat {
	return r.target
}

// Stats returns drawing statistics.
func (r *Renderer) Stats() Stats {
	s := r.stats
	s.Pipelines = r.pipelines.Stats()
	return s
}

// Close destroys every cached pipeline, including pipelines retired by a
// traversal that was aborted. The renderer cannot be used afterwards.
// Close is idempotent.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.inFrame = false
	r.pipelines.Clear()
	r.releaseRetired()
}

// releaseRetired destroys the pipelines evicted during the last frame.
func (r *Renderer) releaseRetired() {
	for i, p := range r.retired {
		r.factory.DestroyPipeline(p)
		r.retired[i] = nil
	}
	r.retired = r.retired[:0]
}

// OnStart begins a traversal.
func (r *Renderer) OnStart() error {
	if r.closed {
		return ErrClosed
	}
	frames := r.stats.Frames
	r.stats = Stats{Frames: frames}
	r.inFrame = true
	return nil
}

// OnStartGroup returns the consumer drawing the lights of a group.
func (r *Renderer) OnStartGroup(group lights.GroupID) (lights.ContainerConsumer, error) {
	c := lights.Container{Kind: lights.ContainerGroup, Group: group}
	return &containerPass{r: r, dc: newDrawContext(c, stencil.ModeGroupLight)}, nil
}

// OnStartClipGroup returns the consumer drawing the lights of a clip group.
func (r *Renderer) OnStartClipGroup(instance lights.InstanceID, group lights.GroupID) (lights.ContainerConsumer, error) {
	if r.clipVolumes == nil {
		return nil, ErrNoClipVolumeDrawer
	}
	c := lights.Container{Kind: lights.ContainerClipGroup, Group: group, Instance: instance}
	return &containerPass{r: r, dc: newDrawContext(c, stencil.ModeClipVolume)}, nil
}

// OnFinish ends a traversal.
func (r *Renderer) OnFinish() error {
	r.inFrame = false
	r.releaseRetired()
	r.stats.Frames++
	deferred.Logger().Debug("lightpass: frame drawn",
		"containers", r.stats.Containers,
		"clip_volumes", r.stats.ClipVolumes,
		"shader_binds", r.stats.ShaderBinds,
		"array_binds", r.stats.ArrayBinds,
		"lights", r.stats.Lights)
	return nil
}

// pipeline returns the cached pipeline for the shader in the current mode.
func (r *Renderer) pipeline(shader lights.ShaderID, mode stencil.Mode) (hal.RenderPipeline, error) {
	key := PipelineKey{
		Shader:       shader,
		Mode:         mode,
		Target:       r.target,
		DepthStencil: r.depthStencil,
	}
	return r.pipelines.GetOrCreate(key, func() (hal.RenderPipeline, error) {
		p, err := r.factory.CreatePipeline(key)
		if err != nil {
			deferred.Logger().Warn("lightpass: pipeline creation failed", "key", key.String(), "err", err)
			return nil, err
		}
		deferred.Logger().Debug("lightpass: pipeline created", "key", key.String())
		return p, nil
	})
}

// containerPass draws one container. Its DrawContext lives exactly as
// long as the container.
type containerPass struct {
	r  *Renderer
	dc *DrawContext
}

func (p *containerPass) clip() bool {
	return p.dc.Container.Kind == lights.ContainerClipGroup
}

func (p *containerPass) OnStart() error {
	p.r.stats.Containers++
	if !p.clip() {
		return nil
	}
	// Mark the volume, then draw the lights inside it.
	if err := p.drawVolume(stencil.ModeClipVolume); err != nil {
		return err
	}
	p.dc.setMode(stencil.ModeClipLight)
	return nil
}

func (p *containerPass) drawVolume(mode stencil.Mode) error {
	p.dc.setMode(mode)
	p.r.stats.ClipVolumes++
	if err := p.r.clipVolumes.DrawClipVolume(p.dc, p.dc.Container.Instance); err != nil {
		return fmt.Errorf("lightpass: clip volume %d (%s): %w", p.dc.Container.Instance, mode, err)
	}
	return nil
}

func (p *containerPass) OnLightShaderStart(shader lights.ShaderID) error {
	pl, err := p.r.pipeline(shader, p.dc.Mode)
	if err != nil {
		return err
	}
	p.dc.Shader = shader
	p.dc.Pipeline = pl
	p.r.stats.ShaderBinds++
	return p.r.drawer.BindShader(p.dc, shader)
}

func (p *containerPass) OnLightArrayStart(light lights.LightID) error {
	p.dc.ArrayLight = light
	p.r.stats.ArrayBinds++
	return p.r.drawer.BindArray(p.dc, light)
}

func (p *containerPass) OnLight(shader lights.ShaderID, light lights.LightID) error {
	p.r.stats.Lights++
	return p.r.drawer.DrawLight(p.dc, shader, light)
}

func (p *containerPass) OnLightShaderFinish(lights.ShaderID) error {
	p.dc.endShader()
	return nil
}

func (p *containerPass) OnFinish() error {
	if p.clip() {
		return p.drawVolume(stencil.ModeClipClear)
	}
	return nil
}
