package lightpass

import (
	"github.com/gogpu/deferred/lights"
)

// LightDrawer records the draw commands of individual lights. It is
// implemented by the host, which owns the render pass, the light uniforms
// and the volume meshes.
type LightDrawer interface {
	// BindShader is called at the start of a shader batch with the
	// pipeline selected for dc.Mode. The drawer sets the pipeline and
	// dc.StencilReference on its render pass.
	BindShader(dc *DrawContext, shader lights.ShaderID) error

	// BindArray is called when a run of lights sharing a vertex array
	// starts. light is the first light of the run.
	BindArray(dc *DrawContext, light lights.LightID) error

	// DrawLight draws one light.
	DrawLight(dc *DrawContext, shader lights.ShaderID, light lights.LightID) error
}

// ClipVolumeDrawer rasterizes the volume of a clipping instance into the
// stencil buffer. It is called twice per clip group: with dc.Mode set to
// stencil.ModeClipVolume before the lights, and to stencil.ModeClipClear
// after them. The drawer selects a pipeline with stencil.State(dc.Mode, ...)
// and color writes disabled.
type ClipVolumeDrawer interface {
	DrawClipVolume(dc *DrawContext, instance lights.InstanceID) error
}

// ClipVolumeDrawerFunc adapts a function to ClipVolumeDrawer.
type ClipVolumeDrawerFunc func(dc *DrawContext, instance lights.InstanceID) error

// DrawClipVolume calls f(dc, instance).
func (f ClipVolumeDrawerFunc) DrawClipVolume(dc *DrawContext, instance lights.InstanceID) error {
	return f(dc, instance)
}
