package lightpass

import (
	"github.com/gogpu/deferred/lights"
	"github.com/gogpu/deferred/stencil"
	"github.com/gogpu/wgpu/hal"
)

// DrawContext describes the state a draw call is made in.
//
// The renderer creates one DrawContext per container and passes it to
// every drawer callback for that container. Drawers may read it but must
// not keep it after the callback returns.
type DrawContext struct {
	// Container is the group or clip group being drawn.
	Container lights.Container

	// Mode and StencilReference select the stencil test. Bind the
	// reference with SetStencilReference before drawing.
	Mode             stencil.Mode
	StencilReference uint32

	// Shader and Pipeline are the current shader batch. They are zero
	// outside a batch and while drawing clip volumes.
	Shader   lights.ShaderID
	Pipeline hal.RenderPipeline

	// ArrayLight is the first light of the current array run.
	ArrayLight lights.LightID
}

func newDrawContext(c lights.Container, mode stencil.Mode) *DrawContext {
	return &DrawContext{
		Container:        c,
		Mode:             mode,
		StencilReference: stencil.Reference(mode, int(c.Group)),
	}
}

// setMode switches the stencil configuration and drops the shader batch.
func (dc *DrawContext) setMode(mode stencil.Mode) {
	dc.Mode = mode
	dc.StencilReference = stencil.Reference(mode, int(dc.Container.Group))
	dc.endShader()
}

func (dc *DrawContext) endShader() {
	dc.Shader = 0
	dc.Pipeline = nil
	dc.ArrayLight = 0
}
