package lightpass

import (
	"fmt"

	"github.com/gogpu/deferred/lights"
	"github.com/gogpu/deferred/shader"
	"github.com/gogpu/deferred/stencil"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// PipelineKey identifies a light pipeline.
type PipelineKey struct {
	Shader       lights.ShaderID
	Mode         stencil.Mode
	Target       gputypes.TextureFormat
	DepthStencil gputypes.TextureFormat
}

// String formats the key for labels and logs.
func (k PipelineKey) String() string {
	return fmt.Sprintf("light_%d_%s", k.Shader, k.Mode)
}

// PipelineFactory creates and destroys light pipelines.
type PipelineFactory interface {
	CreatePipeline(key PipelineKey) (hal.RenderPipeline, error)
	DestroyPipeline(p hal.RenderPipeline)
}

// volumeVertexStride is the byte stride of a light volume vertex:
// 3 x float32 (x, y, z) = 12 bytes.
const volumeVertexStride = 12

// HALPipelineFactory builds light pipelines on a HAL device from the
// modules of a shader registry. Every shader must provide vs_main and
// fs_main entry points.
type HALPipelineFactory struct {
	device  hal.Device
	shaders *shader.Registry
	layout  hal.PipelineLayout
}

// NewHALPipelineFactory creates a factory whose pipelines use the given
// bind group layouts. The registry must have been created with the same
// device.
func NewHALPipelineFactory(device hal.Device, shaders *shader.Registry, bindLayouts ...hal.BindGroupLayout) (*HALPipelineFactory, error) {
	if device == nil {
		return nil, fmt.Errorf("lightpass: nil device")
	}
	layout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "light_pipe_layout",
		BindGroupLayouts: bindLayouts,
	})
	if err != nil {
		return nil, fmt.Errorf("lightpass: create pipeline layout: %w", err)
	}
	return &HALPipelineFactory{device: device, shaders: shaders, layout: layout}, nil
}

// CreatePipeline creates the pipeline for key. Lights are blended
// additively; the stencil state comes from stencil.State.
func (f *HALPipelineFactory) CreatePipeline(key PipelineKey) (hal.RenderPipeline, error) {
	s, err := f.shaders.Lookup(key.Shader)
	if err != nil {
		return nil, err
	}
	if s.Module == nil {
		return nil, fmt.Errorf("lightpass: shader %q has no module", s.Name)
	}

	additive := gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOne,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOne,
			Operation: gputypes.BlendOperationAdd,
		},
	}

	p, err := f.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  key.String(),
		Layout: f.layout,
		Vertex: hal.VertexState{
			Module:     s.Module,
			EntryPoint: "vs_main",
			Buffers: []gputypes.VertexBufferLayout{
				{
					ArrayStride: volumeVertexStride,
					StepMode:    gputypes.VertexStepModeVertex,
					Attributes: []gputypes.VertexAttribute{
						{
							Format:         gputypes.VertexFormatFloat32x3,
							Offset:         0,
							ShaderLocation: 0,
						},
					},
				},
			},
		},
		Fragment: &hal.FragmentState{
			Module:     s.Module,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    key.Target,
					Blend:     &additive,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: stencil.State(key.Mode, key.DepthStencil),
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("lightpass: create pipeline %s: %w", key, err)
	}
	return p, nil
}

// DestroyPipeline releases a pipeline created by CreatePipeline.
func (f *HALPipelineFactory) DestroyPipeline(p hal.RenderPipeline) {
	if p != nil {
		f.device.DestroyRenderPipeline(p)
	}
}

// Destroy releases the pipeline layout. Pipelines must be destroyed first.
func (f *HALPipelineFactory) Destroy() {
	if f.layout != nil {
		f.device.DestroyPipelineLayout(f.layout)
		f.layout = nil
	}
}
