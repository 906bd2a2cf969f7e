package shader

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// Names of the built-in shaders.
const (
	PointLight   = "point_light"
	AmbientLight = "ambient_light"
	ClipVolume   = "clip_volume"
)

//go:embed shaders/point_light.wgsl
var pointLightSource string

//go:embed shaders/ambient_light.wgsl
var ambientLightSource string

//go:embed shaders/clip_volume.wgsl
var clipVolumeSource string

// Source is a named WGSL shader.
type Source struct {
	Name string
	WGSL string
}

// Builtins returns the shaders shipped with the light pass, in
// registration order.
func Builtins() []Source {
	return []Source{
		{Name: PointLight, WGSL: pointLightSource},
		{Name: AmbientLight, WGSL: ambientLightSource},
		{Name: ClipVolume, WGSL: clipVolumeSource},
	}
}

// Compiler turns WGSL source into SPIR-V words.
type Compiler func(wgsl string) ([]uint32, error)

// CompileToSPIRV compiles WGSL source to SPIR-V with naga.
func CompileToSPIRV(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("shader: compile: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("shader: compile: SPIR-V length %d is not a multiple of 4", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

func createModule(device hal.Device, label string, spirv []uint32) (hal.ShaderModule, error) {
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			SPIRV: spirv,
		},
	})
}
