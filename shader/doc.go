// Package shader manages the WGSL light shaders of the deferred light pass.
//
// A Registry assigns each named shader a lights.ShaderID, compiles it to
// SPIR-V once with naga, and, when given a HAL device, creates the shader
// module the pipeline factory binds.
//
//	reg := shader.NewRegistry(shader.WithDevice(device))
//	defer reg.Destroy()
//	if err := reg.RegisterBuiltins(); err != nil {
//	    return err
//	}
//	point, _ := reg.ByName(shader.PointLight)
package shader
