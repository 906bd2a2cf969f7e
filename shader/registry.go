package shader

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/deferred"
	"github.com/gogpu/deferred/lights"
	"github.com/gogpu/wgpu/hal"
)

// Registry errors.
var (
	// ErrEmptySource is returned when registering a shader without code.
	ErrEmptySource = errors.New("shader: empty source")

	// ErrDuplicateName is returned when a name is registered twice.
	ErrDuplicateName = errors.New("shader: duplicate name")

	// ErrUnknownShader is returned when looking up an unregistered shader.
	ErrUnknownShader = errors.New("shader: unknown shader")
)

// Shader is a compiled light shader.
type Shader struct {
	ID     lights.ShaderID
	Name   string
	Source string
	SPIRV  []uint32

	// Module is nil unless the registry was created with a device.
	Module hal.ShaderModule
}

// Option configures a Registry.
type Option func(*Registry)

// WithDevice makes the registry create a shader module for every shader
// on the given device. The registry owns the modules; release them with
// Destroy.
func WithDevice(device hal.Device) Option {
	return func(r *Registry) {
		r.device = device
	}
}

// WithCompiler replaces the WGSL compiler. The default is CompileToSPIRV.
func WithCompiler(c Compiler) Option {
	return func(r *Registry) {
		if c != nil {
			r.compile = c
		}
	}
}

// Registry maps light shader ids to compiled shaders.
//
// Ids are assigned in registration order starting at 1, so the zero
// ShaderID never names a shader. Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	shaders []*Shader
	byName  map[string]*Shader

	device  hal.Device
	compile Compiler
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		byName:  make(map[string]*Shader),
		compile: CompileToSPIRV,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register compiles a WGSL shader and assigns it the next id.
func (r *Registry) Register(name, wgsl string) (lights.ShaderID, error) {
	if strings.TrimSpace(wgsl) == "" {
		return 0, fmt.Errorf("%w: %q", ErrEmptySource, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[name]; ok {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	spirv, err := r.compile(wgsl)
	if err != nil {
		return 0, fmt.Errorf("shader %q: %w", name, err)
	}

	s := &Shader{
		ID:     lights.ShaderID(len(r.shaders) + 1),
		Name:   name,
		Source: wgsl,
		SPIRV:  spirv,
	}
	if r.device != nil {
		module, err := createModule(r.device, name, spirv)
		if err != nil {
			return 0, fmt.Errorf("shader %q: create module: %w", name, err)
		}
		s.Module = module
	}

	r.shaders = append(r.shaders, s)
	r.byName[name] = s

	deferred.Logger().Debug("shader: registered",
		"name", name,
		"id", s.ID,
		"words", len(spirv),
		"module", s.Module != nil)
	return s.ID, nil
}

// RegisterBuiltins registers every shader returned by Builtins.
func (r *Registry) RegisterBuiltins() error {
	for _, src := range Builtins() {
		if _, err := r.Register(src.Name, src.WGSL); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the shader with the given id.
func (r *Registry) Lookup(id lights.ShaderID) (*Shader, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id == 0 || int(id) > len(r.shaders) {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownShader, id)
	}
	return r.shaders[id-1], nil
}

// ByName returns the shader registered under name.
func (r *Registry) ByName(name string) (*Shader, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShader, name)
	}
	return s, nil
}

// Len returns the number of registered shaders.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.shaders)
}

// Destroy releases the shader modules created on the registry's device.
// The registry keeps its shaders, but their modules are nil afterwards.
func (r *Registry) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.device == nil {
		return
	}
	for _, s := range r.shaders {
		if s.Module != nil {
			r.device.DestroyShaderModule(s.Module)
			s.Module = nil
		}
	}
}
