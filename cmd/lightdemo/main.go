// Command lightdemo builds a random frame of lights, draws it through the
// light pass on a noop GPU device and saves a picture of the batching.
package main

import (
	"flag"
	"image/png"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/gogpu/deferred"
	"github.com/gogpu/deferred/debug"
	"github.com/gogpu/deferred/lightpass"
	"github.com/gogpu/deferred/lights"
	"github.com/gogpu/deferred/shader"
	"github.com/gogpu/deferred/stencil"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

type frameConfig struct {
	groups  int
	lights  int
	arrays  int
	clips   int
	clipMax int
}

func main() {
	var (
		groups  = flag.Int("groups", 3, "number of light groups")
		count   = flag.Int("lights", 40, "number of directly visible lights")
		arrays  = flag.Int("arrays", 3, "number of light volume arrays")
		clips   = flag.Int("clips", 2, "number of clip groups")
		clipMax = flag.Int("clip-lights", 6, "maximum lights per clip group")
		seed    = flag.Uint64("seed", 1, "random seed")
		scale   = flag.Int("scale", 2, "image scale factor")
		output  = flag.String("output", "lights.png", "output file")
		verbose = flag.Bool("v", false, "log light pass details")
	)
	flag.Parse()

	if *verbose {
		deferred.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if *groups < 1 || *groups >= stencil.MaximumGroups {
		log.Fatalf("groups must be in [1, %d)", stencil.MaximumGroups)
	}

	device, cleanup, err := openNoopDevice()
	if err != nil {
		log.Fatalf("Failed to open device: %v", err)
	}
	defer cleanup()

	reg := shader.NewRegistry(shader.WithDevice(device))
	defer reg.Destroy()
	if err := reg.RegisterBuiltins(); err != nil {
		log.Fatalf("Failed to register shaders: %v", err)
	}
	shaders, err := lightShaders(reg)
	if err != nil {
		log.Fatalf("Failed to look up shaders: %v", err)
	}

	factory, err := lightpass.NewHALPipelineFactory(device, reg)
	if err != nil {
		log.Fatalf("Failed to create pipeline factory: %v", err)
	}
	defer factory.Destroy()

	var calls drawCounter
	renderer, err := lightpass.New(lightpass.NullDeviceHandle{}, factory, &calls,
		lightpass.WithClipVolumeDrawer(&calls))
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer renderer.Close()

	vis, err := debug.NewVisualizer(debug.WithScale(*scale))
	if err != nil {
		log.Fatalf("Failed to create visualizer: %v", err)
	}
	defer vis.Close()

	cfg := frameConfig{groups: *groups, lights: *count, arrays: *arrays, clips: *clips, clipMax: *clipMax}
	graph := lights.NewGraph(lights.WithCapacity(cfg.lights + cfg.clips*cfg.clipMax))
	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	if err := buildFrame(graph, rng, cfg, shaders); err != nil {
		log.Fatalf("Failed to build frame: %v", err)
	}

	if err := graph.Execute(renderer); err != nil {
		log.Fatalf("Light pass failed: %v", err)
	}
	if err := graph.Execute(vis); err != nil {
		log.Fatalf("Visualizer failed: %v", err)
	}

	if err := savePNG(*output, vis); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	st := renderer.Stats()
	log.Printf("%s", vis.Summary())
	log.Printf("Light pass: %d shader binds, %d array binds, %d light draws, %d volume draws, %d pipelines",
		st.ShaderBinds, st.ArrayBinds, calls.lights, calls.volumes, st.Pipelines.Len)
	log.Printf("Batching saved to %s\n", *output)
}

// lightShaders returns the ids of the shaders lights are drawn with.
func lightShaders(reg *shader.Registry) ([]lights.ShaderID, error) {
	var ids []lights.ShaderID
	for _, name := range []string{shader.PointLight, shader.AmbientLight} {
		s, err := reg.ByName(name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, s.ID)
	}
	return ids, nil
}

// buildFrame fills graph with random lights. Light ids are unique, so no
// insertion can fail on visibility.
func buildFrame(graph *lights.Graph, rng *rand.Rand, cfg frameConfig, shaders []lights.ShaderID) error {
	next := lights.LightID(1)
	pick := func() (lights.ShaderID, lights.ArrayID) {
		return shaders[rng.IntN(len(shaders))], lights.ArrayID(rng.IntN(max(cfg.arrays, 1)))
	}

	for range cfg.lights {
		grp, err := graph.Group(lights.GroupID(1 + rng.IntN(cfg.groups)))
		if err != nil {
			return err
		}
		s, a := pick()
		if err := grp.AddLightSingle(next, s, a); err != nil {
			return err
		}
		next++
	}

	for i := range cfg.clips {
		grp, err := graph.Group(lights.GroupID(1 + rng.IntN(cfg.groups)))
		if err != nil {
			return err
		}
		cg := grp.NewClipGroup(lights.InstanceID(1000 + i))
		for range 1 + rng.IntN(max(cfg.clipMax, 1)) {
			s, a := pick()
			if err := cg.AddLightSingle(next, s, a); err != nil {
				return err
			}
			next++
		}
	}
	return nil
}

// drawCounter stands in for a real render pass.
type drawCounter struct {
	lights  int
	volumes int
}

func (c *drawCounter) BindShader(dc *lightpass.DrawContext, s lights.ShaderID) error {
	deferred.Logger().Debug("lightdemo: bind", "shader", s, "mode", dc.Mode.String(), "ref", dc.StencilReference)
	return nil
}

func (c *drawCounter) BindArray(*lightpass.DrawContext, lights.LightID) error { return nil }

func (c *drawCounter) DrawLight(*lightpass.DrawContext, lights.ShaderID, lights.LightID) error {
	c.lights++
	return nil
}

func (c *drawCounter) DrawClipVolume(*lightpass.DrawContext, lights.InstanceID) error {
	c.volumes++
	return nil
}

func openNoopDevice() (hal.Device, func(), error) {
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		return nil, nil, err
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, nil, err
	}
	return openDev.Device, func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}, nil
}

func savePNG(path string, vis *debug.Visualizer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, vis.Render()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
