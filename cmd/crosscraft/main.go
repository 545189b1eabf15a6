package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"crosscraft/internal/config"
	"crosscraft/internal/graphics"
	"crosscraft/internal/input"
	"crosscraft/internal/meshing"
	"crosscraft/internal/observer"
	"crosscraft/internal/profiling"
	"crosscraft/internal/terrain"
	"crosscraft/internal/world"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	log := setupLogger(cfg)

	defer closer.Close()
	if err := run(cfg, log); err != nil {
		log.WithError(err).Error("crosscraft stopped")
		closer.Fatalln(err)
	}
}

func run(cfg config.Config, log *logrus.Logger) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg.Window)
	if err != nil {
		return err
	}

	dims := cfg.Dims()
	gen := terrain.NewGenerator(cfg.World.Seed, cfg.World.SeaLevel)
	cx, cz := dims.Width/2, dims.Depth/2
	spawn := mgl32.Vec3{
		float32(cx) + 0.5,
		float32(max(gen.HeightAt(cx, cz, dims.Height), cfg.World.SeaLevel) + 8),
		float32(cz) + 0.5,
	}

	im := input.NewInputManager()
	im.SetCallbacks(window)
	controls := &capturedControls{im: im, captured: true}
	cam := observer.New(spawn, controls)

	w, err := world.New(cfg, world.Deps{
		Generator: gen,
		Mesher:    meshing.NewMesher(0),
		Observer:  cam,
	}, log)
	if err != nil {
		return err
	}
	closer.Bind(func() {
		log.WithField("ticks", w.Ticks()).Info("crosscraft exiting")
	})

	width, height := window.GetFramebufferSize()
	fogEnd := float32(cfg.RenderDiameter()*world.ChunkSize) / 2
	r, err := graphics.NewRenderer(graphics.LoadAtlas(cfg.Window.Atlas, log), width, height, fogEnd, log)
	if err != nil {
		return err
	}
	defer r.Dispose()
	// Chunk meshes own GL buffers, so evict while the context is alive.
	defer w.Close()
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		r.SetViewport(w, h)
	})
	r.SetViewport(width, height)

	runLoop(window, w, r, cam, controls, newFrameLimiter(cfg.Window.FPSLimit), log)
	return nil
}

func runLoop(window *glfw.Window, w *world.World, r *graphics.Renderer, cam *observer.FlyCam, controls *capturedControls, limiter *frameLimiter, log *logrus.Logger) {
	frames := 0
	showProfile := false
	lastReport := time.Now()
	lastTime := time.Now()

	for !window.ShouldClose() {
		profiling.ResetFrame()
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		im := controls.im
		if im.JustPressed(input.ActionReleaseCursor) {
			controls.setCaptured(window, !controls.captured)
		} else if !controls.captured && im.JustPressed(input.ActionBreak) {
			controls.setCaptured(window, true)
		}
		if im.JustPressed(input.ActionToggleProfiling) {
			showProfile = !showProfile
		}

		w.Update(dt)

		func() {
			defer profiling.Track("graphics.Frame")()
			r.BeginFrame(cam.ViewMatrix())
			w.Draw(r)
		}()

		im.PostUpdate()
		func() { defer profiling.Track("glfw.SwapBuffers")(); window.SwapBuffers() }()
		func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

		limiter.Wait()

		frames++
		if time.Since(lastReport) >= time.Second {
			entry := log.WithFields(logrus.Fields{
				"fps":      frames,
				"chunks":   w.Registry().Len(),
				"observer": world.ChunkAt(cam.Position()).String(),
			})
			if showProfile {
				entry = entry.WithField("slowest", profiling.TopN(5))
			}
			entry.Debug("frame stats")
			frames = 0
			lastReport = time.Now()
		}
	}
}
