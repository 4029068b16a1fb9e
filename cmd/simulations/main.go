package main

import (
	"context"
	"errors"
	"image/color"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carmen-Shannon/simulations/engine"
	"github.com/Carmen-Shannon/simulations/engine/camera"
	"github.com/Carmen-Shannon/simulations/engine/game_object"
	"github.com/Carmen-Shannon/simulations/engine/input"
	"github.com/Carmen-Shannon/simulations/engine/renderer"
	"github.com/Carmen-Shannon/simulations/engine/renderer/shader"
	"github.com/Carmen-Shannon/simulations/engine/scene"
	"github.com/Carmen-Shannon/simulations/engine/window"
)

const (
	vertexShaderPath   = "assets/shaders/vertex.wgsl"
	fragmentShaderPath = "assets/shaders/fragment.wgsl"
)

// orbit describes one ring of cubes circling the vertical axis.
type orbit struct {
	radius float64
	height float64
	count  int
	speed  float64
}

var orbits = []orbit{
	{radius: 60, height: 0, count: 4, speed: 1},
	{radius: 160, height: 0, count: 8, speed: 0.5},
	{radius: 320, height: 40, count: 12, speed: 0.25},
}

func main() {
	// ── Window ──────────────────────────────────────────────────────
	win, err := window.NewWindow()
	if err != nil {
		log.Fatalf("failed to open window: %v", err)
	}
	defer win.Close()

	// ── Shaders (fatal when missing) ────────────────────────────────
	vs, err := shader.Load("cube_vert", shader.ShaderTypeVertex, vertexShaderPath)
	if err != nil {
		log.Fatalf("failed to load vertex shader: %v", err)
	}
	fs, err := shader.Load("cube_frag", shader.ShaderTypeFragment, fragmentShaderPath)
	if err != nil {
		log.Fatalf("failed to load fragment shader: %v", err)
	}

	// ── Renderer (the engine paces frames) ──────────────────────────
	r, err := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		vs, fs,
		renderer.WithPresentMode(renderer.PresentModeUncapped),
		renderer.WithClearColor(color.RGBA{R: 18, G: 18, B: 24, A: 255}),
	)
	if err != nil {
		log.Fatalf("failed to create renderer: %v", err)
	}
	defer r.Close()

	// ── Scene ───────────────────────────────────────────────────────
	s := scene.NewScene(camera.NewCamera(), input.NewState(), r,
		scene.WithObjects(cubes()...),
	)
	log.Printf("[Scene] %d objects", s.Count())

	// ── Engine ──────────────────────────────────────────────────────
	eng := engine.NewEngine(win, s, r,
		engine.WithTargetFPS(engine.DefaultTargetFPS),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := eng.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("[Engine] stopped: %v", err)
	}
}

// cubes builds a static cube at the origin and the orbiting rings around it.
func cubes() []game_object.GameObject {
	objs := []game_object.GameObject{
		game_object.NewGameObject(game_object.WithKind(game_object.KindStaticCube)),
	}
	for _, o := range orbits {
		for i := range o.count {
			angle := 2 * math.Pi * float64(i) / float64(o.count)
			objs = append(objs, game_object.NewGameObject(
				game_object.WithPosition(math.Cos(angle)*o.radius, o.height, math.Sin(angle)*o.radius),
				game_object.WithSpeed(o.speed),
			))
		}
	}
	return objs
}
