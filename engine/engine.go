package engine

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/simulations/engine/input"
	"github.com/Carmen-Shannon/simulations/engine/profiler"
	"github.com/Carmen-Shannon/simulations/engine/renderer"
	"github.com/Carmen-Shannon/simulations/engine/scene"
	"github.com/Carmen-Shannon/simulations/engine/window"
)

// DefaultTargetFPS is the frame rate Run paces to unless WithTargetFPS overrides it.
const DefaultTargetFPS = 240

// DefaultOverlayInterval is how often the debug overlay text is refreshed.
const DefaultOverlayInterval = 250 * time.Millisecond

// Window is the part of a platform window the frame driver uses.
// window.Window satisfies it.
type Window interface {
	SetResizeCallback(callback func(width, height int))
	SetScrollCallback(callback func(delta float64))
	SetKeyDownCallback(callback func(keyCode uint32))
	SetKeyUpCallback(callback func(keyCode uint32))
	SetMouseMoveCallback(callback func(dx, dy float64))
	PollEvents() bool
	Width() int
	Height() int
	SetCursorCaptured(captured bool)
	ToggleFullscreen() bool
	SetTitle(title string)
}

var _ Window = window.Window(nil)

// Clock is the time source used for frame deltas and pacing.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// engine implements the Engine interface.
// Everything runs on the goroutine that calls Run.
type engine struct {
	window Window
	scene  scene.Scene
	r      renderer.Renderer
	router *input.Router
	clock  Clock

	keymap     input.Keymap
	lockPolicy input.LockPolicy

	targetFPS   int
	frameBudget time.Duration // minimum frame duration; 0 = uncapped

	overlayInterval time.Duration
	sinceOverlay    time.Duration

	profiler         *profiler.Profiler
	profilingEnabled bool

	quitChannel chan struct{}
	quitOnce    sync.Once
}

// Engine is the frame driver. Each frame it polls window events, advances the
// scene, applies the toggle buttons, draws, and refreshes the debug overlay.
type Engine interface {
	// Run drives frames until the window closes, Quit is called, or ctx is done.
	//
	// Parameters:
	//   - ctx: cancels the loop when done
	//
	// Returns:
	//   - error: ctx.Err() if ctx ended the loop, nil otherwise
	Run(ctx context.Context) error

	// Tick runs one frame with the given elapsed time, without polling events or pacing.
	//
	// Parameters:
	//   - delta: elapsed time in seconds
	Tick(delta float64)

	// Quit stops Run after the current frame. Safe to call multiple times.
	Quit()

	// Scene returns the driven scene.
	Scene() scene.Scene

	// Router returns the adapter feeding window events into the scene's input state.
	Router() *input.Router
}

var _ Engine = &engine{}

// NewEngine creates a frame driver for one window, scene and renderer, and
// installs the window callbacks. It panics if any collaborator is nil.
//
// Parameters:
//   - w: the window to poll and decorate
//   - s: the scene to update and draw
//   - r: the renderer owning the frame lifecycle
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(w Window, s scene.Scene, r renderer.Renderer, options ...EngineBuilderOption) Engine {
	if w == nil {
		panic("engine: NewEngine requires a non-nil Window")
	}
	if s == nil {
		panic("engine: NewEngine requires a non-nil Scene")
	}
	if r == nil {
		panic("engine: NewEngine requires a non-nil Renderer")
	}

	e := &engine{
		window:           w,
		scene:            s,
		r:                r,
		clock:            systemClock{},
		lockPolicy:       input.LockGatesKeyboard,
		overlayInterval:  DefaultOverlayInterval,
		profilingEnabled: true,
		quitChannel:      make(chan struct{}),
	}
	setTargetFPS(e, DefaultTargetFPS)

	for _, opt := range options {
		opt(e)
	}

	e.router = input.NewRouter(s.Input(), e.keymap, e.lockPolicy)
	e.profiler = profiler.NewProfiler(profiler.WithClock(e.clock.Now))

	w.SetKeyDownCallback(e.router.KeyDown)
	w.SetKeyUpCallback(e.router.KeyUp)
	w.SetMouseMoveCallback(e.router.MouseMove)
	w.SetScrollCallback(e.router.Scroll)
	w.SetResizeCallback(func(width, height int) {
		r.Resize(width, height)
	})

	return e
}

func setTargetFPS(e *engine, fps int) {
	e.targetFPS = max(fps, 0)
	if e.targetFPS == 0 {
		e.frameBudget = 0
		return
	}
	e.frameBudget = time.Second / time.Duration(e.targetFPS)
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Router() *input.Router {
	return e.router
}

func (e *engine) Run(ctx context.Context) error {
	if e.targetFPS > 0 {
		log.Printf("[Engine] running, target %d FPS", e.targetFPS)
	} else {
		log.Printf("[Engine] running, uncapped")
	}

	last := e.clock.Now()
	for {
		select {
		case <-ctx.Done():
			e.Quit()
			return ctx.Err()
		case <-e.quitChannel:
			return nil
		default:
		}

		if !e.window.PollEvents() {
			log.Printf("[Engine] window closed")
			e.Quit()
			return nil
		}

		now := e.clock.Now()
		e.Tick(now.Sub(last).Seconds())
		last = now

		if e.frameBudget > 0 {
			if remaining := e.frameBudget - e.clock.Now().Sub(now); remaining > 0 {
				e.clock.Sleep(remaining)
			}
		}
	}
}

func (e *engine) Tick(delta float64) {
	e.scene.Update(delta)
	e.applyToggles()
	e.draw()
	e.refreshOverlay(delta)
	if e.profilingEnabled {
		e.profiler.Tick()
	}
	e.scene.Input().EndFrame()
}

// applyToggles acts on the toggle buttons pressed this frame.
func (e *engine) applyToggles() {
	state := e.scene.Input()

	if state.IsJustPressed(input.ButtonToggleLock) {
		locked := e.router.ToggleLock()
		e.window.SetCursorCaptured(locked)
		log.Printf("[Engine] input lock: %v", locked)
	}
	if state.IsJustPressed(input.ButtonToggleFullscreen) {
		fullscreen := e.window.ToggleFullscreen()
		e.router.SetLocked(false)
		e.window.SetCursorCaptured(false)
		log.Printf("[Engine] fullscreen: %v (input lock released)", fullscreen)
	}
	if state.IsJustPressed(input.ButtonToggleDepthTest) {
		log.Printf("[Engine] depth test: %v", e.scene.ToggleDepthTest())
	}
	if state.IsJustPressed(input.ButtonToggleWireframe) {
		log.Printf("[Engine] wireframe: %v", e.scene.ToggleWireframe())
	}
}

func (e *engine) draw() {
	width, height := e.window.Width(), e.window.Height()
	if width <= 0 || height <= 0 {
		return
	}

	if err := e.r.BeginFrame(); err != nil {
		if errors.Is(err, renderer.ErrNoFrame) {
			log.Printf("[Engine] skipping frame: %v", err)
			return
		}
		log.Printf("[Engine] failed to begin frame: %v", err)
		return
	}
	e.scene.Draw(width, height)
	e.r.EndFrame()
	e.r.Present()
}

func (e *engine) refreshOverlay(delta float64) {
	e.sinceOverlay += time.Duration(delta * float64(time.Second))
	if e.sinceOverlay < e.overlayInterval {
		return
	}
	e.sinceOverlay = 0
	cam := e.scene.Camera()
	e.window.SetTitle(profiler.OverlayText(profiler.FPS(delta), cam.Position(), cam.Pitch(), cam.Yaw()))
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}
