package engine

import (
	"time"

	"github.com/Carmen-Shannon/simulations/engine/input"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output. Enabled by default.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTargetFPS sets the frame rate Run paces to by sleeping out the rest of each frame.
// Pass 0 to uncap the loop. Defaults to DefaultTargetFPS.
//
// Parameters:
//   - fps: target frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTargetFPS(fps int) EngineBuilderOption {
	return func(e *engine) {
		setTargetFPS(e, fps)
	}
}

// WithKeymap replaces the default key bindings.
//
// Parameters:
//   - keymap: platform key code to logical button bindings
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithKeymap(keymap input.Keymap) EngineBuilderOption {
	return func(e *engine) {
		e.keymap = keymap
	}
}

// WithLockPolicy sets whether movement keys reach the camera while input lock is off.
//
// Parameters:
//   - policy: the lock policy (default input.LockGatesKeyboard)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLockPolicy(policy input.LockPolicy) EngineBuilderOption {
	return func(e *engine) {
		e.lockPolicy = policy
	}
}

// WithOverlayInterval sets how often the debug overlay is written to the window title.
// Zero refreshes every frame.
func WithOverlayInterval(d time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.overlayInterval = max(d, 0)
	}
}

// WithClock replaces the system clock used for frame deltas and pacing.
func WithClock(clock Clock) EngineBuilderOption {
	return func(e *engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}
