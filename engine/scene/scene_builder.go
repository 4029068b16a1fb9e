package scene

import (
	"github.com/Carmen-Shannon/simulations/engine/game_object"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithObjects inserts initial objects in the given order once the scene is built.
//
// Parameters:
//   - objects: the objects to insert
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		s.pending = append(s.pending, objects...)
	}
}

// WithDepthTest sets whether Draw uses the depth buffer. Defaults to true.
//
// Parameters:
//   - enabled: whether the depth test brackets the scene's draws
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithDepthTest(enabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.depthTest = enabled
	}
}

// WithUpdateWorkers sets the number of worker goroutines used by parallel Update passes.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of update workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithUpdateWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.updateWorkers = n
	}
}

// WithParallelThreshold sets the object count from which Update runs on the worker pool.
func WithParallelThreshold(n int) SceneBuilderOption {
	return func(s *scene) {
		s.parallelThreshold = n
	}
}
