package scene

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/simulations/common"
	"github.com/Carmen-Shannon/simulations/engine/camera"
	"github.com/Carmen-Shannon/simulations/engine/game_object"
	"github.com/Carmen-Shannon/simulations/engine/input"
	"github.com/Carmen-Shannon/simulations/engine/renderer"
)

// DefaultParallelThreshold is the object count from which Update fans out to the worker pool.
const DefaultParallelThreshold = 1024

// ErrInvalidScale is returned by Insert for an object with a non-positive scale component.
var ErrInvalidScale = errors.New("scene: object scale components must be positive")

// ErrUnknownKind is returned by Insert for an object whose Kind is not a known variant.
var ErrUnknownKind = errors.New("scene: unknown object kind")

// entry pairs an object with the render handle acquired for it at insertion.
type entry struct {
	obj    game_object.GameObject
	handle renderer.Handle
}

type scene struct {
	cam   *camera.Camera
	state *input.State
	r     renderer.Renderer

	entries []entry
	nextID  uint64

	depthTest bool
	wireframe bool

	pending []game_object.GameObject // objects from WithObjects, inserted by NewScene

	// updatePool advances object chunks in parallel once the object count
	// reaches parallelThreshold. Workers idle-exit between bursts.
	updatePool        worker.DynamicWorkerPool
	updateWorkers     int
	parallelThreshold int
}

// Scene owns one camera and an insertion-ordered list of objects. Insertion order
// is the draw order; occlusion relies on the depth test, not on sorting.
//
// A Scene is driven from a single goroutine. Update may fan work out internally
// but returns only after every object has been advanced.
type Scene interface {
	// Camera returns the scene's camera.
	//
	// Returns:
	//   - *camera.Camera: the camera
	Camera() *camera.Camera

	// Input returns the input state the camera reads on Update.
	//
	// Returns:
	//   - *input.State: the input state
	Input() *input.State

	// Insert validates obj, binds its mesh on the renderer, assigns the next ID,
	// and appends it to the draw order. GPU resources are acquired exactly once here.
	//
	// Parameters:
	//   - obj: the object to insert
	//
	// Returns:
	//   - uint64: the assigned ID
	//   - error: ErrUnknownKind, ErrInvalidScale, or a wrapped renderer error
	Insert(obj game_object.GameObject) (uint64, error)

	// Remove takes the object with the given ID out of the draw order, keeping
	// the order of the rest. Its GPU resources stay allocated until the renderer closes.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - bool: false if no object has that ID
	Remove(id uint64) bool

	// Get returns the object with the given ID, or nil.
	Get(id uint64) game_object.GameObject

	// Objects returns the objects in draw order.
	//
	// Returns:
	//   - []game_object.GameObject: a fresh slice of the objects
	Objects() []game_object.GameObject

	// Count returns the number of objects.
	Count() int

	// Update advances the camera from the input state, then every object, by delta seconds.
	//
	// Parameters:
	//   - delta: elapsed time in seconds
	Update(delta float64)

	// Draw pushes the camera matrices and issues one draw per object in insertion
	// order. With the depth test on, the draws are bracketed by EnableDepthTest and
	// DisableDepthTest, also when there are no objects.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	Draw(width, height int)

	// DepthTest reports whether Draw uses the depth buffer.
	DepthTest() bool

	// SetDepthTest sets whether Draw uses the depth buffer.
	SetDepthTest(enabled bool)

	// ToggleDepthTest flips the depth test setting and returns the new value.
	ToggleDepthTest() bool

	// Wireframe reports whether Draw renders mesh edges instead of faces.
	Wireframe() bool

	// SetWireframe sets whether Draw renders mesh edges instead of faces.
	SetWireframe(enabled bool)

	// ToggleWireframe flips the wireframe setting and returns the new value.
	ToggleWireframe() bool
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene. All three collaborators are required and NewScene
// panics if any of them is nil, or if an object given with WithObjects cannot be inserted.
//
// Parameters:
//   - cam: the camera to own (must not be nil)
//   - state: the input state the camera reads (must not be nil)
//   - r: the renderer to draw with (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(cam *camera.Camera, state *input.State, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if state == nil {
		panic("scene: NewScene requires a non-nil input State")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		cam:               cam,
		state:             state,
		r:                 r,
		nextID:            1,
		depthTest:         true,
		updateWorkers:     max(runtime.NumCPU()-1, 1),
		parallelThreshold: DefaultParallelThreshold,
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the pool after options so WithUpdateWorkers can override the default.
	s.updatePool = worker.NewDynamicWorkerPool(s.updateWorkers, 256, 1*time.Second)

	for _, obj := range s.pending {
		if _, err := s.Insert(obj); err != nil {
			panic(fmt.Sprintf("scene: failed to insert initial object: %v", err))
		}
	}
	s.pending = nil

	return s
}

func (s *scene) Camera() *camera.Camera {
	return s.cam
}

func (s *scene) Input() *input.State {
	return s.state
}

func (s *scene) Insert(obj game_object.GameObject) (uint64, error) {
	if obj == nil {
		return 0, errors.New("scene: cannot Insert a nil object")
	}
	if k := obj.Kind(); !k.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownKind, k)
	}
	sc := obj.Scale()
	if sc[0] <= 0 || sc[1] <= 0 || sc[2] <= 0 {
		return 0, fmt.Errorf("%w: have %v", ErrInvalidScale, sc)
	}

	h, err := s.r.Bind(obj.Mesh())
	if err != nil {
		return 0, fmt.Errorf("scene: failed to bind %s: %w", obj.Kind(), err)
	}

	id := s.nextID
	s.nextID++
	obj.SetID(id)
	s.entries = append(s.entries, entry{obj: obj, handle: h})
	return id, nil
}

func (s *scene) Remove(id uint64) bool {
	for i, e := range s.entries {
		if e.obj.ID() == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			log.Printf("[Scene] removed object %d (%d remaining)", id, len(s.entries))
			return true
		}
	}
	return false
}

func (s *scene) Get(id uint64) game_object.GameObject {
	for _, e := range s.entries {
		if e.obj.ID() == id {
			return e.obj
		}
	}
	return nil
}

func (s *scene) Objects() []game_object.GameObject {
	out := make([]game_object.GameObject, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.obj
	}
	return out
}

func (s *scene) Count() int {
	return len(s.entries)
}

func (s *scene) Update(delta float64) {
	s.cam.Update(delta, s.state)

	n := len(s.entries)
	if n < s.parallelThreshold || s.updateWorkers < 2 {
		for _, e := range s.entries {
			e.obj.Update(delta)
		}
		return
	}

	// Objects never read each other, so chunks can run in any order.
	// The WaitGroup is the per-frame barrier.
	chunk := (n + s.updateWorkers - 1) / s.updateWorkers
	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		part := s.entries[start:end]
		wg.Add(1)
		s.updatePool.SubmitTask(worker.Task{
			ID: taskID,
			Do: func() (any, error) {
				defer wg.Done()
				for _, e := range part {
					e.obj.Update(delta)
				}
				return nil, nil
			},
		})
		taskID++
	}
	wg.Wait()
}

func (s *scene) Draw(width, height int) {
	s.r.SetView(common.Mat4f(s.cam.ViewMatrix()))
	s.r.SetProjection(common.Mat4f(s.cam.ProjectionMatrix(width, height)))
	s.r.SetWireframe(s.wireframe)

	if s.depthTest {
		s.r.EnableDepthTest()
	}
	for _, e := range s.entries {
		s.r.SetModel(e.handle, common.Mat4f(e.obj.ModelMatrix()))
		s.r.Draw(e.handle)
	}
	if s.depthTest {
		s.r.DisableDepthTest()
	}
}

func (s *scene) DepthTest() bool {
	return s.depthTest
}

func (s *scene) SetDepthTest(enabled bool) {
	s.depthTest = enabled
}

func (s *scene) ToggleDepthTest() bool {
	s.depthTest = !s.depthTest
	return s.depthTest
}

func (s *scene) Wireframe() bool {
	return s.wireframe
}

func (s *scene) SetWireframe(enabled bool) {
	s.wireframe = enabled
}

func (s *scene) ToggleWireframe() bool {
	s.wireframe = !s.wireframe
	return s.wireframe
}
