package renderer

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/simulations/common"
	"github.com/Carmen-Shannon/simulations/engine/model"
	"github.com/Carmen-Shannon/simulations/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrNoFrame is returned by BeginFrame when no surface texture could be acquired.
// The frame should be skipped; the next BeginFrame may succeed.
var ErrNoFrame = errors.New("renderer: no frame available")

// Handle identifies a mesh bound with Bind. Handles are never reused.
type Handle uint32

// Surface is the window side of the renderer: a platform surface and its framebuffer size.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// Renderer is the draw-state boundary the scene talks to. It owns the depth-test
// and fill-mode state, the shared view/projection uniform, and one model uniform
// per bound mesh.
type Renderer interface {
	// Bind uploads a mesh and allocates its model uniform. Resources live until Close.
	//
	// Parameters:
	//   - mesh: the mesh to upload
	//
	// Returns:
	//   - Handle: the handle to pass to SetModel and Draw
	//   - error: if GPU resources cannot be created
	Bind(mesh model.Mesh) (Handle, error)

	// SetView sets the view matrix for the following draws.
	SetView(view mgl32.Mat4)

	// SetProjection sets the projection matrix for the following draws.
	SetProjection(projection mgl32.Mat4)

	// SetModel sets the model matrix of a bound mesh.
	SetModel(h Handle, m mgl32.Mat4)

	// EnableDepthTest makes following draws test and write the depth buffer.
	EnableDepthTest()

	// DisableDepthTest makes following draws ignore the depth buffer.
	DisableDepthTest()

	// SetWireframe selects line drawing of mesh edges instead of filled triangles.
	SetWireframe(enabled bool)

	// Draw records a draw of a bound mesh with the current state.
	Draw(h Handle)

	// BeginFrame starts a frame.
	//
	// Returns:
	//   - error: wraps ErrNoFrame if the frame must be skipped
	BeginFrame() error

	// EndFrame submits the frame's draws.
	EndFrame()

	// Present shows the frame.
	Present()

	// Resize reconfigures the surface. Zero sizes are ignored.
	Resize(width, height int)

	// Close releases every GPU resource.
	Close()
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu      *sync.Mutex
	backend RendererBackend

	meshes    []*gpuMesh
	camera    GPUCameraUniform
	depthTest bool
	wireframe bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingClearColor    *wgpu.Color
	msaa                 MSAASampleCount
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing into surface with the given shader pair.
// The vertex shader must declare the camera block at @group(0) @binding(0) and the
// model matrix at @group(1) @binding(0).
//
// Parameters:
//   - backendType: the type of rendering backend to use
//   - surface: the window surface to draw into
//   - vs: the vertex shader
//   - fs: the fragment shader
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the ready renderer
//   - error: if the shaders lack the required bindings or GPU setup fails
func NewRenderer(backendType RendererBackendType, surface Surface, vs, fs *shader.Shader, options ...RendererBuilderOption) (Renderer, error) {
	if surface == nil || vs == nil || fs == nil {
		panic("renderer: NewRenderer requires a non-nil surface and shader pair")
	}
	if err := checkBindings(vs); err != nil {
		return nil, err
	}

	r := &renderer{
		mu:   &sync.Mutex{},
		msaa: MSAA4x,
	}
	for _, opt := range options {
		opt(r)
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
	}
	if err != nil {
		return nil, err
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if r.pendingClearColor != nil {
		r.backend.SetClearColor(*r.pendingClearColor)
	}
	r.backend.ConfigureSurface(common.Coalesce(surface.Width(), 1), common.Coalesce(surface.Height(), 1))

	if err := r.backend.CreatePipelines(vs, fs); err != nil {
		r.backend.Release()
		return nil, err
	}
	log.Printf("[Renderer] ready: %dx%d, msaa %d", surface.Width(), surface.Height(), r.msaa)
	return r, nil
}

func checkBindings(vs *shader.Shader) error {
	if _, ok := vs.Binding(0, 0); !ok {
		return fmt.Errorf("renderer: %s must declare the camera uniform at @group(0) @binding(0)", vs.Key())
	}
	if _, ok := vs.Binding(1, 0); !ok {
		return fmt.Errorf("renderer: %s must declare the model uniform at @group(1) @binding(0)", vs.Key())
	}
	return nil
}

func (r *renderer) Bind(mesh model.Mesh) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := Handle(len(r.meshes))
	m, err := r.backend.CreateMesh(fmt.Sprintf("Mesh %d", h), mesh)
	if err != nil {
		return 0, fmt.Errorf("renderer: bind mesh: %w", err)
	}
	r.meshes = append(r.meshes, m)
	return h, nil
}

func (r *renderer) SetView(view mgl32.Mat4) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.camera.View = view
	r.backend.WriteCamera(r.camera.Marshal())
}

func (r *renderer) SetProjection(projection mgl32.Mat4) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.camera.Projection = projection
	r.backend.WriteCamera(r.camera.Marshal())
}

func (r *renderer) SetModel(h Handle, m mgl32.Mat4) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if mesh := r.mesh(h); mesh != nil {
		data := GPUModelData{Model: m}
		r.backend.WriteModel(mesh, data.Marshal())
	}
}

func (r *renderer) EnableDepthTest() {
	r.mu.Lock()
	r.depthTest = true
	r.mu.Unlock()
}

func (r *renderer) DisableDepthTest() {
	r.mu.Lock()
	r.depthTest = false
	r.mu.Unlock()
}

func (r *renderer) SetWireframe(enabled bool) {
	r.mu.Lock()
	r.wireframe = enabled
	r.mu.Unlock()
}

func (r *renderer) Draw(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if mesh := r.mesh(h); mesh != nil {
		r.backend.Draw(variantFor(r.depthTest, r.wireframe), mesh)
	}
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.meshes {
		m.release()
	}
	r.meshes = nil
	r.backend.Release()
}

// mesh returns the resources for h, or nil for an unknown handle. Caller must hold r.mu.
func (r *renderer) mesh(h Handle) *gpuMesh {
	if int(h) >= len(r.meshes) {
		return nil
	}
	return r.meshes[h]
}
