package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/simulations/engine/model"
	"github.com/Carmen-Shannon/simulations/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipelineVariant indexes the four render pipelines built from one shader pair.
type pipelineVariant int

const (
	variantFill pipelineVariant = iota
	variantFillDepth
	variantLine
	variantLineDepth
	variantCount
)

func variantFor(depthTest, wireframe bool) pipelineVariant {
	v := variantFill
	if wireframe {
		v = variantLine
	}
	if depthTest {
		v++
	}
	return v
}

func (v pipelineVariant) depthTest() bool { return v == variantFillDepth || v == variantLineDepth }
func (v pipelineVariant) wireframe() bool { return v >= variantLine }

// gpuMesh holds the GPU resources created for one bound mesh. They live until Release.
type gpuMesh struct {
	label           string
	vertexBuffer    *wgpu.Buffer
	indexBuffer     *wgpu.Buffer
	edgeIndexBuffer *wgpu.Buffer
	indexCount      uint32
	edgeIndexCount  uint32
	modelBuffer     *wgpu.Buffer
	modelBindGroup  *wgpu.BindGroup
}

func (m *gpuMesh) release() {
	for _, buf := range []*wgpu.Buffer{m.vertexBuffer, m.indexBuffer, m.edgeIndexBuffer, m.modelBuffer} {
		if buf != nil {
			buf.Release()
		}
	}
	if m.modelBindGroup != nil {
		m.modelBindGroup.Release()
	}
}

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTarget           *renderTarget
	depthTarget          *renderTarget
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount
	clearColor  wgpu.Color

	cameraLayout    *wgpu.BindGroupLayout
	modelLayout     *wgpu.BindGroupLayout
	cameraBuffer    *wgpu.Buffer
	cameraBindGroup *wgpu.BindGroup
	pipelines       [variantCount]*wgpu.RenderPipeline

	// Frame state for batching every draw of a frame into one render pass
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

type wgpuRendererBackend interface {
	// ConfigureSurface (re)configures the swapchain and the depth and MSAA targets for a size.
	//
	// Parameters:
	//   - width, height: framebuffer size in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode selects the swapchain present mode used by the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color the render pass clears to.
	SetClearColor(c wgpu.Color)

	// CreatePipelines compiles the shader pair and builds the camera uniform and the four
	// pipeline variants. ConfigureSurface must have been called first.
	//
	// Parameters:
	//   - vs: the vertex shader
	//   - fs: the fragment shader
	//
	// Returns:
	//   - error: if a shader module, layout, or pipeline cannot be created
	CreatePipelines(vs, fs *shader.Shader) error

	// CreateMesh uploads a mesh and creates its model uniform and bind group.
	//
	// Parameters:
	//   - label: GPU label prefix
	//   - mesh: the mesh to upload
	//
	// Returns:
	//   - *gpuMesh: the created resources
	//   - error: if a buffer or bind group cannot be created
	CreateMesh(label string, mesh model.Mesh) (*gpuMesh, error)

	// WriteCamera uploads the camera block.
	WriteCamera(data []byte)

	// WriteModel uploads a mesh's model matrix.
	WriteModel(m *gpuMesh, data []byte)

	// BeginFrame acquires the next surface texture and opens the render pass.
	//
	// Returns:
	//   - error: ErrNoFrame (possibly wrapping the surface error) when no frame can be acquired
	BeginFrame() error

	// Draw issues a draw of m with the given pipeline variant into the open render pass.
	Draw(variant pipelineVariant, m *gpuMesh)

	// EndFrame closes the render pass and submits the frame's commands.
	EndFrame()

	// Present presents the acquired surface texture.
	Present()

	// Release frees the device-level resources.
	Release()
}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) (wgpuRendererBackend, error) {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeImmediate,
		sampleCount: sampleCount,
		clearColor:  wgpu.Color{R: 0, G: 0, B: 0, A: 1},
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("renderer: request adapter: %w", err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, fmt.Errorf("renderer: request device: %w", err)
	}
	w.device = d
	w.queue = d.GetQueue()

	return w, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	b.msaaTarget.release()
	b.msaaTarget = nil
	var msaaView *wgpu.TextureView
	if msaaEnabled {
		b.msaaTarget = b.createTarget("MSAA Texture", width, height, count, *b.surfaceFormat)
		msaaView = b.msaaTarget.view
	}
	b.depthTarget.release()
	b.depthTarget = b.createTarget("Depth Texture", width, height, count, wgpu.TextureFormatDepth24Plus)

	// With MSAA the pass renders into the MSAA view and resolves into the swapchain
	// view set in BeginFrame; without it the swapchain view is the color view.
	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       msaaView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    storeOp,
				ClearValue: b.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTarget.view,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

// gpuReleaser is a GPU handle freed with Release.
type gpuReleaser interface {
	Release()
}

// renderTarget is an attachment texture and its view. Both are released together.
type renderTarget struct {
	view      *wgpu.TextureView
	resources []gpuReleaser // released in order: view, then texture
}

func (t *renderTarget) release() {
	if t == nil {
		return
	}
	for _, r := range t.resources {
		r.Release()
	}
	t.resources = nil
	t.view = nil
}

// createTarget creates a render attachment texture with a view over it.
// Failure here means the device is lost; the frame loop cannot continue.
func (b *wgpuRendererBackendImpl) createTarget(label string, width, height int, samples uint32, format wgpu.TextureFormat) *renderTarget {
	texture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(fmt.Sprintf("renderer: failed to create %s: %v", label, err))
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		panic(fmt.Sprintf("renderer: failed to create %s view: %v", label, err))
	}
	return &renderTarget{view: view, resources: []gpuReleaser{view, texture}}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeVSync:
		b.presentMode = wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeImmediate
	}
}

func (b *wgpuRendererBackendImpl) SetClearColor(c wgpu.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clearColor = c
	if b.renderPassDescriptor != nil {
		b.renderPassDescriptor.ColorAttachments[0].ClearValue = c
	}
}

// shaderName identifies a shader in errors by key, and by source file when it was loaded from one.
func shaderName(s *shader.Shader) string {
	if s.Path() == "" {
		return s.Key()
	}
	return fmt.Sprintf("%s (%s)", s.Key(), s.Path())
}

func uniformLayout(label string, size uint64) *wgpu.BindGroupLayoutDescriptor {
	return &wgpu.BindGroupLayoutDescriptor{
		Label: label,
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: size,
				},
			},
		},
	}
}

func (b *wgpuRendererBackendImpl) CreatePipelines(vs, fs *shader.Shader) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	vsModule, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          vs.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: vs.Source()},
	})
	if err != nil {
		return fmt.Errorf("renderer: compile %s: %w", shaderName(vs), err)
	}
	fsModule, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          fs.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: fs.Source()},
	})
	if err != nil {
		return fmt.Errorf("renderer: compile %s: %w", shaderName(fs), err)
	}

	if b.cameraLayout, err = b.device.CreateBindGroupLayout(uniformLayout("Camera Layout", cameraUniformSize)); err != nil {
		return fmt.Errorf("renderer: camera bind group layout: %w", err)
	}
	if b.modelLayout, err = b.device.CreateBindGroupLayout(uniformLayout("Model Layout", modelUniformSize)); err != nil {
		return fmt.Errorf("renderer: model bind group layout: %w", err)
	}

	b.cameraBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Camera Buffer",
		Size:  cameraUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("renderer: camera buffer: %w", err)
	}
	b.cameraBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Camera Bind Group",
		Layout: b.cameraLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.cameraBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("renderer: camera bind group: %w", err)
	}

	layout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Scene Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.cameraLayout, b.modelLayout},
	})
	if err != nil {
		return fmt.Errorf("renderer: pipeline layout: %w", err)
	}

	vertexLayout := wgpu.VertexBufferLayout{
		ArrayStride: model.VertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatUnorm8x4, Offset: 24, ShaderLocation: 2},
		},
	}

	for v := pipelineVariant(0); v < variantCount; v++ {
		topology := wgpu.PrimitiveTopologyTriangleList
		if v.wireframe() {
			topology = wgpu.PrimitiveTopologyLineList
		}
		// With the depth test off every fragment passes and nothing is written,
		// so later draws paint over earlier ones in draw order.
		depthCompare := wgpu.CompareFunctionAlways
		if v.depthTest() {
			depthCompare = wgpu.CompareFunctionLess
		}

		created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
			Label:  fmt.Sprintf("Scene Render Pipeline %d", v),
			Layout: layout,
			Vertex: wgpu.VertexState{
				Module:     vsModule,
				EntryPoint: vs.EntryPoint(),
				Buffers:    []wgpu.VertexBufferLayout{vertexLayout},
			},
			Fragment: &wgpu.FragmentState{
				Module:     fsModule,
				EntryPoint: fs.EntryPoint(),
				Targets: []wgpu.ColorTargetState{
					{
						Format:    *b.surfaceFormat,
						WriteMask: wgpu.ColorWriteMaskAll,
					},
				},
			},
			Primitive: wgpu.PrimitiveState{
				Topology:  topology,
				FrontFace: wgpu.FrontFaceCCW,
				CullMode:  wgpu.CullModeNone,
			},
			Multisample: wgpu.MultisampleState{
				Count: uint32(b.sampleCount),
				Mask:  0xFFFFFFFF,
			},
			DepthStencil: &wgpu.DepthStencilState{
				Format:            wgpu.TextureFormatDepth24Plus,
				DepthWriteEnabled: v.depthTest(),
				DepthCompare:      depthCompare,
				StencilFront: wgpu.StencilFaceState{
					Compare: wgpu.CompareFunctionAlways,
				},
				StencilBack: wgpu.StencilFaceState{
					Compare: wgpu.CompareFunctionAlways,
				},
			},
		})
		if err != nil {
			return fmt.Errorf("renderer: render pipeline %d: %w", v, err)
		}
		b.pipelines[v] = created
	}

	return nil
}

func (b *wgpuRendererBackendImpl) newFilledBuffer(label string, usage wgpu.BufferUsage, data []byte) (*wgpu.Buffer, error) {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	b.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

func (b *wgpuRendererBackendImpl) CreateMesh(label string, mesh model.Mesh) (*gpuMesh, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m := &gpuMesh{
		label:          label,
		indexCount:     uint32(len(mesh.Indices)),
		edgeIndexCount: uint32(len(mesh.EdgeIndices)),
	}
	var err error
	if m.vertexBuffer, err = b.newFilledBuffer(label+" Vertex Buffer", wgpu.BufferUsageVertex, mesh.VertexData()); err != nil {
		m.release()
		return nil, err
	}
	if m.indexBuffer, err = b.newFilledBuffer(label+" Index Buffer", wgpu.BufferUsageIndex, mesh.IndexData()); err != nil {
		m.release()
		return nil, err
	}
	if m.edgeIndexCount > 0 {
		if m.edgeIndexBuffer, err = b.newFilledBuffer(label+" Edge Index Buffer", wgpu.BufferUsageIndex, mesh.EdgeIndexData()); err != nil {
			m.release()
			return nil, err
		}
	}
	m.modelBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Model Buffer",
		Size:  modelUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		m.release()
		return nil, err
	}
	m.modelBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Model Bind Group",
		Layout: b.modelLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: m.modelBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		m.release()
		return nil, err
	}
	return m, nil
}

func (b *wgpuRendererBackendImpl) WriteCamera(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.queue.WriteBuffer(b.cameraBuffer, 0, data)
}

func (b *wgpuRendererBackendImpl) WriteModel(m *gpuMesh, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.queue.WriteBuffer(m.modelBuffer, 0, data)
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// A surface texture still held from the previous frame cannot be acquired twice.
	if b.frameSurface != nil {
		return ErrNoFrame
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoFrame, err)
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return fmt.Errorf("%w: %w", ErrNoFrame, err)
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return fmt.Errorf("%w: %w", ErrNoFrame, err)
	}

	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *wgpuRendererBackendImpl) Draw(variant pipelineVariant, m *gpuMesh) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}

	indexBuffer, count := m.indexBuffer, m.indexCount
	if variant.wireframe() && m.edgeIndexBuffer != nil {
		indexBuffer, count = m.edgeIndexBuffer, m.edgeIndexCount
	} else if variant.wireframe() {
		variant -= variantLine
	}

	b.framePass.SetPipeline(b.pipelines[variant])
	b.framePass.SetBindGroup(0, b.cameraBindGroup, nil)
	b.framePass.SetBindGroup(1, m.modelBindGroup, nil)
	b.framePass.SetVertexBuffer(0, m.vertexBuffer, 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(count, 1, 0, 0, 0)
}

func (b *wgpuRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}
	b.framePass.End()

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameEncoder = nil
		b.framePass = nil
		b.frameSurface = nil
		b.frameView = nil
		return
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	b.framePass = nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, p := range b.pipelines {
		if p != nil {
			p.Release()
			b.pipelines[i] = nil
		}
	}
	if b.cameraBindGroup != nil {
		b.cameraBindGroup.Release()
	}
	if b.cameraBuffer != nil {
		b.cameraBuffer.Release()
	}
	b.depthTarget.release()
	b.msaaTarget.release()
	b.device.Release()
	b.adapter.Release()
	b.surface.Release()
	b.instance.Release()
}
