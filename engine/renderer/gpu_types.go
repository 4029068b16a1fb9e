package renderer

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniform sizes in bytes.
const (
	cameraUniformSize = 128
	modelUniformSize  = 64
)

// GPUCameraUniform is the GPU-aligned camera block bound at @group(0) @binding(0):
//
//	struct Camera { view: mat4x4<f32>, projection: mat4x4<f32> }
type GPUCameraUniform struct {
	View       mgl32.Mat4 // offset  0
	Projection mgl32.Mat4 // offset 64
}

// Marshal serializes the camera block for upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload.
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, cameraUniformSize)
	putMat4(buf[0:64], g.View)
	putMat4(buf[64:128], g.Projection)
	return buf
}

// GPUModelData is the per-object model matrix bound at @group(1) @binding(0).
type GPUModelData struct {
	Model mgl32.Mat4
}

// Marshal serializes the model matrix for upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUModelData) Marshal() []byte {
	buf := make([]byte, modelUniformSize)
	putMat4(buf, g.Model)
	return buf
}

// putMat4 writes m column-major, matching WGSL mat4x4 storage.
func putMat4(buf []byte, m mgl32.Mat4) {
	for i, f := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
}
