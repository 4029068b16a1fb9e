package model

import (
	"encoding/binary"
	"image/color"
	"math"
)

// VertexStride is the byte size of one marshaled Vertex.
const VertexStride = 28

// Vertex is the GPU-aligned representation of one cube corner.
// Matches the vertex buffer layout bound by the renderer:
//
//	@location(0) position: vec3<f32>  offset  0
//	@location(1) normal:   vec3<f32>  offset 12
//	@location(2) color:    unorm8x4   offset 24
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    color.RGBA
}

// Marshal serializes the Vertex into a little-endian buffer suitable for GPU upload.
//
// Returns:
//   - []byte: VertexStride bytes ready for GPU upload
func (v *Vertex) Marshal() []byte {
	buf := make([]byte, VertexStride)
	v.put(buf)
	return buf
}

func (v *Vertex) put(buf []byte) {
	for i, f := range v.Position {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	for i, f := range v.Normal {
		binary.LittleEndian.PutUint32(buf[12+i*4:], math.Float32bits(f))
	}
	buf[24], buf[25], buf[26], buf[27] = v.Color.R, v.Color.G, v.Color.B, v.Color.A
}
