package model

import "encoding/binary"

// Mesh is indexed geometry ready for upload. Indices describe a triangle list;
// EdgeIndices describe a line list over the same vertices for wireframe drawing.
type Mesh struct {
	Vertices    []Vertex
	Indices     []uint32
	EdgeIndices []uint32
}

// VertexData returns the marshaled vertex buffer.
//
// Returns:
//   - []byte: len(Vertices) * VertexStride bytes
func (m Mesh) VertexData() []byte {
	buf := make([]byte, len(m.Vertices)*VertexStride)
	for i := range m.Vertices {
		m.Vertices[i].put(buf[i*VertexStride:])
	}
	return buf
}

// IndexData returns the marshaled uint32 triangle index buffer.
func (m Mesh) IndexData() []byte {
	return marshalIndices(m.Indices)
}

// EdgeIndexData returns the marshaled uint32 line index buffer.
func (m Mesh) EdgeIndexData() []byte {
	return marshalIndices(m.EdgeIndices)
}

func marshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}
