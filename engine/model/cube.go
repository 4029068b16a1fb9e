package model

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// CubeHalfExtent is the distance from a cube's center to each face, in model units.
const CubeHalfExtent = 10

// Corner positions. Bit 0 selects +X, bit 1 selects +Y, bit 2 selects -Z.
var cubeCorners = [8][3]float32{
	{-10, -10, 10}, {10, -10, 10},
	{-10, 10, 10}, {10, 10, 10},
	{-10, -10, -10}, {10, -10, -10},
	{-10, 10, -10}, {10, 10, -10},
}

var cubeIndices = []uint32{
	2, 6, 7, 2, 3, 7,
	0, 4, 5, 0, 1, 5,
	0, 2, 6, 0, 4, 6,
	1, 3, 7, 1, 5, 7,
	0, 2, 3, 0, 1, 3,
	4, 6, 7, 4, 5, 7,
}

var cubeEdges = []uint32{
	0, 1, 2, 3, 4, 5, 6, 7,
	0, 2, 1, 3, 4, 6, 5, 7,
	0, 4, 1, 5, 2, 6, 3, 7,
}

// OrbitPalette colors the corners of an orbiting cube: red, green, blue, yellow, repeated.
var OrbitPalette = []color.RGBA{
	{255, 0, 0, 255},
	{0, 255, 0, 255},
	{0, 0, 255, 255},
	{255, 255, 0, 255},
}

// StaticColor is the uniform color of a static cube.
var StaticColor = color.RGBA{128, 255, 255, 255}

// CubeMesh builds the 8-vertex cube used by every scene object.
// Corner i takes palette[i % len(palette)]; an empty palette yields white corners.
//
// Parameters:
//   - palette: per-corner colors, cycled
//
// Returns:
//   - Mesh: 8 vertices, 36 triangle indices, 24 edge indices
func CubeMesh(palette ...color.RGBA) Mesh {
	if len(palette) == 0 {
		palette = []color.RGBA{{255, 255, 255, 255}}
	}
	vertices := make([]Vertex, len(cubeCorners))
	for i, p := range cubeCorners {
		vertices[i] = Vertex{
			Position: p,
			Normal:   mgl32.Vec3(p).Normalize(),
			Color:    palette[i%len(palette)],
		}
	}
	return Mesh{
		Vertices:    vertices,
		Indices:     append([]uint32(nil), cubeIndices...),
		EdgeIndices: append([]uint32(nil), cubeEdges...),
	}
}
