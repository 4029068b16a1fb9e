package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Mat4f narrows a float64 matrix to the float32 layout uploaded to the GPU.
// Both types are column-major, so the conversion is element-wise.
//
// Parameters:
//   - m: the float64 matrix
//
// Returns:
//   - mgl32.Mat4: the float32 matrix
func Mat4f(m mgl64.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i := range m {
		out[i] = float32(m[i])
	}
	return out
}

// FloorVec3 floors every component of v and returns them as integers.
//
// Parameters:
//   - v: the vector to floor
//
// Returns:
//   - [3]int: the floored components
func FloorVec3(v mgl64.Vec3) [3]int {
	return [3]int{
		int(math.Floor(v[0])),
		int(math.Floor(v[1])),
		int(math.Floor(v[2])),
	}
}

// FloorDegrees converts an angle in radians to whole degrees, rounding toward negative infinity.
func FloorDegrees(rad float64) int {
	return int(math.Floor(mgl64.RadToDeg(rad)))
}

// Perspective creates a right-handed perspective projection for WebGPU clip
// space, where depth runs from 0 at near to 1 at far. mgl64.Perspective targets
// the OpenGL [-1, 1] range and would clip everything just past the near plane.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl64.Mat4: the projection matrix (column-major)
func Perspective(fovY, aspect, near, far float64) mgl64.Mat4 {
	f := 1 / math.Tan(fovY/2)
	return mgl64.Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, far / (near - far), -1,
		0, 0, (near * far) / (near - far), 0,
	}
}
