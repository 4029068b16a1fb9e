package camera

import "github.com/go-gl/mathgl/mgl64"

// CameraBuilderOption is a functional option for configuring a Camera.
type CameraBuilderOption func(*Camera)

// WithPosition sets the camera's starting position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(x, y, z float64) CameraBuilderOption {
	return func(c *Camera) {
		c.position = mgl64.Vec3{x, y, z}
	}
}

// WithYaw sets the starting yaw in radians.
//
// Parameters:
//   - yaw: rotation about the Y axis in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's yaw
func WithYaw(yaw float64) CameraBuilderOption {
	return func(c *Camera) {
		c.yaw = yaw
	}
}

// WithPitch sets the starting pitch in radians. It is clamped to [-π/2, π/2].
//
// Parameters:
//   - pitch: rotation about the X axis in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's pitch
func WithPitch(pitch float64) CameraBuilderOption {
	return func(c *Camera) {
		c.pitch = pitch
	}
}

// WithFov sets the field of view in degrees.
//
// Parameters:
//   - fov: vertical field of view in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float64) CameraBuilderOption {
	return func(c *Camera) {
		c.fov = fov
	}
}

// WithFovBounds sets the range zooming keeps the field of view in.
//
// Parameters:
//   - min, max: bounds in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the zoom bounds
func WithFovBounds(min, max float64) CameraBuilderOption {
	return func(c *Camera) {
		c.minFov = min
		c.maxFov = max
	}
}

// WithNear sets the near clipping plane distance.
func WithNear(near float64) CameraBuilderOption {
	return func(c *Camera) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the far plane
func WithFar(far float64) CameraBuilderOption {
	return func(c *Camera) {
		c.far = far
	}
}

// WithMoveSpeed sets the movement speed in units per second.
// Unless WithScrollSpeed is given, the scroll speed follows at four times this value.
func WithMoveSpeed(speed float64) CameraBuilderOption {
	return func(c *Camera) {
		c.moveSpeed = speed
	}
}

// WithScrollSpeed sets the dolly distance per scroll unit.
func WithScrollSpeed(speed float64) CameraBuilderOption {
	return func(c *Camera) {
		c.scrollSpeed = speed
	}
}

// WithSensitivity sets the look sensitivity multiplier.
//
// Parameters:
//   - sensitivity: multiplier applied to pointer motion read as degrees
//
// Returns:
//   - CameraBuilderOption: functional option to set look sensitivity
func WithSensitivity(sensitivity float64) CameraBuilderOption {
	return func(c *Camera) {
		c.sensitivity = sensitivity
	}
}

// WithHorizontalMovement selects whether forward/back motion keeps altitude.
// When false, forward/back follow the full pitched forward vector.
func WithHorizontalMovement(enabled bool) CameraBuilderOption {
	return func(c *Camera) {
		c.horizontalMovement = enabled
	}
}
