package camera

import (
	"math"

	"github.com/Carmen-Shannon/simulations/common"
	"github.com/go-gl/mathgl/mgl64"
)

// Default camera settings.
const (
	DefaultMoveSpeed   = 40.0
	DefaultSensitivity = 0.2
	DefaultFov         = 70.0 // degrees
	DefaultMinFov      = 30.0 // degrees
	DefaultMaxFov      = 145.0
	DefaultNear        = 0.1
	DefaultFar         = 10000.0
)

// flip inverts the Y axis. The render target's Y axis points the opposite way
// from the math convention used for positions, so this is a fixed constant.
var flip = mgl64.Mat4{
	1, 0, 0, 0,
	0, -1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

var worldUp = mgl64.Vec3{0, 1, 0}

// Camera is a free first-person camera. It owns a position, a yaw/pitch
// orientation, a field of view in degrees, and the movement and look parameters
// applied by Update.
//
// Pitch stays within [-π/2, π/2] after every Update. Yaw is unbounded.
// The orientation is applied in the projection stage (see ProjectionMatrix);
// the view stage only flips Y and translates.
type Camera struct {
	position mgl64.Vec3
	yaw      float64
	pitch    float64

	fov    float64
	minFov float64
	maxFov float64
	near   float64
	far    float64

	moveSpeed   float64
	scrollSpeed float64
	sensitivity float64

	// horizontalMovement projects forward/back motion onto the ground plane.
	horizontalMovement bool
}

// NewCamera creates a Camera at the sandbox's starting viewpoint, then applies options.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - *Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) *Camera {
	c := &Camera{
		position:           mgl64.Vec3{20, 20, -20},
		yaw:                math.Pi / 4,
		pitch:              mgl64.DegToRad(-40),
		fov:                DefaultFov,
		minFov:             DefaultMinFov,
		maxFov:             DefaultMaxFov,
		near:               DefaultNear,
		far:                DefaultFar,
		moveSpeed:          DefaultMoveSpeed,
		sensitivity:        DefaultSensitivity,
		horizontalMovement: true,
	}
	for _, option := range options {
		option(c)
	}
	if c.scrollSpeed == 0 {
		c.scrollSpeed = c.moveSpeed * 4
	}
	c.pitch = clampPitch(c.pitch)
	return c
}

func (c *Camera) Position() mgl64.Vec3 { return c.position }
func (c *Camera) Yaw() float64          { return c.yaw }
func (c *Camera) Pitch() float64        { return c.pitch }

// Fov returns the field of view in degrees.
func (c *Camera) Fov() float64 { return c.fov }

func (c *Camera) FovBounds() (min, max float64) { return c.minFov, c.maxFov }
func (c *Camera) Near() float64                 { return c.near }
func (c *Camera) Far() float64                  { return c.far }
func (c *Camera) MoveSpeed() float64            { return c.moveSpeed }
func (c *Camera) ScrollSpeed() float64          { return c.scrollSpeed }
func (c *Camera) Sensitivity() float64          { return c.sensitivity }

// SetPosition moves the camera to p.
func (c *Camera) SetPosition(p mgl64.Vec3) {
	c.position = p
}

// SetOrientation sets yaw and pitch in radians. Pitch is clamped.
func (c *Camera) SetOrientation(yaw, pitch float64) {
	c.yaw = yaw
	c.pitch = clampPitch(pitch)
}

// SetFar sets the far clipping plane distance.
func (c *Camera) SetFar(far float64) {
	c.far = far
}

// Forward returns the unit view direction derived from yaw and pitch.
//
// Returns:
//   - mgl64.Vec3: the forward vector, unit length by construction
func (c *Camera) Forward() mgl64.Vec3 {
	cp := math.Cos(c.pitch)
	return mgl64.Vec3{
		cp * math.Sin(-c.yaw),
		math.Sin(c.pitch),
		cp * math.Cos(-c.yaw),
	}
}

// HorizontalForward returns the forward vector with its vertical component
// removed and renormalized. Looking straight up or down leaves no horizontal
// component, in which case the zero vector is returned.
//
// Returns:
//   - mgl64.Vec3: the ground-plane forward vector, or the zero vector
func (c *Camera) HorizontalForward() mgl64.Vec3 {
	cp := math.Cos(c.pitch)
	v := mgl64.Vec3{cp * math.Sin(-c.yaw), 0, cp * math.Cos(-c.yaw)}
	l := v.Len()
	if l < 1e-12 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// Right returns the unit strafe vector, always horizontal.
func (c *Camera) Right() mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(-c.yaw), 0, -math.Sin(-c.yaw)}
}

// ViewMatrix returns the Y flip composed with the inverse of the camera translation.
//
// Returns:
//   - mgl64.Mat4: the view matrix (column-major)
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	return flip.Mul4(mgl64.Translate3D(-c.position[0], -c.position[1], -c.position[2]))
}

// ProjectionMatrix returns the perspective projection for a viewport, rotated by
// -pitch about X and then by yaw about Y. Depth maps near to 0 and far to 1. The orientation lives here rather than
// in ViewMatrix; shaders compute projection * view * model.
//
// Parameters:
//   - width, height: viewport size in pixels; a non-positive height is treated as 1
//
// Returns:
//   - mgl64.Mat4: the projection matrix (column-major)
func (c *Camera) ProjectionMatrix(width, height int) mgl64.Mat4 {
	if height <= 0 {
		height = 1
	}
	aspect := float64(width) / float64(height)
	p := common.Perspective(mgl64.DegToRad(c.fov), aspect, c.near, c.far)
	return p.Mul4(mgl64.HomogRotate3DX(-c.pitch)).Mul4(mgl64.HomogRotate3DY(c.yaw))
}

func clampPitch(pitch float64) float64 {
	return mgl64.Clamp(pitch, -math.Pi/2, math.Pi/2)
}
