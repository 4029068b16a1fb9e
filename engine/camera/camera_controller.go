package camera

import (
	"math"

	"github.com/Carmen-Shannon/simulations/engine/input"
	"github.com/go-gl/mathgl/mgl64"
)

// Update advances the camera by delta seconds from the held buttons and the
// motion and scroll accumulated in state. It consumes the accumulated deltas,
// clearing them on state. Update is deterministic for a given camera, delta, and state.
//
// Movement: the four horizontal buttons move along the forward and right vectors,
// ascend/descend along world up, all at move speed (doubled while the speed
// modifier is held). Forward/back use the ground-plane forward when horizontal
// movement is on; strafing always uses the horizontal right vector.
//
// Scroll: with the zoom modifier held it narrows or widens the field of view,
// clamped to the bounds and rounded to whole degrees; otherwise it dollies along
// the full forward vector.
//
// Look: pointer motion in pixels is read as degrees, scaled by sensitivity, and
// added to yaw and pitch. Pitch is clamped to [-π/2, π/2].
//
// Parameters:
//   - delta: elapsed time in seconds
//   - state: the frame's input state (must not be nil)
func (c *Camera) Update(delta float64, state *input.State) {
	speed := c.moveSpeed
	if state.IsHeld(input.ButtonSpeed) {
		speed *= 2
	}
	step := speed * delta

	forward := c.Forward()
	if c.horizontalMovement {
		forward = c.HorizontalForward()
	}
	// Strafe-left adds Right(): with the flipped view, Right() points to screen left.
	right := c.Right()

	if state.IsHeld(input.ButtonForward) {
		c.position = c.position.Add(forward.Mul(step))
	}
	if state.IsHeld(input.ButtonBack) {
		c.position = c.position.Sub(forward.Mul(step))
	}
	if state.IsHeld(input.ButtonStrafeLeft) {
		c.position = c.position.Add(right.Mul(step))
	}
	if state.IsHeld(input.ButtonStrafeRight) {
		c.position = c.position.Sub(right.Mul(step))
	}
	if state.IsHeld(input.ButtonAscend) {
		c.position = c.position.Add(worldUp.Mul(step))
	}
	if state.IsHeld(input.ButtonDescend) {
		c.position = c.position.Sub(worldUp.Mul(step))
	}

	if scroll := state.ScrollDelta(); scroll != 0 {
		if state.IsHeld(input.ButtonZoom) {
			c.zoom(scroll)
		} else {
			c.position = c.position.Add(c.Forward().Mul(c.scrollSpeed * scroll))
		}
	}

	motion := state.MouseDelta()
	c.yaw += mgl64.DegToRad(motion[0]) * c.sensitivity
	c.pitch = clampPitch(c.pitch + mgl64.DegToRad(motion[1])*c.sensitivity)

	state.ClearDeltas()
}

// zoom changes the field of view by -scroll degrees, clamped and rounded.
func (c *Camera) zoom(scroll float64) {
	c.fov = math.Round(mgl64.Clamp(c.fov-scroll, c.minFov, c.maxFov))
}
