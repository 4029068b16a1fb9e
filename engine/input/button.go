package input

// Button identifies a logical input button. The core reads buttons only; platform
// key codes are translated at the boundary by a Keymap.
type Button uint8

const (
	// ButtonForward moves the camera along its (horizontal) forward vector.
	ButtonForward Button = iota
	// ButtonBack moves the camera against its forward vector.
	ButtonBack
	// ButtonStrafeLeft moves the camera along its right vector.
	ButtonStrafeLeft
	// ButtonStrafeRight moves the camera against its right vector.
	ButtonStrafeRight
	// ButtonAscend moves the camera up the world Y axis.
	ButtonAscend
	// ButtonDescend moves the camera down the world Y axis.
	ButtonDescend
	// ButtonSpeed doubles the camera move speed while held.
	ButtonSpeed
	// ButtonZoom turns scrolling into field of view changes while held.
	ButtonZoom
	// ButtonToggleWireframe switches the scene between filled and edge rendering.
	ButtonToggleWireframe
	// ButtonToggleFullscreen switches the window fullscreen state.
	ButtonToggleFullscreen
	// ButtonToggleLock switches input-lock (pointer capture + camera input).
	ButtonToggleLock
	// ButtonToggleDepthTest switches depth testing for the scene draw.
	ButtonToggleDepthTest

	buttonCount
)

var buttonNames = [buttonCount]string{
	ButtonForward:          "forward",
	ButtonBack:             "back",
	ButtonStrafeLeft:       "strafe-left",
	ButtonStrafeRight:      "strafe-right",
	ButtonAscend:           "ascend",
	ButtonDescend:          "descend",
	ButtonSpeed:            "speed-modifier",
	ButtonZoom:             "zoom-modifier",
	ButtonToggleWireframe:  "toggle-wireframe",
	ButtonToggleFullscreen: "toggle-fullscreen",
	ButtonToggleLock:       "toggle-lock",
	ButtonToggleDepthTest:  "toggle-depth-test",
}

// Valid reports whether b is one of the declared buttons.
func (b Button) Valid() bool {
	return b < buttonCount
}

// String returns the button's logical name.
func (b Button) String() string {
	if !b.Valid() {
		return "unknown"
	}
	return buttonNames[b]
}

// IsToggle reports whether b is a one-shot toggle rather than a held control.
// Toggles always reach the input state, even while input-lock is off.
func (b Button) IsToggle() bool {
	switch b {
	case ButtonToggleWireframe, ButtonToggleFullscreen, ButtonToggleLock, ButtonToggleDepthTest:
		return true
	}
	return false
}

// ButtonSet is a bit set of logical buttons.
type ButtonSet uint32

// Has reports whether b is in the set.
func (s ButtonSet) Has(b Button) bool {
	return b.Valid() && s&(1<<b) != 0
}

// With returns the set with b added. Invalid buttons are ignored.
func (s ButtonSet) With(b Button) ButtonSet {
	if !b.Valid() {
		return s
	}
	return s | 1<<b
}

// Without returns the set with b removed.
func (s ButtonSet) Without(b Button) ButtonSet {
	if !b.Valid() {
		return s
	}
	return s &^ (1 << b)
}

// Empty reports whether no button is in the set.
func (s ButtonSet) Empty() bool {
	return s == 0
}

// Buttons lists the members in declaration order.
func (s ButtonSet) Buttons() []Button {
	var out []Button
	for b := Button(0); b < buttonCount; b++ {
		if s.Has(b) {
			out = append(out, b)
		}
	}
	return out
}
