package input

import "github.com/Carmen-Shannon/simulations/common"

// Keymap maps platform key codes to logical buttons. It is adapter configuration:
// nothing past the Router sees a key code.
type Keymap map[uint32]Button

// DefaultKeymap returns the stock bindings for GLFW key codes.
//
// Returns:
//   - Keymap: a fresh map that callers may modify
func DefaultKeymap() Keymap {
	return Keymap{
		common.KeyW:           ButtonForward,
		common.KeyS:           ButtonBack,
		common.KeyA:           ButtonStrafeLeft,
		common.KeyD:           ButtonStrafeRight,
		common.KeySpace:       ButtonAscend,
		common.KeyLeftShift:   ButtonDescend,
		common.KeyLeftControl: ButtonSpeed,
		common.KeyLeftAlt:     ButtonZoom,
		common.KeyF1:          ButtonToggleWireframe,
		common.KeyF2:          ButtonToggleDepthTest,
		common.KeyF11:         ButtonToggleFullscreen,
		common.KeyEsc:         ButtonToggleLock,
	}
}

// Lookup resolves a key code. Unmapped codes report ok=false and are dropped by callers.
//
// Parameters:
//   - keyCode: the platform key code
//
// Returns:
//   - Button: the mapped button
//   - bool: true if the key code is mapped
func (k Keymap) Lookup(keyCode uint32) (Button, bool) {
	b, ok := k[keyCode]
	if !ok || !b.Valid() {
		return 0, false
	}
	return b, true
}
