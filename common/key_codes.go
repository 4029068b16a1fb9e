package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Only the keymap adapter reads them; the core works on logical buttons.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87 // W key (ASCII)
	KeyA     = 65 // A key (ASCII)
	KeyS     = 83 // S key (ASCII)
	KeyD     = 68 // D key (ASCII)
	KeySpace = 32 // Spacebar (ASCII)
	KeyEsc   = 256
)

// Function keys (GLFW).
const (
	KeyF1  = 290
	KeyF2  = 291
	KeyF11 = 300
)

// Modifier keys (GLFW).
const (
	KeyLeftShift   = 340
	KeyLeftControl = 341
	KeyLeftAlt     = 342
)
