package game_object

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithKind sets the variant of the GameObject.
//
// Parameters:
//   - kind: the variant tag
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Kind
func WithKind(kind Kind) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.kind = kind
	}
}

// WithPosition sets the creation position of the GameObject. Its horizontal
// distance from the origin becomes the orbit radius.
//
// Parameters:
//   - x: the x position
//   - y: the y position
//   - z: the z position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial position
func WithPosition(x, y, z float64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = mgl64.Vec3{x, y, z}
	}
}

// WithRotation sets the initial Euler rotation in radians.
//
// Parameters:
//   - rx: rotation about X
//   - ry: rotation about Y
//   - rz: rotation about Z
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial rotation
func WithRotation(rx, ry, rz float64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = mgl64.Vec3{rx, ry, rz}
	}
}

// WithScale sets the scale factors. All components must be positive for the
// object to be accepted by a Scene.
//
// Parameters:
//   - sx: the x scale factor
//   - sy: the y scale factor
//   - sz: the z scale factor
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the scale
func WithScale(sx, sy, sz float64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = mgl64.Vec3{sx, sy, sz}
	}
}

// WithSpeed sets the orbit's angular speed in radians per second.
func WithSpeed(speed float64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.speed = speed
	}
}

// WithColor replicates one color over every corner of the mesh.
func WithColor(c color.RGBA) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.palette = []color.RGBA{c}
	}
}

// WithPalette sets per-corner colors, cycled over the mesh's corners.
//
// Parameters:
//   - palette: corner colors
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the palette
func WithPalette(palette ...color.RGBA) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.palette = append([]color.RGBA(nil), palette...)
	}
}
