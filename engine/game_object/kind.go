package game_object

import (
	"image/color"

	"github.com/Carmen-Shannon/simulations/engine/model"
)

// Kind is the closed set of scene object variants. Each variant fixes the
// object's update rule and mesh layout.
type Kind uint8

const (
	// KindOrbitingCube circles the vertical axis at its creation radius and height.
	KindOrbitingCube Kind = iota
	// KindStaticCube keeps its creation transform.
	KindStaticCube
)

func (k Kind) String() string {
	switch k {
	case KindOrbitingCube:
		return "orbiting-cube"
	case KindStaticCube:
		return "static-cube"
	}
	return "unknown"
}

// Valid reports whether k is a known variant.
func (k Kind) Valid() bool {
	return k <= KindStaticCube
}

func (k Kind) defaultPalette() []color.RGBA {
	if k == KindStaticCube {
		return []color.RGBA{model.StaticColor}
	}
	return model.OrbitPalette
}
