package game_object

import (
	"image/color"
	"math"

	"github.com/Carmen-Shannon/simulations/engine/model"
	"github.com/go-gl/mathgl/mgl64"
)

// spinFalloff slows the Y spin of an orbiting cube by its radius: the spin per
// tick is delta - radius/spinFalloff radians.
const spinFalloff = 4000

type gameObject struct {
	id      uint64
	kind    Kind
	palette []color.RGBA

	position mgl64.Vec3
	rotation mgl64.Vec3 // Euler angles in radians: pitch (X), yaw (Y), roll (Z)
	scale    mgl64.Vec3

	speed  float64
	phase  float64
	radius float64
}

// GameObject defines the interface for a scene entity. It is a continuous-time
// integrator: its state changes only through Update, driven by elapsed time,
// and never reads the camera or other objects.
type GameObject interface {
	// ID returns the object's identifier, assigned by the Scene on insertion.
	//
	// Returns:
	//   - uint64: the object ID, or 0 before insertion
	ID() uint64

	// SetID sets the object's identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// Kind returns the object's variant.
	//
	// Returns:
	//   - Kind: the variant tag
	Kind() Kind

	// Position returns the object's world position.
	//
	// Returns:
	//   - mgl64.Vec3: the position
	Position() mgl64.Vec3

	// Rotation returns the object's Euler rotation in radians (X, Y, Z).
	//
	// Returns:
	//   - mgl64.Vec3: the rotation
	Rotation() mgl64.Vec3

	// Scale returns the object's per-axis scale factors.
	//
	// Returns:
	//   - mgl64.Vec3: the scale
	Scale() mgl64.Vec3

	// Speed returns the orbit's angular speed in radians per second.
	//
	// Returns:
	//   - float64: the orbit speed
	Speed() float64

	// Phase returns the accumulated orbit angle in radians.
	//
	// Returns:
	//   - float64: the orbit phase
	Phase() float64

	// Radius returns the horizontal orbit radius fixed at creation.
	//
	// Returns:
	//   - float64: the orbit radius
	Radius() float64

	// Palette returns the per-corner vertex colors of the object's mesh.
	//
	// Returns:
	//   - []color.RGBA: the cycled corner colors
	Palette() []color.RGBA

	// Update advances the object by delta seconds according to its Kind.
	//
	// Parameters:
	//   - delta: elapsed time in seconds
	Update(delta float64)

	// ModelMatrix returns T * Rx * Ry * Rz * S for the current transform.
	//
	// Returns:
	//   - mgl64.Mat4: the model-to-world matrix (column-major)
	ModelMatrix() mgl64.Mat4

	// Mesh returns the geometry the renderer should bind for this object.
	//
	// Returns:
	//   - model.Mesh: the object's mesh
	Mesh() model.Mesh
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// The orbit radius and initial phase are taken from the final position.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		kind:  KindOrbitingCube,
		scale: mgl64.Vec3{1, 1, 1},
		speed: 1,
	}
	for _, option := range options {
		option(obj)
	}
	if len(obj.palette) == 0 {
		obj.palette = obj.kind.defaultPalette()
	}
	obj.radius = math.Hypot(obj.position[0], obj.position[2])
	obj.phase = math.Atan2(obj.position[2], obj.position[0])
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) Kind() Kind {
	return g.kind
}

func (g *gameObject) Position() mgl64.Vec3 {
	return g.position
}

func (g *gameObject) Rotation() mgl64.Vec3 {
	return g.rotation
}

func (g *gameObject) Scale() mgl64.Vec3 {
	return g.scale
}

func (g *gameObject) Speed() float64 {
	return g.speed
}

func (g *gameObject) Phase() float64 {
	return g.phase
}

func (g *gameObject) Radius() float64 {
	return g.radius
}

func (g *gameObject) Palette() []color.RGBA {
	return g.palette
}

func (g *gameObject) Update(delta float64) {
	if g.kind == KindOrbitingCube {
		g.orbit(delta)
	}
}

// orbit moves the object along its circle at constant height and spins it about Y.
func (g *gameObject) orbit(delta float64) {
	g.phase += delta * g.speed
	g.position = mgl64.Vec3{
		math.Cos(g.phase) * g.radius,
		g.position[1],
		math.Sin(g.phase) * g.radius,
	}
	g.rotation[1] += delta - g.radius/spinFalloff
}

func (g *gameObject) ModelMatrix() mgl64.Mat4 {
	t := mgl64.Translate3D(g.position[0], g.position[1], g.position[2])
	r := mgl64.HomogRotate3DX(g.rotation[0]).
		Mul4(mgl64.HomogRotate3DY(g.rotation[1])).
		Mul4(mgl64.HomogRotate3DZ(g.rotation[2]))
	s := mgl64.Scale3D(g.scale[0], g.scale[1], g.scale[2])
	return t.Mul4(r).Mul4(s)
}

func (g *gameObject) Mesh() model.Mesh {
	return model.CubeMesh(g.palette...)
}
