package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/simulations/common"
	"github.com/Carmen-Shannon/simulations/engine/input"
	"github.com/go-gl/mathgl/mgl64"
)

const tol = 1e-5

func vecNear(a, b mgl64.Vec3, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	if p := c.Position(); p != (mgl64.Vec3{20, 20, -20}) {
		t.Fatalf("c.Position\nhave %v\nwant [20 20 -20]", p)
	}
	if c.Fov() != 70 {
		t.Fatalf("c.Fov\nhave %v\nwant 70", c.Fov())
	}
	if c.ScrollSpeed() != 4*c.MoveSpeed() {
		t.Fatalf("c.ScrollSpeed\nhave %v\nwant %v", c.ScrollSpeed(), 4*c.MoveSpeed())
	}
	if min, max := c.FovBounds(); min != 30 || max != 145 {
		t.Fatalf("c.FovBounds\nhave %v, %v\nwant 30, 145", min, max)
	}
	if c.Far() != DefaultFar {
		t.Fatalf("c.Far\nhave %v\nwant %v", c.Far(), DefaultFar)
	}
}

func TestForwardFromDefaults(t *testing.T) {
	c := NewCamera(WithPitch(-0.698))
	s := input.NewState()
	s.Press(input.ButtonForward)
	c.Update(1, s)

	d := 40 / math.Sqrt2
	want := mgl64.Vec3{20 - d, 20, -20 + d}
	if p := c.Position(); !vecNear(p, want, tol) {
		t.Fatalf("c.Update: Position\nhave %v\nwant %v", p, want)
	}
}

func TestForwardIsUnit(t *testing.T) {
	for _, yp := range [][2]float64{{0, 0}, {1.3, -0.4}, {-7, 1.2}, {math.Pi, math.Pi / 2}} {
		c := NewCamera(WithYaw(yp[0]), WithPitch(yp[1]))
		if l := c.Forward().Len(); math.Abs(l-1) > 1e-9 {
			t.Fatalf("c.Forward: Len (yaw %v, pitch %v)\nhave %v\nwant 1", yp[0], yp[1], l)
		}
		if l := c.Right().Len(); math.Abs(l-1) > 1e-9 {
			t.Fatalf("c.Right: Len\nhave %v\nwant 1", l)
		}
		if y := c.Right()[1]; y != 0 {
			t.Fatalf("c.Right: Y\nhave %v\nwant 0", y)
		}
	}
}

func TestHorizontalForwardDegenerate(t *testing.T) {
	for _, pitch := range []float64{math.Pi / 2, -math.Pi / 2} {
		c := NewCamera(WithPitch(pitch))
		if v := c.HorizontalForward(); v != (mgl64.Vec3{}) {
			t.Fatalf("c.HorizontalForward (pitch %v)\nhave %v\nwant zero", pitch, v)
		}
		s := input.NewState()
		s.Press(input.ButtonForward)
		before := c.Position()
		c.Update(1, s)
		if p := c.Position(); p != before {
			t.Fatalf("c.Update: Position\nhave %v\nwant %v", p, before)
		}
	}
}

func TestSpeedModifierDoubles(t *testing.T) {
	move := func(fast bool) float64 {
		c := NewCamera()
		s := input.NewState()
		s.Press(input.ButtonBack)
		if fast {
			s.Press(input.ButtonSpeed)
		}
		start := c.Position()
		c.Update(0.25, s)
		return c.Position().Sub(start).Len()
	}
	slow, fast := move(false), move(true)
	if math.Abs(slow-10) > tol {
		t.Fatalf("c.Update: distance\nhave %v\nwant 10", slow)
	}
	if math.Abs(fast-2*slow) > tol {
		t.Fatalf("c.Update: fast distance\nhave %v\nwant %v", fast, 2*slow)
	}
}

func TestStrafeAndVertical(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 0), WithYaw(0), WithPitch(0))
	s := input.NewState()
	s.Press(input.ButtonStrafeLeft)
	s.Press(input.ButtonAscend)
	c.Update(1, s)
	want := mgl64.Vec3{40, 40, 0}
	if p := c.Position(); !vecNear(p, want, tol) {
		t.Fatalf("c.Update: Position\nhave %v\nwant %v", p, want)
	}

	s.Release(input.ButtonStrafeLeft)
	s.Release(input.ButtonAscend)
	s.Press(input.ButtonStrafeRight)
	s.Press(input.ButtonDescend)
	c.Update(1, s)
	if p := c.Position(); !vecNear(p, mgl64.Vec3{}, tol) {
		t.Fatalf("c.Update: Position\nhave %v\nwant origin", p)
	}
}

func TestPitchClamp(t *testing.T) {
	c := NewCamera()
	s := input.NewState()
	for i := 0; i < 10; i++ {
		s.AccumulateMotion(0, 1e4)
		c.Update(0.016, s)
		if p := c.Pitch(); p > math.Pi/2 || p < -math.Pi/2 {
			t.Fatalf("c.Update: Pitch\nhave %v\nwant within [-π/2, π/2]", p)
		}
	}
	if c.Pitch() != math.Pi/2 {
		t.Fatalf("c.Update: Pitch\nhave %v\nwant %v", c.Pitch(), math.Pi/2)
	}
	s.AccumulateMotion(0, -1e5)
	c.Update(0.016, s)
	if c.Pitch() != -math.Pi/2 {
		t.Fatalf("c.Update: Pitch\nhave %v\nwant %v", c.Pitch(), -math.Pi/2)
	}
}

func TestLookUsesSensitivity(t *testing.T) {
	c := NewCamera(WithYaw(0), WithPitch(0))
	s := input.NewState()
	s.AccumulateMotion(10, -5)
	c.Update(0.016, s)
	if want := mgl64.DegToRad(10) * 0.2; math.Abs(c.Yaw()-want) > 1e-12 {
		t.Fatalf("c.Update: Yaw\nhave %v\nwant %v", c.Yaw(), want)
	}
	if want := mgl64.DegToRad(-5) * 0.2; math.Abs(c.Pitch()-want) > 1e-12 {
		t.Fatalf("c.Update: Pitch\nhave %v\nwant %v", c.Pitch(), want)
	}
	if d := s.MouseDelta(); d != (mgl64.Vec2{}) {
		t.Fatalf("s.MouseDelta after Update\nhave %v\nwant zero", d)
	}
}

func TestZoomStaysIntegerWithinBounds(t *testing.T) {
	c := NewCamera()
	s := input.NewState()
	s.Press(input.ButtonZoom)
	start := c.Position()
	for _, scroll := range []float64{0.4, -0.6, 3.3, 500, -1.5, -1000, 17.25} {
		s.AccumulateScroll(scroll)
		c.Update(0.016, s)
		fov := c.Fov()
		if fov < 30 || fov > 145 {
			t.Fatalf("c.Update: Fov\nhave %v\nwant within [30, 145]", fov)
		}
		if fov != math.Trunc(fov) {
			t.Fatalf("c.Update: Fov\nhave %v\nwant an integer", fov)
		}
	}
	if p := c.Position(); p != start {
		t.Fatalf("c.Update: zoom moved the camera\nhave %v\nwant %v", p, start)
	}
	if s.ScrollDelta() != 0 {
		t.Fatalf("s.ScrollDelta after Update\nhave %v\nwant 0", s.ScrollDelta())
	}
}

func TestZoomClampsToMin(t *testing.T) {
	c := NewCamera()
	s := input.NewState()
	s.Press(input.ButtonZoom)
	s.AccumulateScroll(200)
	c.Update(0.016, s)
	if c.Fov() != 30 {
		t.Fatalf("c.Update: Fov\nhave %v\nwant 30", c.Fov())
	}
}

func TestScrollDollies(t *testing.T) {
	c := NewCamera()
	s := input.NewState()
	start, fwd := c.Position(), c.Forward()
	s.AccumulateScroll(1)
	c.Update(0, s)
	want := start.Add(fwd.Mul(160))
	if p := c.Position(); !vecNear(p, want, tol) {
		t.Fatalf("c.Update: Position\nhave %v\nwant %v", p, want)
	}
	if c.Fov() != 70 {
		t.Fatalf("c.Update: Fov\nhave %v\nwant 70", c.Fov())
	}
}

func TestViewMatrixFlipsAndTranslates(t *testing.T) {
	c := NewCamera(WithPosition(1, 2, 3))
	v := c.ViewMatrix().Mul4x1(mgl64.Vec4{1, 2, 3, 1})
	if !vecNear(v.Vec3(), mgl64.Vec3{}, 1e-12) {
		t.Fatalf("c.ViewMatrix * position\nhave %v\nwant origin", v)
	}
	v = c.ViewMatrix().Mul4x1(mgl64.Vec4{1, 3, 3, 1})
	if !vecNear(v.Vec3(), mgl64.Vec3{0, -1, 0}, 1e-12) {
		t.Fatalf("c.ViewMatrix * (position + up)\nhave %v\nwant [0 -1 0]", v)
	}
}

func TestProjectionZeroHeight(t *testing.T) {
	c := NewCamera()
	m := c.ProjectionMatrix(700, 0)
	for i, f := range m {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			t.Fatalf("c.ProjectionMatrix(700, 0)[%d]\nhave %v\nwant finite", i, f)
		}
	}
	if m != c.ProjectionMatrix(700, 1) {
		t.Fatal("c.ProjectionMatrix: zero height should match height 1")
	}
}

func TestProjectionComposesOrientation(t *testing.T) {
	tests := []struct {
		name          string
		options       []CameraBuilderOption
		yaw, pitch    float64
		width, height int
		far           float64
	}{
		{"default far", nil, 0.7, -0.4, 700, 500, DefaultFar},
		{"far 1000", []CameraBuilderOption{WithFar(1000)}, -2.1, 1.2, 1280, 720, 1000},
		{"narrow fov", []CameraBuilderOption{WithFov(45), WithNear(1)}, 3.0, 0.1, 500, 700, DefaultFar},
	}
	for _, tt := range tests {
		c := NewCamera(tt.options...)
		c.SetOrientation(tt.yaw, tt.pitch)

		near := c.Near()
		want := common.Perspective(mgl64.DegToRad(c.Fov()), float64(tt.width)/float64(tt.height), near, tt.far).
			Mul4(mgl64.HomogRotate3DX(-tt.pitch)).
			Mul4(mgl64.HomogRotate3DY(tt.yaw))
		have := c.ProjectionMatrix(tt.width, tt.height)
		if !have.ApproxEqualThreshold(want, 1e-12) {
			t.Fatalf("%s: c.ProjectionMatrix(%d, %d)\nhave %v\nwant %v", tt.name, tt.width, tt.height, have, want)
		}
	}
}

func TestProjectionFarPlaneChangesMatrix(t *testing.T) {
	def := NewCamera().ProjectionMatrix(700, 500)
	short := NewCamera(WithFar(1000)).ProjectionMatrix(700, 500)
	if def == short {
		t.Fatal("c.ProjectionMatrix: WithFar(1000) produced the default matrix")
	}
}

// clipDepth returns z/w for a point d units straight ahead of a camera at the
// origin looking down -Z.
func clipDepth(c *Camera, d float64) float64 {
	v := c.ProjectionMatrix(700, 500).Mul4(c.ViewMatrix()).Mul4x1(mgl64.Vec4{0, 0, -d, 1})
	return v[2] / v[3]
}

func TestProjectionDepthRange(t *testing.T) {
	for _, far := range []float64{1000, DefaultFar} {
		c := NewCamera(WithPosition(0, 0, 0), WithYaw(0), WithPitch(0), WithFar(far))
		if z := clipDepth(c, DefaultNear); math.Abs(z) > 1e-9 {
			t.Fatalf("depth at near (far %v)\nhave %v\nwant 0", far, z)
		}
		if z := clipDepth(c, far); math.Abs(z-1) > 1e-9 {
			t.Fatalf("depth at far (far %v)\nhave %v\nwant 1", far, z)
		}
		if z := clipDepth(c, 0.15); z <= 0 || z >= 1 {
			t.Fatalf("depth just past near (far %v)\nhave %v\nwant in (0, 1)", far, z)
		}
	}
}
