package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

func TestMat4f(t *testing.T) {
	m := mgl64.Translate3D(1.5, -2, 3).Mul4(mgl64.Scale3D(2, 2, 2))
	want := mgl32.Translate3D(1.5, -2, 3).Mul4(mgl32.Scale3D(2, 2, 2))
	if have := Mat4f(m); have != want {
		t.Fatalf("Mat4f\nhave %v\nwant %v", have, want)
	}
}

func TestFloorVec3(t *testing.T) {
	have := FloorVec3(mgl64.Vec3{20.9, -0.1, -20})
	want := [3]int{20, -1, -20}
	if have != want {
		t.Fatalf("FloorVec3\nhave %v\nwant %v", have, want)
	}
}

func TestFloorDegrees(t *testing.T) {
	tests := []struct {
		rad  float64
		want int
	}{
		{0, 0},
		{0.8, 45},
		{-0.7, -41},
		{3.5, 200},
	}
	for _, tt := range tests {
		if have := FloorDegrees(tt.rad); have != tt.want {
			t.Fatalf("FloorDegrees(%v)\nhave %d\nwant %d", tt.rad, have, tt.want)
		}
	}
}

func TestCoalesce(t *testing.T) {
	if have := Coalesce(0, 0, 3, 4); have != 3 {
		t.Fatalf("Coalesce(0, 0, 3, 4)\nhave %d\nwant 3", have)
	}
	if have := Coalesce("", ""); have != "" {
		t.Fatalf("Coalesce(\"\", \"\")\nhave %q\nwant \"\"", have)
	}
	if have := Coalesce[int](); have != 0 {
		t.Fatalf("Coalesce()\nhave %d\nwant 0", have)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	const near, far = 0.1, 10000.0
	m := Perspective(mgl64.DegToRad(70), 1.4, near, far)
	for _, tt := range []struct{ d, want float64 }{{near, 0}, {far, 1}} {
		v := m.Mul4x1(mgl64.Vec4{0, 0, -tt.d, 1})
		if z := v[2] / v[3]; math.Abs(z-tt.want) > 1e-9 {
			t.Fatalf("Perspective: z/w at distance %v\nhave %v\nwant %v", tt.d, z, tt.want)
		}
	}
}
