package renderer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestGPUCameraUniformMarshal(t *testing.T) {
	u := GPUCameraUniform{
		View:       mgl32.Translate3D(1, 2, 3),
		Projection: mgl32.Scale3D(4, 5, 6),
	}
	buf := u.Marshal()
	if len(buf) != cameraUniformSize {
		t.Fatalf("len(u.Marshal())\nhave %d\nwant %d", len(buf), cameraUniformSize)
	}
	at := func(i int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:])) }
	// Column-major: the translation sits in elements 12..14.
	if at(12) != 1 || at(13) != 2 || at(14) != 3 {
		t.Fatalf("u.Marshal: view translation\nhave %v %v %v\nwant 1 2 3", at(12), at(13), at(14))
	}
	if at(16) != 4 || at(16+5) != 5 || at(16+10) != 6 {
		t.Fatalf("u.Marshal: projection diagonal\nhave %v %v %v\nwant 4 5 6", at(16), at(21), at(26))
	}
}

func TestGPUModelDataMarshal(t *testing.T) {
	d := GPUModelData{Model: mgl32.Ident4()}
	buf := d.Marshal()
	if len(buf) != modelUniformSize {
		t.Fatalf("len(d.Marshal())\nhave %d\nwant %d", len(buf), modelUniformSize)
	}
	for i := 0; i < 16; i++ {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		if f := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:])); f != want {
			t.Fatalf("d.Marshal()[%d]\nhave %v\nwant %v", i, f, want)
		}
	}
}
