package scene

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/Carmen-Shannon/simulations/engine/camera"
	"github.com/Carmen-Shannon/simulations/engine/game_object"
	"github.com/Carmen-Shannon/simulations/engine/input"
	"github.com/Carmen-Shannon/simulations/engine/model"
	"github.com/Carmen-Shannon/simulations/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

// recorder is a renderer.Renderer that records the calls Scene makes.
type recorder struct {
	calls   []string
	bound   int
	bindErr error
	models  map[renderer.Handle]mgl32.Mat4
}

func (r *recorder) Bind(model.Mesh) (renderer.Handle, error) {
	if r.bindErr != nil {
		return 0, r.bindErr
	}
	h := renderer.Handle(r.bound)
	r.bound++
	return h, nil
}

func (r *recorder) SetView(mgl32.Mat4)       { r.calls = append(r.calls, "view") }
func (r *recorder) SetProjection(mgl32.Mat4) { r.calls = append(r.calls, "projection") }
func (r *recorder) SetModel(h renderer.Handle, m mgl32.Mat4) {
	if r.models == nil {
		r.models = make(map[renderer.Handle]mgl32.Mat4)
	}
	r.models[h] = m
	r.calls = append(r.calls, fmt.Sprintf("model %d", h))
}
func (r *recorder) EnableDepthTest()  { r.calls = append(r.calls, "depth on") }
func (r *recorder) DisableDepthTest() { r.calls = append(r.calls, "depth off") }
func (r *recorder) SetWireframe(on bool) {
	r.calls = append(r.calls, fmt.Sprintf("wireframe %v", on))
}
func (r *recorder) Draw(h renderer.Handle) { r.calls = append(r.calls, fmt.Sprintf("draw %d", h)) }
func (r *recorder) BeginFrame() error      { return nil }
func (r *recorder) EndFrame()              {}
func (r *recorder) Present()               {}
func (r *recorder) Resize(int, int)        {}
func (r *recorder) Close()                 {}

var _ renderer.Renderer = &recorder{}

func newTestScene(r *recorder, options ...SceneBuilderOption) Scene {
	return NewScene(camera.NewCamera(), input.NewState(), r, options...)
}

func TestDrawBracketsDepthTest(t *testing.T) {
	r := &recorder{}
	s := newTestScene(r, WithObjects(
		game_object.NewGameObject(game_object.WithPosition(160, 0, 0)),
		game_object.NewGameObject(game_object.WithPosition(0, 0, 80)),
	))
	s.Draw(700, 500)
	want := []string{
		"view", "projection", "wireframe false", "depth on",
		"model 0", "draw 0",
		"model 1", "draw 1",
		"depth off",
	}
	if !reflect.DeepEqual(r.calls, want) {
		t.Fatalf("s.Draw calls\nhave %v\nwant %v", r.calls, want)
	}
}

func TestDrawEmptySceneStillBrackets(t *testing.T) {
	r := &recorder{}
	s := newTestScene(r)
	s.Draw(700, 500)
	s.Draw(700, 500)
	want := []string{
		"view", "projection", "wireframe false", "depth on", "depth off",
		"view", "projection", "wireframe false", "depth on", "depth off",
	}
	if !reflect.DeepEqual(r.calls, want) {
		t.Fatalf("s.Draw calls\nhave %v\nwant %v", r.calls, want)
	}
}

func TestDrawWithoutDepthTest(t *testing.T) {
	r := &recorder{}
	s := newTestScene(r, WithObjects(game_object.NewGameObject()))
	if s.ToggleDepthTest() {
		t.Fatal("s.ToggleDepthTest: still enabled")
	}
	s.ToggleWireframe()
	s.Draw(700, 500)
	want := []string{"view", "projection", "wireframe true", "model 0", "draw 0"}
	if !reflect.DeepEqual(r.calls, want) {
		t.Fatalf("s.Draw calls\nhave %v\nwant %v", r.calls, want)
	}
}

func TestInsertAssignsIDsInOrder(t *testing.T) {
	r := &recorder{}
	s := newTestScene(r)
	for i := 1; i <= 3; i++ {
		id, err := s.Insert(game_object.NewGameObject(game_object.WithPosition(float64(i), 0, 0)))
		if err != nil {
			t.Fatalf("s.Insert: unexpected error: %v", err)
		}
		if id != uint64(i) {
			t.Fatalf("s.Insert: id\nhave %d\nwant %d", id, i)
		}
	}
	if r.bound != 3 {
		t.Fatalf("renderer Bind calls\nhave %d\nwant 3", r.bound)
	}
	for i, obj := range s.Objects() {
		if obj.ID() != uint64(i+1) {
			t.Fatalf("s.Objects()[%d].ID\nhave %d\nwant %d", i, obj.ID(), i+1)
		}
	}
}

func TestInsertRejectsInvalidScale(t *testing.T) {
	r := &recorder{}
	s := newTestScene(r)
	_, err := s.Insert(game_object.NewGameObject(game_object.WithScale(1, 0, 1)))
	if !errors.Is(err, ErrInvalidScale) {
		t.Fatalf("s.Insert: error\nhave %v\nwant %v", err, ErrInvalidScale)
	}
	if s.Count() != 0 || r.bound != 0 {
		t.Fatalf("s.Insert: rejected object was kept (count %d, bound %d)", s.Count(), r.bound)
	}
}

func TestInsertRejectsUnknownKind(t *testing.T) {
	r := &recorder{}
	s := newTestScene(r)
	_, err := s.Insert(game_object.NewGameObject(game_object.WithKind(game_object.Kind(9))))
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("s.Insert: error\nhave %v\nwant %v", err, ErrUnknownKind)
	}
	if s.Count() != 0 || r.bound != 0 {
		t.Fatalf("s.Insert: rejected object was kept (count %d, bound %d)", s.Count(), r.bound)
	}
}

func TestInsertBindError(t *testing.T) {
	bindErr := errors.New("out of memory")
	s := newTestScene(&recorder{bindErr: bindErr})
	if _, err := s.Insert(game_object.NewGameObject()); !errors.Is(err, bindErr) {
		t.Fatalf("s.Insert: error\nhave %v\nwant %v", err, bindErr)
	}
	if s.Count() != 0 {
		t.Fatalf("s.Count\nhave %d\nwant 0", s.Count())
	}
}

func TestNewScenePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewScene(nil, ...): no panic")
		}
	}()
	NewScene(nil, input.NewState(), &recorder{})
}

func TestRemovePreservesOrder(t *testing.T) {
	r := &recorder{}
	s := newTestScene(r)
	for i := 0; i < 4; i++ {
		s.Insert(game_object.NewGameObject())
	}
	if !s.Remove(2) {
		t.Fatal("s.Remove(2): not found")
	}
	if s.Remove(2) {
		t.Fatal("s.Remove(2): removed twice")
	}
	var ids []uint64
	for _, obj := range s.Objects() {
		ids = append(ids, obj.ID())
	}
	if !reflect.DeepEqual(ids, []uint64{1, 3, 4}) {
		t.Fatalf("ids after Remove\nhave %v\nwant [1 3 4]", ids)
	}
	if s.Get(2) != nil || s.Get(3) == nil {
		t.Fatal("s.Get after Remove returned the wrong objects")
	}
	r.calls = nil
	s.Draw(700, 500)
	want := []string{
		"view", "projection", "wireframe false", "depth on",
		"model 0", "draw 0", "model 2", "draw 2", "model 3", "draw 3",
		"depth off",
	}
	if !reflect.DeepEqual(r.calls, want) {
		t.Fatalf("s.Draw calls after Remove\nhave %v\nwant %v", r.calls, want)
	}
}

func TestUpdateCameraThenObjects(t *testing.T) {
	r := &recorder{}
	s := newTestScene(r, WithObjects(game_object.NewGameObject(game_object.WithPosition(160, 0, 0), game_object.WithSpeed(1))))
	s.Input().Press(input.ButtonAscend)
	s.Input().AccumulateMotion(3, 0)
	startY := s.Camera().Position()[1]
	s.Update(0.5)
	if y := s.Camera().Position()[1]; y != startY+20 {
		t.Fatalf("camera Y after Update\nhave %v\nwant %v", y, startY+20)
	}
	if d := s.Input().MouseDelta(); d[0] != 0 {
		t.Fatalf("s.Input().MouseDelta after Update\nhave %v\nwant zero", d)
	}
	if ph := s.Objects()[0].Phase(); ph != 0.5 {
		t.Fatalf("object phase after Update\nhave %v\nwant 0.5", ph)
	}
}

func TestParallelUpdateMatchesSequential(t *testing.T) {
	build := func(options ...SceneBuilderOption) Scene {
		s := newTestScene(&recorder{}, options...)
		for i := 0; i < 257; i++ {
			s.Insert(game_object.NewGameObject(
				game_object.WithPosition(float64(10+i), float64(i%7), float64(-i)),
				game_object.WithSpeed(0.01*float64(i)),
			))
		}
		return s
	}
	seq := build(WithParallelThreshold(1 << 30))
	par := build(WithParallelThreshold(1), WithUpdateWorkers(4))
	for i := 0; i < 20; i++ {
		seq.Update(1.0 / 60)
		par.Update(1.0 / 60)
	}
	a, b := seq.Objects(), par.Objects()
	for i := range a {
		if a[i].Position() != b[i].Position() || a[i].Rotation() != b[i].Rotation() {
			t.Fatalf("object %d: parallel %v %v, sequential %v %v",
				i, b[i].Position(), b[i].Rotation(), a[i].Position(), a[i].Rotation())
		}
	}
}

func TestDrawPushesModelMatrices(t *testing.T) {
	r := &recorder{}
	obj := game_object.NewGameObject(game_object.WithKind(game_object.KindStaticCube), game_object.WithPosition(1, 2, 3))
	s := newTestScene(r, WithObjects(obj))
	s.Draw(700, 500)
	m := r.models[0]
	if m[12] != 1 || m[13] != 2 || m[14] != 3 {
		t.Fatalf("model translation\nhave %v %v %v\nwant 1 2 3", m[12], m[13], m[14])
	}
}
