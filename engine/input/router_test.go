package input

import (
	"testing"

	"github.com/Carmen-Shannon/simulations/common"
)

func TestRouterGatesWhileUnlocked(t *testing.T) {
	r := NewRouter(NewState(), nil, LockGatesKeyboard)
	r.KeyDown(common.KeyW)
	r.MouseMove(10, 5)
	r.Scroll(2)
	s := r.State()
	if s.IsHeld(ButtonForward) {
		t.Fatal("r.KeyDown: movement reached state while unlocked")
	}
	if have := s.MouseDelta(); have[0] != 0 || have[1] != 0 {
		t.Fatalf("r.MouseMove while unlocked\nhave %v\nwant [0 0]", have)
	}
	if have := s.ScrollDelta(); have != 0 {
		t.Fatalf("r.Scroll while unlocked\nhave %v\nwant 0", have)
	}

	r.KeyDown(common.KeyEsc)
	if !s.IsJustPressed(ButtonToggleLock) {
		t.Fatal("r.KeyDown: toggle gated while unlocked")
	}
}

func TestRouterForwardsWhileLocked(t *testing.T) {
	r := NewRouter(NewState(), nil, LockGatesKeyboard)
	r.SetLocked(true)
	r.KeyDown(common.KeyD)
	r.MouseMove(10, 5)
	r.Scroll(-1)
	s := r.State()
	if !s.IsHeld(ButtonStrafeRight) {
		t.Fatal("r.KeyDown: movement dropped while locked")
	}
	if have := s.MouseDelta(); have[0] != 10 || have[1] != 5 {
		t.Fatalf("r.MouseMove\nhave %v\nwant [10 5]", have)
	}
	if have := s.ScrollDelta(); have != -1 {
		t.Fatalf("r.Scroll\nhave %v\nwant -1", have)
	}

	r.SetLocked(false)
	r.KeyUp(common.KeyD)
	if s.IsHeld(ButtonStrafeRight) {
		t.Fatal("r.KeyUp: release gated while unlocked")
	}
}

func TestRouterKeyboardAlwaysActive(t *testing.T) {
	r := NewRouter(NewState(), nil, KeyboardAlwaysActive)
	r.KeyDown(common.KeySpace)
	r.MouseMove(1, 1)
	if !r.State().IsHeld(ButtonAscend) {
		t.Fatal("r.KeyDown: movement dropped under KeyboardAlwaysActive")
	}
	if have := r.State().MouseDelta(); have[0] != 0 {
		t.Fatalf("r.MouseMove under KeyboardAlwaysActive\nhave %v\nwant [0 0]", have)
	}
}

func TestRouterToggleLockTwice(t *testing.T) {
	r := NewRouter(NewState(), nil, LockGatesKeyboard)
	orig := r.Locked()
	r.ToggleLock()
	if r.Locked() == orig {
		t.Fatal("r.ToggleLock: lock unchanged")
	}
	r.ToggleLock()
	if have := r.Locked(); have != orig {
		t.Fatalf("r.Locked after two toggles\nhave %v\nwant %v", have, orig)
	}
	r.MouseMove(4, 4)
	if have := r.State().MouseDelta(); have[0] != 0 {
		t.Fatalf("forwarding after two toggles\nhave %v\nwant [0 0]", have)
	}
}

func TestRouterUnmappedKey(t *testing.T) {
	r := NewRouter(NewState(), Keymap{common.KeyW: ButtonForward}, LockGatesKeyboard)
	r.SetLocked(true)
	r.KeyDown(12345)
	r.KeyUp(12345)
	if have := r.State().Held(); !have.Empty() {
		t.Fatalf("unmapped key\nhave %v\nwant empty", have.Buttons())
	}
}
