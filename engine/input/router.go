package input

// LockPolicy decides what reaches the input state while input-lock is off.
type LockPolicy int

const (
	// LockGatesKeyboard drops movement key presses while unlocked. Releases and
	// toggles always pass so no key stays stuck.
	LockGatesKeyboard LockPolicy = iota

	// KeyboardAlwaysActive lets movement keys through while unlocked. Pointer
	// motion and scroll are still gated.
	KeyboardAlwaysActive
)

// Router adapts raw window events into State mutations. It owns the input-lock
// flag: pointer motion and scroll are only forwarded while locked.
type Router struct {
	state  *State
	keymap Keymap
	policy LockPolicy
	locked bool
}

// NewRouter creates a Router feeding state. A nil keymap selects DefaultKeymap.
//
// Parameters:
//   - state: the input state to mutate (must not be nil)
//   - keymap: key code bindings, or nil for the defaults
//   - policy: what passes while unlocked
//
// Returns:
//   - *Router: the new router, initially unlocked
func NewRouter(state *State, keymap Keymap, policy LockPolicy) *Router {
	if state == nil {
		panic("input: NewRouter requires a non-nil State")
	}
	if keymap == nil {
		keymap = DefaultKeymap()
	}
	return &Router{
		state:  state,
		keymap: keymap,
		policy: policy,
	}
}

// State returns the input state the router feeds.
func (r *Router) State() *State {
	return r.state
}

// Locked reports whether input-lock is active.
func (r *Router) Locked() bool {
	return r.locked
}

// SetLocked sets input-lock.
func (r *Router) SetLocked(locked bool) {
	r.locked = locked
}

// ToggleLock flips input-lock and returns the new value.
func (r *Router) ToggleLock() bool {
	r.locked = !r.locked
	return r.locked
}

// KeyDown handles a platform key press.
//
// Parameters:
//   - keyCode: the platform key code
func (r *Router) KeyDown(keyCode uint32) {
	b, ok := r.keymap.Lookup(keyCode)
	if !ok {
		return
	}
	if !b.IsToggle() && !r.locked && r.policy == LockGatesKeyboard {
		return
	}
	r.state.Press(b)
}

// KeyUp handles a platform key release. Releases are never gated.
//
// Parameters:
//   - keyCode: the platform key code
func (r *Router) KeyUp(keyCode uint32) {
	b, ok := r.keymap.Lookup(keyCode)
	if !ok {
		return
	}
	r.state.Release(b)
}

// MouseMove handles a pointer motion delta.
//
// Parameters:
//   - dx, dy: pointer movement since the previous event
func (r *Router) MouseMove(dx, dy float64) {
	if !r.locked {
		return
	}
	r.state.AccumulateMotion(dx, dy)
}

// Scroll handles a vertical scroll delta.
//
// Parameters:
//   - dy: scroll amount
func (r *Router) Scroll(dy float64) {
	if !r.locked {
		return
	}
	r.state.AccumulateScroll(dy)
}
