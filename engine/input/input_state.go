package input

import "github.com/go-gl/mathgl/mgl64"

// State tracks which logical buttons are held, newly pressed, and newly released
// during the current frame, plus the pointer motion and scroll accumulated since
// the last consumer cleared them.
//
// A button in the released set is never in the held set. The pressed and released
// sets are cleared once per frame by EndFrame; motion and scroll are cleared by
// their consumer through ClearDeltas.
//
// State is not safe for concurrent use; it is owned by the frame loop.
type State struct {
	held         ButtonSet
	justPressed  ButtonSet
	justReleased ButtonSet

	mouseDelta  mgl64.Vec2
	scrollDelta float64
}

// NewState creates an empty input state.
//
// Returns:
//   - *State: the new input state
func NewState() *State {
	return &State{}
}

// Press marks b as held. A press of an already held button is not reported again
// as newly pressed. Invalid buttons are ignored.
//
// Parameters:
//   - b: the button pressed
func (s *State) Press(b Button) {
	if !b.Valid() || s.held.Has(b) {
		return
	}
	s.held = s.held.With(b)
	s.justPressed = s.justPressed.With(b)
	s.justReleased = s.justReleased.Without(b)
}

// Release clears b from the held set and reports it as newly released.
// Releasing a button that was never pressed only records the release.
//
// Parameters:
//   - b: the button released
func (s *State) Release(b Button) {
	if !b.Valid() {
		return
	}
	s.held = s.held.Without(b)
	s.justReleased = s.justReleased.With(b)
}

// AccumulateMotion adds a pointer motion delta.
//
// Parameters:
//   - dx, dy: pointer movement since the previous motion event
func (s *State) AccumulateMotion(dx, dy float64) {
	s.mouseDelta = s.mouseDelta.Add(mgl64.Vec2{dx, dy})
}

// AccumulateScroll adds a vertical scroll delta.
//
// Parameters:
//   - dy: scroll amount (positive = away from the user)
func (s *State) AccumulateScroll(dy float64) {
	s.scrollDelta += dy
}

// IsHeld reports whether b is currently held.
func (s *State) IsHeld(b Button) bool {
	return s.held.Has(b)
}

// IsJustPressed reports whether b was pressed during the current frame.
func (s *State) IsJustPressed(b Button) bool {
	return s.justPressed.Has(b)
}

// IsJustReleased reports whether b was released during the current frame.
func (s *State) IsJustReleased(b Button) bool {
	return s.justReleased.Has(b)
}

// Held returns the set of held buttons.
func (s *State) Held() ButtonSet {
	return s.held
}

// MouseDelta returns the pointer motion accumulated since the last ClearDeltas.
func (s *State) MouseDelta() mgl64.Vec2 {
	return s.mouseDelta
}

// ScrollDelta returns the scroll accumulated since the last ClearDeltas.
func (s *State) ScrollDelta() float64 {
	return s.scrollDelta
}

// ClearDeltas resets accumulated motion and scroll. Called by the consumer once
// it has applied them.
func (s *State) ClearDeltas() {
	s.mouseDelta = mgl64.Vec2{}
	s.scrollDelta = 0
}

// EndFrame clears the newly pressed and newly released sets. Motion and scroll
// are left for their consumer.
func (s *State) EndFrame() {
	s.justPressed = 0
	s.justReleased = 0
}
