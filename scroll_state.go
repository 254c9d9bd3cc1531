package vscroll

import "slices"

// ScrollState is a vertical scroll position over content of a known length.
// It implements ScrollTarget and can be shared between a Viewport and other
// primitives, such as a ScrollBar.
//
// Like every primitive, a ScrollState must only be used from the event loop.
type ScrollState struct {
	animator Animator

	top     int
	lengths ScrollLengths

	listeners    []scrollListener
	nextListener int

	// goal is the target of a running smooth scroll.
	goal      int
	animating bool
}

type scrollListener struct {
	id int
	fn func()
}

// NewScrollState returns a scroll state at the top. Smooth scrolling steps
// through animator frames; a nil animator makes every scroll instant.
func NewScrollState(animator Animator) *ScrollState {
	return &ScrollState{animator: animator}
}

// ScrollTop returns the current scroll position.
func (s *ScrollState) ScrollTop() int {
	return s.top
}

// Lengths returns the content and viewport lengths.
func (s *ScrollState) Lengths() ScrollLengths {
	return s.lengths
}

// MaxScroll returns the largest valid scroll position.
func (s *ScrollState) MaxScroll() int {
	return max(s.lengths.ContentLen-s.lengths.ViewportLen, 0)
}

// SetLengths updates the content and viewport lengths and clamps the scroll
// position into the new range.
func (s *ScrollState) SetLengths(lengths ScrollLengths) {
	lengths.ContentLen = max(lengths.ContentLen, 0)
	lengths.ViewportLen = max(lengths.ViewportLen, 0)
	if s.lengths == lengths {
		return
	}
	s.lengths = lengths
	s.goal = s.clamp(s.goal)
	s.set(s.top)
}

// ScrollTo implements ScrollTarget. The position is clamped to
// [0, MaxScroll].
func (s *ScrollState) ScrollTo(top int, behavior ScrollBehavior) {
	top = s.clamp(top)
	if behavior != ScrollSmooth || s.animator == nil {
		s.animating = false
		s.goal = top
		s.set(top)
		return
	}

	s.goal = top
	if s.animating || s.goal == s.top {
		return
	}
	s.animating = true
	s.animator.Animate(s.step)
}

// ScrollBy scrolls instantly by delta rows.
func (s *ScrollState) ScrollBy(delta int) {
	base := s.top
	if s.animating {
		base = s.goal
	}
	s.ScrollTo(base+delta, ScrollAuto)
}

// OnScroll implements ScrollTarget. fn runs synchronously after every change
// of the scroll position.
func (s *ScrollState) OnScroll(fn func()) Subscription {
	s.nextListener++
	id := s.nextListener
	s.listeners = append(s.listeners, scrollListener{id: id, fn: fn})
	return SubscriptionFunc(func() {
		s.listeners = slices.DeleteFunc(s.listeners, func(l scrollListener) bool {
			return l.id == id
		})
	})
}

// step moves half of the remaining distance, at least one row.
func (s *ScrollState) step() bool {
	if !s.animating {
		return false
	}
	distance := s.goal - s.top
	move := distance / 2
	switch {
	case move == 0 && distance > 0:
		move = 1
	case move == 0 && distance < 0:
		move = -1
	}
	s.set(s.top + move)
	if s.top == s.goal {
		s.animating = false
	}
	return s.animating
}

func (s *ScrollState) clamp(top int) int {
	return min(max(top, 0), s.MaxScroll())
}

func (s *ScrollState) set(top int) {
	top = s.clamp(top)
	if top == s.top {
		return
	}
	s.top = top
	for _, l := range slices.Clone(s.listeners) {
		l.fn()
	}
}

var _ ScrollTarget = (*ScrollState)(nil)
