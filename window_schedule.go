package vscroll

// scrollScheduler collapses scroll notifications into at most one pending
// render per frame.
type scrollScheduler struct {
	frames FrameRequester
	render func() error

	pending bool
	frame   FrameID
}

// notify requests a render for the next frame unless one is already
// pending, in which case the notification is dropped.
func (s *scrollScheduler) notify() {
	if s.pending {
		return
	}
	s.pending = true
	s.frame = s.frames.RequestFrame(s.run)
}

func (s *scrollScheduler) run() error {
	// Cleared even when the render fails.
	defer func() { s.pending = false }()
	return s.render()
}

// cancel drops the outstanding frame, if any.
func (s *scrollScheduler) cancel() {
	if !s.pending {
		return
	}
	s.frames.CancelFrame(s.frame)
	s.pending = false
}
