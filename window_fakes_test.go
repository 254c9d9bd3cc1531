package vscroll

import (
	"maps"
	"slices"
)

type fakeSlot struct {
	class   string
	visible bool
	offset  int
	text    string
	element Element

	// writes counts every setter call; contentWrites only SetText and
	// SetElement.
	writes        int
	contentWrites int
}

func (s *fakeSlot) SetClass(class string) {
	s.class = class
	s.writes++
}

func (s *fakeSlot) SetVisible(visible bool) {
	s.visible = visible
	s.writes++
}

func (s *fakeSlot) SetOffset(offset int) {
	s.offset = offset
	s.writes++
}

func (s *fakeSlot) SetText(text string) {
	s.text, s.element = text, nil
	s.writes++
	s.contentWrites++
}

func (s *fakeSlot) SetElement(e Element) {
	s.text, s.element = "", e
	s.writes++
	s.contentWrites++
}

// fakeContainer is a Container, ScrollTarget and SizeObserver recording what
// the window does to it.
type fakeContainer struct {
	height int
	slots  []*fakeSlot
	spacer int

	emptyText  string
	emptyShown bool
	cleared    bool

	top       int
	behaviors []ScrollBehavior
	listeners map[int]func()
	nextID    int

	observed map[*fakeSlot]func(height int) error
}

func newFakeContainer(height int) *fakeContainer {
	return &fakeContainer{
		height:    height,
		listeners: make(map[int]func()),
		observed:  make(map[*fakeSlot]func(height int) error),
	}
}

func (c *fakeContainer) ClientHeight() int { return c.height }

func (c *fakeContainer) CreateSlot() SlotView {
	s := &fakeSlot{}
	c.slots = append(c.slots, s)
	return s
}

func (c *fakeContainer) SetSpacerHeight(height int) { c.spacer = height }

func (c *fakeContainer) ShowEmpty(text string) {
	c.emptyText = text
	c.emptyShown = true
}

func (c *fakeContainer) HideEmpty() { c.emptyShown = false }

func (c *fakeContainer) Clear() {
	c.slots = nil
	c.spacer = 0
	c.emptyShown = false
	c.cleared = true
}

func (c *fakeContainer) ScrollTop() int { return c.top }

func (c *fakeContainer) ScrollTo(top int, behavior ScrollBehavior) {
	c.behaviors = append(c.behaviors, behavior)
	c.scroll(top)
}

// scroll moves the scroll position like a user would and notifies
// listeners.
func (c *fakeContainer) scroll(top int) {
	if c.top == top {
		return
	}
	c.top = top
	for _, id := range slices.Sorted(maps.Keys(c.listeners)) {
		c.listeners[id]()
	}
}

func (c *fakeContainer) OnScroll(fn func()) Subscription {
	c.nextID++
	id := c.nextID
	c.listeners[id] = fn
	return SubscriptionFunc(func() { delete(c.listeners, id) })
}

func (c *fakeContainer) Observe(view SlotView, notify func(height int) error) Subscription {
	s := view.(*fakeSlot)
	c.observed[s] = notify
	return SubscriptionFunc(func() { delete(c.observed, s) })
}

// resize delivers a height notification for slot id.
func (c *fakeContainer) resize(id, height int) error {
	notify, ok := c.observed[c.slots[id]]
	if !ok {
		return nil
	}
	return notify(height)
}

func (c *fakeContainer) writes() int {
	n := 0
	for _, s := range c.slots {
		n += s.writes
	}
	return n
}

// plainContainer is a Container that is neither a ScrollTarget nor a
// SizeObserver.
type plainContainer struct {
	c *fakeContainer
}

func (p plainContainer) ClientHeight() int          { return p.c.ClientHeight() }
func (p plainContainer) CreateSlot() SlotView       { return p.c.CreateSlot() }
func (p plainContainer) SetSpacerHeight(height int) { p.c.SetSpacerHeight(height) }
func (p plainContainer) ShowEmpty(text string)      { p.c.ShowEmpty(text) }
func (p plainContainer) HideEmpty()                 { p.c.HideEmpty() }
func (p plainContainer) Clear()                     { p.c.Clear() }

// fakeFrames queues frame callbacks until flush.
type fakeFrames struct {
	next     FrameID
	queue    []FrameID
	pending  map[FrameID]func() error
	requests int
	cancels  int
}

func newFakeFrames() *fakeFrames {
	return &fakeFrames{pending: make(map[FrameID]func() error)}
}

func (f *fakeFrames) RequestFrame(fn func() error) FrameID {
	f.next++
	f.requests++
	f.queue = append(f.queue, f.next)
	f.pending[f.next] = fn
	return f.next
}

func (f *fakeFrames) CancelFrame(id FrameID) {
	f.cancels++
	delete(f.pending, id)
}

// flush runs the callbacks queued before the call.
func (f *fakeFrames) flush() error {
	queue := f.queue
	f.queue = nil
	for _, id := range queue {
		fn, ok := f.pending[id]
		if !ok {
			continue
		}
		delete(f.pending, id)
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

// fakeHost is a ViewportHost and FrameRequester whose queues are drained by
// tests.
type fakeHost struct {
	*fakeFrames
	posted     []func() error
	animations []func() bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{fakeFrames: newFakeFrames()}
}

func (h *fakeHost) Post(fn func() error) {
	h.posted = append(h.posted, fn)
}

func (h *fakeHost) Animate(step func() bool) {
	h.animations = append(h.animations, step)
}

// tick advances animations once, then runs pending frames.
func (h *fakeHost) tick() error {
	animations := h.animations
	h.animations = nil
	for _, step := range animations {
		if step() {
			h.animations = append(h.animations, step)
		}
	}
	return h.flush()
}

// deliver runs the posted callbacks and reports how many ran.
func (h *fakeHost) deliver() (int, error) {
	posted := h.posted
	h.posted = nil
	for _, fn := range posted {
		if err := fn(); err != nil {
			return 0, err
		}
	}
	return len(posted), nil
}
