package vscroll

// The interfaces in this file describe the environment a Window renders into.
// Viewport and Application implement them for tcell; tests use fakes.

// Element is a visual subtree a render function can place into a slot.
// Elements are compared by identity, so implementations should be pointer
// types.
type Element interface {
	Primitive

	// Height returns the number of rows the element occupies at the given
	// width.
	Height(width int) int
}

// Content is what a render function produces for one item: either text or an
// element. A non-nil Element takes precedence over Text.
type Content struct {
	Text    string
	Element Element
}

// Text returns text content.
func Text(text string) Content {
	return Content{Text: text}
}

// ElementContent returns element content.
func ElementContent(e Element) Content {
	return Content{Element: e}
}

// same reports whether writing c over the current content would be a no-op.
func (c Content) same(other Content) bool {
	if c.Element != nil || other.Element != nil {
		return c.Element == other.Element
	}
	return c.Text == other.Text
}

// Container holds the pooled slots, the spacer that sizes the scrollable
// range and the empty-state element.
type Container interface {
	// ClientHeight returns the visible height of the container, or 0 if it
	// is not known yet.
	ClientHeight() int
	// CreateSlot creates a hidden slot parented to the container.
	CreateSlot() SlotView
	// SetSpacerHeight sets the total height of the scrollable content.
	SetSpacerHeight(height int)
	// ShowEmpty displays text in the empty-state element.
	ShowEmpty(text string)
	// HideEmpty hides the empty-state element.
	HideEmpty()
	// Clear removes every slot, the spacer and the empty-state element.
	Clear()
}

// SlotView is the host side of one pooled slot. Slots are positioned by
// offset only; moving a slot never changes the layout of its siblings.
type SlotView interface {
	SetClass(class string)
	SetVisible(visible bool)
	SetOffset(offset int)
	SetText(text string)
	SetElement(e Element)
}

// ScrollBehavior selects how a programmatic scroll reaches its target.
type ScrollBehavior int

const (
	// ScrollAuto jumps to the target immediately.
	ScrollAuto ScrollBehavior = iota
	// ScrollSmooth animates towards the target across frames.
	ScrollSmooth
)

// ScrollTarget is the source of the scroll offset.
type ScrollTarget interface {
	// ScrollTop returns the current vertical scroll offset.
	ScrollTop() int
	// ScrollTo moves the scroll offset. Listeners are notified as the
	// offset changes.
	ScrollTo(top int, behavior ScrollBehavior)
	// OnScroll registers fn to be called after every scroll offset change.
	OnScroll(fn func()) Subscription
}

// SizeObserver reports the rendered height of slots.
type SizeObserver interface {
	// Observe calls notify asynchronously whenever the rendered height of
	// view may have changed. Errors returned by notify surface to the host
	// loop.
	Observe(view SlotView, notify func(height int) error) Subscription
}

// FrameID identifies a requested frame callback.
type FrameID uint64

// FrameRequester schedules callbacks to run once before the next repaint.
type FrameRequester interface {
	RequestFrame(fn func() error) FrameID
	CancelFrame(id FrameID)
}

// Poster runs functions on the UI loop after the current event has been
// handled, without blocking the caller.
type Poster interface {
	Post(fn func() error)
}

// Subscription is a registration that can be released.
type Subscription interface {
	Unsubscribe()
}

// SubscriptionFunc adapts a function to Subscription.
type SubscriptionFunc func()

// Unsubscribe calls f.
func (f SubscriptionFunc) Unsubscribe() {
	f()
}
