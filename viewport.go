package vscroll

import (
	"github.com/gdamore/tcell/v3"
	"github.com/xqrs/vscroll/keybind"
)

// ViewportHost is the event loop a Viewport runs on. Application implements
// it.
type ViewportHost interface {
	Animator
	Poster
}

// ViewportAction is a scroll action triggered by a key.
type ViewportAction int

const (
	ViewportLineUp ViewportAction = iota
	ViewportLineDown
	ViewportPageUp
	ViewportPageDown
	ViewportTop
	ViewportBottom
)

// DefaultViewportKeys returns the default scroll key bindings.
func DefaultViewportKeys() *keybind.Map[ViewportAction] {
	keys := &keybind.Map[ViewportAction]{}
	keys.Bind(ViewportLineUp, keybind.NewKeybind(keybind.WithKeys("up", "k"), keybind.WithHelp("↑/k", "up")))
	keys.Bind(ViewportLineDown, keybind.NewKeybind(keybind.WithKeys("down", "j"), keybind.WithHelp("↓/j", "down")))
	keys.Bind(ViewportPageUp, keybind.NewKeybind(keybind.WithKeys("pgup", "ctrl+b"), keybind.WithHelp("pgup", "page up")))
	keys.Bind(ViewportPageDown, keybind.NewKeybind(keybind.WithKeys("pgdn", "ctrl+f", " "), keybind.WithHelp("pgdn", "page down")))
	keys.Bind(ViewportTop, keybind.NewKeybind(keybind.WithKeys("home", "g"), keybind.WithHelp("g", "top")))
	keys.Bind(ViewportBottom, keybind.NewKeybind(keybind.WithKeys("end", "G"), keybind.WithHelp("G", "bottom")))
	return keys
}

// Viewport is a scrollable tcell primitive hosting the slots of a Window. It
// implements Container, ScrollTarget and SizeObserver, so a Window only needs
// a frame requester besides it:
//
//	viewport := vscroll.NewViewport(app)
//	window, err := vscroll.NewWindow(viewport, vscroll.WindowOptions[string]{
//		ItemHeight: 1,
//		Frames:     app,
//		Data:       lines,
//	})
//
// Slots are drawn at their offset minus the scroll position and clipped to
// the inner rectangle. After every draw, slots whose content or height
// changed report their height through the host's Poster.
type Viewport struct {
	*Box

	host      ViewportHost
	scroll    *ScrollState
	scrollBar *ScrollBar
	keys      *keybind.Map[ViewportAction]

	slots  []*viewSlot
	spacer int

	emptyText    string
	emptyVisible bool
	emptyStyle   tcell.Style

	textStyle   tcell.Style
	classStyles map[string]tcell.Style

	showScrollBar bool
	wheelStep     int

	// sized is set once the viewport has been given a rectangle.
	sized bool
	// contentWidth is the slot width of the last draw.
	contentWidth int
}

// NewViewport returns an empty viewport running on host.
func NewViewport(host ViewportHost) *Viewport {
	v := &Viewport{
		Box:           NewBox(),
		host:          host,
		scroll:        NewScrollState(host),
		keys:          DefaultViewportKeys(),
		emptyStyle:    tcell.StyleDefault.Foreground(Styles.SecondaryTextColor),
		textStyle:     tcell.StyleDefault.Foreground(Styles.PrimaryTextColor),
		classStyles:   make(map[string]tcell.Style),
		showScrollBar: true,
		wheelStep:     3,
	}
	v.scrollBar = NewScrollBar(v.scroll)
	v.scroll.OnScroll(v.MarkDirty)
	return v
}

// ScrollState returns the scroll position shared by the viewport and its
// scroll bar.
func (v *Viewport) ScrollState() *ScrollState {
	return v.scroll
}

// Keys returns the key bindings of the viewport. Bindings may be changed in
// place.
func (v *Viewport) Keys() *keybind.Map[ViewportAction] {
	return v.keys
}

// SetShowScrollBar sets whether a scroll bar is drawn in the rightmost column
// when the content overflows.
func (v *Viewport) SetShowScrollBar(show bool) *Viewport {
	if v.showScrollBar != show {
		v.showScrollBar = show
		v.MarkDirty()
	}
	return v
}

// SetWheelStep sets the number of rows scrolled per mouse wheel notch.
func (v *Viewport) SetWheelStep(rows int) *Viewport {
	v.wheelStep = max(rows, 1)
	return v
}

// SetTextStyle sets the style of text slots without a class style.
func (v *Viewport) SetTextStyle(style tcell.Style) *Viewport {
	if v.textStyle != style {
		v.textStyle = style
		v.MarkDirty()
	}
	return v
}

// SetEmptyStyle sets the style of the empty-state text.
func (v *Viewport) SetEmptyStyle(style tcell.Style) *Viewport {
	if v.emptyStyle != style {
		v.emptyStyle = style
		v.MarkDirty()
	}
	return v
}

// SetClassStyle sets the style of text slots carrying class.
func (v *Viewport) SetClassStyle(class string, style tcell.Style) *Viewport {
	v.classStyles[class] = style
	v.MarkDirty()
	return v
}

// SetRect sets a new position of the viewport.
func (v *Viewport) SetRect(x, y, width, height int) {
	v.sized = true
	v.Box.SetRect(x, y, width, height)
}

// ClientHeight implements Container. It is 0 until the viewport has been
// given a rectangle.
func (v *Viewport) ClientHeight() int {
	if !v.sized {
		return 0
	}
	_, _, _, height := v.GetInnerRect()
	return height
}

// CreateSlot implements Container.
func (v *Viewport) CreateSlot() SlotView {
	s := &viewSlot{parent: v, reported: -1, wrapWidth: -1}
	v.slots = append(v.slots, s)
	v.MarkDirty()
	return s
}

// SetSpacerHeight implements Container.
func (v *Viewport) SetSpacerHeight(height int) {
	if v.spacer == height {
		return
	}
	v.spacer = height
	v.scroll.SetLengths(ScrollLengths{ContentLen: height, ViewportLen: v.ClientHeight()})
	v.MarkDirty()
}

// SpacerHeight returns the height of the scrollable content.
func (v *Viewport) SpacerHeight() int {
	return v.spacer
}

// ShowEmpty implements Container.
func (v *Viewport) ShowEmpty(text string) {
	if v.emptyVisible && v.emptyText == text {
		return
	}
	v.emptyText = text
	v.emptyVisible = true
	v.MarkDirty()
}

// HideEmpty implements Container.
func (v *Viewport) HideEmpty() {
	if v.emptyVisible {
		v.emptyVisible = false
		v.MarkDirty()
	}
}

// Clear implements Container.
func (v *Viewport) Clear() {
	for _, s := range v.slots {
		s.release()
	}
	v.slots = nil
	v.spacer = 0
	v.emptyVisible = false
	v.emptyText = ""
	v.scroll.SetLengths(ScrollLengths{ViewportLen: v.ClientHeight()})
	v.MarkDirty()
}

// ScrollTop implements ScrollTarget.
func (v *Viewport) ScrollTop() int {
	return v.scroll.ScrollTop()
}

// ScrollTo implements ScrollTarget.
func (v *Viewport) ScrollTo(top int, behavior ScrollBehavior) {
	v.scroll.ScrollTo(top, behavior)
}

// OnScroll implements ScrollTarget.
func (v *Viewport) OnScroll(fn func()) Subscription {
	return v.scroll.OnScroll(fn)
}

// Observe implements SizeObserver. Only slots created by this viewport can be
// observed; other views are ignored.
func (v *Viewport) Observe(view SlotView, notify func(height int) error) Subscription {
	s, ok := view.(*viewSlot)
	if !ok || s.parent != v {
		return SubscriptionFunc(func() {})
	}
	s.notify = notify
	s.changed = true
	return SubscriptionFunc(func() {
		s.notify = nil
	})
}

// Draw draws this primitive onto the screen.
func (v *Viewport) Draw(screen tcell.Screen) {
	v.DrawForSubclass(screen, v)

	x, y, width, height := v.GetInnerRect()
	v.scroll.SetLengths(ScrollLengths{ContentLen: v.spacer, ViewportLen: height})
	if width <= 0 || height <= 0 {
		return
	}

	if v.showScrollBar && v.spacer > height && width > 1 {
		width--
		v.scrollBar.SetRect(x+width, y, 1, height)
		v.scrollBar.Draw(screen)
	}
	v.contentWidth = width

	if v.emptyVisible {
		lines := WordWrap(v.emptyText, width)
		top := y + max(height-len(lines), 0)/2
		for row := 0; row < len(lines) && row < height; row++ {
			printWithStyle(screen, lines[row], x, top+row, 0, width, AlignmentCenter, v.emptyStyle, true)
		}
	}

	clip := newClippedScreen(screen, x, y, width, height)
	scrollTop := v.scroll.ScrollTop()
	for _, s := range v.slots {
		if !s.visible {
			continue
		}
		rowY := y + s.offset - scrollTop
		rows := s.height(width)
		if rowY+rows <= y || rowY >= y+height {
			continue
		}
		s.draw(clip, x, rowY, width, rows)
	}

	v.reportSizes(width)
}

// reportSizes posts a height notification for every observed, visible slot
// whose content or height changed since its last report. The height is
// measured again when the notification is delivered.
func (v *Viewport) reportSizes(width int) {
	for _, s := range v.slots {
		if s.notify == nil || !s.visible {
			continue
		}
		rows := s.height(width)
		if !s.changed && rows == s.reported {
			continue
		}
		s.changed = false
		s.reported = rows
		v.host.Post(func() error {
			if s.notify == nil || !s.visible {
				return nil
			}
			rows := s.height(v.contentWidth)
			s.reported = rows
			return s.notify(rows)
		})
	}
}

// InputHandler scrolls on the bound keys.
func (v *Viewport) InputHandler(event *tcell.EventKey) Command {
	action, ok := v.keys.Action(event)
	if !ok {
		return nil
	}
	page := max(v.ClientHeight()-1, 1)
	switch action {
	case ViewportLineUp:
		v.scroll.ScrollBy(-1)
	case ViewportLineDown:
		v.scroll.ScrollBy(1)
	case ViewportPageUp:
		v.scroll.ScrollBy(-page)
	case ViewportPageDown:
		v.scroll.ScrollBy(page)
	case ViewportTop:
		v.scroll.ScrollTo(0, ScrollSmooth)
	case ViewportBottom:
		v.scroll.ScrollTo(v.scroll.MaxScroll(), ScrollSmooth)
	}
	return ConsumeEventCommand{}
}

// MouseHandler focuses the viewport on click, forwards clicks on the scroll
// bar and scrolls on the mouse wheel.
func (v *Viewport) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if !v.InRect(event.Position()) {
		return nil, nil
	}
	switch action {
	case MouseLeftDown:
		var cmd Command = SetFocusCommand{Target: v}
		if v.spacer > v.ClientHeight() && v.showScrollBar {
			_, barCmd := v.scrollBar.MouseHandler(action, event)
			cmd = AppendCommand(cmd, barCmd)
		}
		return nil, cmd
	case MouseScrollUp:
		v.scroll.ScrollBy(-v.wheelStep)
		return nil, ConsumeEventCommand{}
	case MouseScrollDown:
		v.scroll.ScrollBy(v.wheelStep)
		return nil, ConsumeEventCommand{}
	}
	return nil, nil
}

// viewSlot is one pooled slot of a Viewport.
type viewSlot struct {
	parent *Viewport

	class   string
	visible bool
	offset  int
	text    string
	element Element

	// Wrapped text lines for wrapWidth.
	lines     []string
	wrapWidth int

	notify   func(height int) error
	reported int
	// changed is set when the slot was rebound or rewritten since its last
	// height report.
	changed bool
}

func (s *viewSlot) SetClass(class string) {
	if s.class != class {
		s.class = class
		s.parent.MarkDirty()
	}
}

func (s *viewSlot) SetVisible(visible bool) {
	if s.visible != visible {
		s.visible = visible
		s.changed = true
		s.parent.MarkDirty()
	}
}

func (s *viewSlot) SetOffset(offset int) {
	if s.offset != offset {
		s.offset = offset
		s.changed = true
		s.parent.MarkDirty()
	}
}

func (s *viewSlot) SetText(text string) {
	s.setElement(nil)
	s.text = text
	s.wrapWidth = -1
	s.changed = true
	s.parent.MarkDirty()
}

func (s *viewSlot) SetElement(e Element) {
	s.setElement(e)
	s.text = ""
	s.wrapWidth = -1
	s.changed = true
	s.parent.MarkDirty()
}

func (s *viewSlot) setElement(e Element) {
	if s.element == e {
		return
	}
	s.parent.Disown(s.element)
	s.element = e
	s.parent.Adopt(e)
}

func (s *viewSlot) release() {
	s.setElement(nil)
	s.notify = nil
}

func (s *viewSlot) wrapped(width int) []string {
	if s.wrapWidth != width {
		s.lines = WordWrap(s.text, width)
		s.wrapWidth = width
	}
	return s.lines
}

// height returns the rows the slot occupies at width.
func (s *viewSlot) height(width int) int {
	if s.element != nil {
		return max(s.element.Height(width), 0)
	}
	return len(s.wrapped(width))
}

func (s *viewSlot) draw(screen tcell.Screen, x, y, width, rows int) {
	if s.element != nil {
		s.element.SetRect(x, y, width, rows)
		s.element.Draw(screen)
		markClean(s.element)
		return
	}

	style, ok := s.parent.classStyles[s.class]
	if !ok {
		style = s.parent.textStyle
	}
	for row, line := range s.wrapped(width) {
		for col := x; col < x+width; col++ {
			screen.Put(col, y+row, " ", style)
		}
		printWithStyle(screen, line, x, y+row, 0, width, AlignmentLeft, style, false)
	}
}

var (
	_ Container    = (*Viewport)(nil)
	_ ScrollTarget = (*Viewport)(nil)
	_ SizeObserver = (*Viewport)(nil)
	_ Primitive    = (*Viewport)(nil)
)
