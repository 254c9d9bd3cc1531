package vscroll

import (
	"slices"
	"sync"
	"time"

	"github.com/gdamore/tcell/v3"
)

const (
	// The size of the queued updates channel.
	updatesQueueSize = 100
	// The minimum time between two consecutive redraws.
	redrawPause = 50 * time.Millisecond
	// DefaultFrameInterval is the time between two frame ticks.
	DefaultFrameInterval = 16 * time.Millisecond
)

// DoubleClickInterval specifies the maximum time between clicks to register a
// double click rather than click.
var DoubleClickInterval = 500 * time.Millisecond

// MouseAction indicates one of the actions the mouse is logically doing.
type MouseAction int16

// Available mouse actions.
const (
	MouseMove MouseAction = iota
	MouseLeftDown
	MouseLeftUp
	MouseLeftClick
	MouseLeftDoubleClick
	MouseMiddleDown
	MouseMiddleUp
	MouseMiddleClick
	MouseMiddleDoubleClick
	MouseRightDown
	MouseRightUp
	MouseRightClick
	MouseRightDoubleClick
	MouseScrollUp
	MouseScrollDown
	MouseScrollLeft
	MouseScrollRight
)

type frameRequest struct {
	id FrameID
	fn func() error
}

// Animator advances animations once per frame.
type Animator interface {
	// Animate calls step at every frame tick, before the frame callbacks of
	// that tick, until step returns false.
	Animate(step func() bool)
}

// Application represents the top node of an application. It owns the event
// loop every Window callback runs on and implements FrameRequester and Poster
// for them.
//
// The following command displays a primitive p on the screen until the
// application is stopped (for example via QuitCommand):
//
//	if err := vscroll.NewApplication().SetRoot(p).Run(); err != nil {
//	    panic(err)
//	}
type Application struct {
	sync.RWMutex

	// The application's screen. Apart from Run(), this variable should never be
	// set directly.
	screen tcell.Screen

	// The primitive which currently has the keyboard focus.
	focus Primitive

	// The root primitive to be seen on the screen.
	root Primitive

	events chan tcell.Event

	// Functions posted to the event loop.
	updates chan func()
	// stopped is closed when Run returns.
	stopped     chan struct{}
	stoppedOnce sync.Once

	// Animation steps and frame callbacks waiting for the next tick.
	// frameTick receives one value per armed tick.
	animations    []func() bool
	frames        []frameRequest
	nextFrame     FrameID
	frameArmed    bool
	frameTick     chan struct{}
	frameInterval time.Duration

	// err is the first callback error; it stops the loop and is returned by
	// Run.
	err error

	mouseCapturingPrimitive Primitive        // A Primitive returned by a MouseHandler which will capture future mouse events.
	lastMouseX, lastMouseY  int              // The last position of the mouse.
	mouseDownX, mouseDownY  int              // The position of the mouse when its button was last pressed.
	lastMouseClick          time.Time        // The time when a mouse button was last clicked.
	lastMouseButtons        tcell.ButtonMask // The last mouse button state.

	// forceRedraw requests a full clear before the next frame.
	forceRedraw bool
}

// NewApplication creates and returns a new application.
func NewApplication() *Application {
	return &Application{
		updates:       make(chan func(), updatesQueueSize),
		stopped:       make(chan struct{}),
		frameTick:     make(chan struct{}, 1),
		frameInterval: DefaultFrameInterval,
	}
}

// SetScreen sets the application's screen.
func (a *Application) SetScreen(screen tcell.Screen) *Application {
	a.Lock()
	defer a.Unlock()
	if a.screen == nil {
		a.screen = screen
		a.forceRedraw = true
	}
	return a
}

// SetFrameInterval sets the time between two frame ticks.
func (a *Application) SetFrameInterval(interval time.Duration) *Application {
	a.Lock()
	defer a.Unlock()
	if interval > 0 {
		a.frameInterval = interval
	}
	return a
}

// Run starts the application and thus the event loop. This function returns
// when [Application.Stop] was called or a frame or posted callback failed, in
// which case the callback's error is returned.
func (a *Application) Run() error {
	var (
		lastRedraw  time.Time   // The time the screen was last redrawn.
		redrawTimer *time.Timer // A timer to schedule the next redraw.
	)
	defer a.markStopped()
	a.Lock()

	// Make a screen if there is none yet.
	if a.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			a.Unlock()
			return err
		}
		if err = screen.Init(); err != nil {
			a.Unlock()
			return err
		}
		a.screen = screen
	}

	// We catch panics to clean up because they mess up the terminal.
	defer func() {
		if p := recover(); p != nil {
			a.Stop()
			panic(p)
		}
	}()

	// Draw the screen for the first time.
	a.Unlock()
	a.draw()

	a.RLock()
	screen := a.screen
	a.RUnlock()
	a.Lock()
	a.events = screen.EventQ()
	a.Unlock()

	// Start event loop.
EventLoop:
	for {
		select {
		// If we received an event, handle it.
		case event := <-a.events:
			if event == nil {
				break EventLoop
			}

			switch event := event.(type) {
			case *tcell.EventKey:
				a.RLock()
				root := a.root
				a.RUnlock()

				if root != nil && root.HasFocus() {
					cmd := root.InputHandler(event)
					if a.executeCommand(cmd) {
						a.draw()
					}
				}
			case *tcell.EventResize:
				a.Lock()
				// Resize events can imply terminal state changes even when size
				// reports unchanged, so force one redraw pass.
				a.forceRedraw = true
				a.Unlock()
				if time.Since(lastRedraw) < redrawPause {
					if redrawTimer != nil {
						redrawTimer.Stop()
					}
					redrawTimer = time.AfterFunc(redrawPause, func() {
						a.events <- event
					})
				}
				lastRedraw = time.Now()
				a.draw()
			case *tcell.EventMouse:
				handled, isMouseDownAction := a.fireMouseActions(event)
				if handled {
					a.draw()
				}
				a.lastMouseButtons = event.Buttons()
				if isMouseDownAction {
					a.mouseDownX, a.mouseDownY = event.Position()
				}
			case *tcell.EventError:
				a.fail(event)
			}

		case <-a.frameTick:
			if err := a.runFrame(); err != nil {
				a.fail(err)
			}

		// If we have updates, now is the time to execute them.
		case update := <-a.updates:
			update()
		}
	}

	a.RLock()
	defer a.RUnlock()
	return a.err
}

// fail records the first callback error and stops the application.
func (a *Application) fail(err error) {
	a.Lock()
	first := a.err == nil
	if first {
		a.err = err
	}
	a.Unlock()
	if first {
		Logger().Warn("vscroll: stopping application", "err", err)
	}
	a.Stop()
}

// RequestFrame schedules fn to run once on the event loop at the next frame
// tick. All callbacks pending at a tick run in request order, followed by a
// single redraw. Callbacks requested while a tick runs wait for the next one.
func (a *Application) RequestFrame(fn func() error) FrameID {
	a.Lock()
	defer a.Unlock()
	a.nextFrame++
	id := a.nextFrame
	a.frames = append(a.frames, frameRequest{id: id, fn: fn})
	a.armLocked()
	return id
}

// Animate implements Animator. Steps run on the event loop.
func (a *Application) Animate(step func() bool) {
	a.Lock()
	defer a.Unlock()
	a.animations = append(a.animations, step)
	a.armLocked()
}

// armLocked schedules the next frame tick unless one is already armed.
func (a *Application) armLocked() {
	if a.frameArmed {
		return
	}
	a.frameArmed = true
	time.AfterFunc(a.frameInterval, func() {
		select {
		case a.frameTick <- struct{}{}:
		default:
		}
	})
}

// CancelFrame removes a pending frame callback. Unknown or already executed
// IDs are ignored.
func (a *Application) CancelFrame(id FrameID) {
	a.Lock()
	defer a.Unlock()
	a.frames = slices.DeleteFunc(a.frames, func(r frameRequest) bool {
		return r.id == id
	})
}

// runFrame advances animations, then executes the frame callbacks pending
// at that point, and redraws once.
func (a *Application) runFrame() error {
	a.Lock()
	animations := a.animations
	a.animations = nil
	a.frameArmed = false
	a.Unlock()

	var running []func() bool
	for _, step := range animations {
		if step() {
			running = append(running, step)
		}
	}

	a.Lock()
	a.animations = append(running, a.animations...)
	pending := a.frames
	a.frames = nil
	if len(a.animations) > 0 {
		a.armLocked()
	}
	a.Unlock()

	if len(animations) == 0 && len(pending) == 0 {
		return nil
	}
	for _, request := range pending {
		if err := request.fn(); err != nil {
			return err
		}
	}
	a.draw()
	return nil
}

// Post queues fn to run on the event loop and returns immediately, followed
// by a redraw. An error returned by fn stops the application.
func (a *Application) Post(fn func() error) {
	update := func() {
		if err := fn(); err != nil {
			a.fail(err)
			return
		}
		a.draw()
	}
	select {
	case a.updates <- update:
	default:
		// The queue is full; never block the caller, which usually is the
		// event loop itself.
		go a.enqueue(update)
	}
}

// enqueue blocks until the loop accepts update or Run has returned, and
// reports whether update was queued.
func (a *Application) enqueue(update func()) bool {
	select {
	case a.updates <- update:
		return true
	case <-a.stopped:
		return false
	}
}

// markStopped releases goroutines waiting in enqueue.
func (a *Application) markStopped() {
	a.stoppedOnce.Do(func() { close(a.stopped) })
}

// fireMouseActions analyzes the provided mouse event, derives mouse actions
// from it and then forwards them to the corresponding primitives.
func (a *Application) fireMouseActions(event *tcell.EventMouse) (handled, isMouseDownAction bool) {
	// We want to relay follow-up events to the same target primitive.
	var targetPrimitive Primitive

	fire := func(action MouseAction) {
		switch action {
		case MouseLeftDown, MouseMiddleDown, MouseRightDown:
			isMouseDownAction = true
		}

		// Determine the target primitive.
		var primitive, capturingPrimitive Primitive
		if a.mouseCapturingPrimitive != nil {
			primitive = a.mouseCapturingPrimitive
			targetPrimitive = a.mouseCapturingPrimitive
		} else if targetPrimitive != nil {
			primitive = targetPrimitive
		} else {
			primitive = a.root
		}
		if primitive != nil {
			var cmd Command
			capturingPrimitive, cmd = primitive.MouseHandler(action, event)
			if a.executeCommand(cmd) {
				handled = true
			}
		}
		a.mouseCapturingPrimitive = capturingPrimitive
	}

	x, y := event.Position()
	buttons := event.Buttons()
	clickMoved := x != a.mouseDownX || y != a.mouseDownY
	buttonChanges := buttons ^ a.lastMouseButtons

	if x != a.lastMouseX || y != a.lastMouseY {
		fire(MouseMove)
		a.lastMouseX = x
		a.lastMouseY = y
	}

	for _, buttonEvent := range []struct {
		button                  tcell.ButtonMask
		down, up, click, dclick MouseAction
	}{
		{tcell.ButtonPrimary, MouseLeftDown, MouseLeftUp, MouseLeftClick, MouseLeftDoubleClick},
		{tcell.ButtonMiddle, MouseMiddleDown, MouseMiddleUp, MouseMiddleClick, MouseMiddleDoubleClick},
		{tcell.ButtonSecondary, MouseRightDown, MouseRightUp, MouseRightClick, MouseRightDoubleClick},
	} {
		if buttonChanges&buttonEvent.button != 0 {
			if buttons&buttonEvent.button != 0 {
				fire(buttonEvent.down)
			} else {
				fire(buttonEvent.up)
				if !clickMoved {
					if a.lastMouseClick.Add(DoubleClickInterval).Before(time.Now()) {
						fire(buttonEvent.click)
						a.lastMouseClick = time.Now()
					} else {
						fire(buttonEvent.dclick)
						a.lastMouseClick = time.Time{} // reset
					}
				}
			}
		}
	}

	for _, wheelEvent := range []struct {
		button tcell.ButtonMask
		action MouseAction
	}{
		{tcell.WheelUp, MouseScrollUp},
		{tcell.WheelDown, MouseScrollDown},
		{tcell.WheelLeft, MouseScrollLeft},
		{tcell.WheelRight, MouseScrollRight}} {
		if buttons&wheelEvent.button != 0 {
			fire(wheelEvent.action)
		}
	}

	return handled, isMouseDownAction
}

// Stop stops the application, causing Run() to return.
func (a *Application) Stop() {
	a.Lock()
	defer a.Unlock()
	screen := a.screen
	if screen == nil {
		return
	}
	screen.Fini()
	a.screen = nil
}

// draw redraws the root primitive. A clean root is skipped
// unless a full redraw was forced.
func (a *Application) draw() *Application {
	a.Lock()
	screen := a.screen
	root := a.root
	forceRedraw := a.forceRedraw
	a.Unlock()

	// Maybe we're not ready yet or not anymore.
	if screen == nil || root == nil {
		return a
	}

	drawWidth, drawHeight := screen.Size()
	root.SetRect(0, 0, drawWidth, drawHeight)

	tracker, tracked := root.(dirtyTracker)
	if tracked && !forceRedraw && !tracker.IsDirty() {
		return a
	}

	// tcell keeps a logical back buffer and emits only visual deltas in
	// Show(); full clears are reserved for forced redraws.
	if forceRedraw {
		screen.Clear()
	}
	// Cleaned before drawing so changes made during Draw request another pass.
	if tracked {
		tracker.MarkClean()
	}
	root.Draw(screen)
	screen.Show()

	a.Lock()
	a.forceRedraw = false
	a.Unlock()

	return a
}

// SetRoot sets the root primitive for this application. This function must
// be called at least once or nothing will be displayed when the application
// starts.
//
// It also calls SetFocus() on the primitive.
func (a *Application) SetRoot(root Primitive) *Application {
	a.Lock()
	a.root = root
	if a.screen != nil {
		a.forceRedraw = true
	}
	a.Unlock()

	a.SetFocus(root)
	return a
}

// SetFocus sets the focus to a new primitive. Blur() is called on the
// previously focused primitive, Focus() on the new one.
func (a *Application) SetFocus(p Primitive) *Application {
	a.Lock()
	if a.focus != nil {
		a.focus.Blur()
	}
	a.focus = p
	if a.screen != nil {
		a.screen.HideCursor()
	}
	a.Unlock()
	if p != nil {
		p.Focus(func(p Primitive) {
			a.SetFocus(p)
		})
	}

	return a
}

// GetFocus returns the primitive which has the current focus. If none has it,
// nil is returned.
func (a *Application) GetFocus() Primitive {
	a.RLock()
	defer a.RUnlock()
	return a.focus
}

func (a *Application) executeCommand(cmd Command) bool {
	if cmd == nil {
		return false
	}

	a.RLock()
	screen := a.screen
	a.RUnlock()

	switch c := cmd.(type) {
	case BatchCommand:
		handled := false
		for _, item := range c {
			if a.executeCommand(item) {
				handled = true
			}
		}
		return handled
	case RedrawCommand:
		return true
	case QuitCommand:
		a.Stop()
		return false
	case SetFocusCommand:
		if c.Target == nil {
			return false
		}
		a.RLock()
		changed := a.focus != c.Target
		a.RUnlock()
		a.SetFocus(c.Target)
		return changed
	case SetTitleCommand:
		if screen == nil {
			return false
		}
		screen.SetTitle(string(c))
		return false
	case ConsumeEventCommand:
		return false
	}

	return false
}

var (
	_ FrameRequester = (*Application)(nil)
	_ Poster         = (*Application)(nil)
	_ Animator       = (*Application)(nil)
)
