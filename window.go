package vscroll

import (
	"fmt"
	"log/slog"

	"github.com/xqrs/vscroll/offsets"
)

// Window renders a large ordered list through a small pool of reusable slots.
//
// Only the items intersecting the viewport, plus a buffer, are bound to slots.
// Slot positions come from a prefix-sum offset index built from measured item
// heights, so items may have different and changing heights. Scroll
// notifications are coalesced to one render per frame.
//
// A Window is not safe for concurrent use. All methods, and the callbacks it
// registers with its host, must run on the host's UI loop. Calling any method
// after Destroy is undefined.
type Window[T any] struct {
	container Container
	target    ScrollTarget
	opts      WindowOptions[T]
	log       *slog.Logger

	data    []T
	pool    *slotPool
	heights *offsets.Heights
	index   offsets.Index
	spacer  int

	tracker   heightTracker
	scheduler scrollScheduler
	scrollSub Subscription

	emptyShown bool
	start, end int
}

// NewWindow mounts a window into container and renders it. The pool size is
// derived once from the container's height.
func NewWindow[T any](container Container, opts WindowOptions[T]) (*Window[T], error) {
	if container == nil || isNilViewport(container) {
		return nil, ErrNoContainer
	}
	opts = opts.withDefaults(container)
	if opts.Frames == nil {
		return nil, ErrNoFrames
	}
	if opts.ScrollTarget == nil {
		return nil, ErrNoScrollTarget
	}

	w := &Window[T]{
		container: container,
		target:    opts.ScrollTarget,
		opts:      opts,
		log:       opts.Logger,
		data:      opts.Data,
		heights:   offsets.NewHeights(opts.ItemHeight),
	}
	w.pool = newSlotPool(container, w.visibleCount()+opts.Buffer, opts.ItemClass)
	w.tracker.observe(opts.Observer, w.pool, w.resized)
	w.scheduler = scrollScheduler{frames: opts.Frames, render: w.Render}
	w.scrollSub = w.target.OnScroll(w.scheduler.notify)

	w.log.Debug("vscroll: window mounted",
		"pool", w.pool.size(),
		"itemHeight", opts.ItemHeight,
		"items", len(w.data))

	if err := w.Refresh(); err != nil {
		w.Destroy()
		return nil, err
	}
	return w, nil
}

// isNilViewport reports a nil *Viewport stored in a non-nil interface.
func isNilViewport(container Container) bool {
	v, ok := container.(*Viewport)
	return ok && v == nil
}

// visibleCount returns how many nominal-height items fit in the container.
func (w *Window[T]) visibleCount() int {
	height := w.container.ClientHeight()
	if height <= 0 {
		height = w.opts.ItemHeight * fallbackVisibleCount
	}
	return (height + w.opts.ItemHeight - 1) / w.opts.ItemHeight
}

// SetData replaces the items, forgets all measured heights, scrolls back to
// the top and renders immediately.
func (w *Window[T]) SetData(items []T) error {
	w.data = items
	w.heights.Clear()
	w.rebuildAll()
	w.target.ScrollTo(0, ScrollAuto)
	w.log.Debug("vscroll: data replaced", "items", len(items))
	return w.Render()
}

// Refresh recomputes every offset and renders, keeping measured heights and
// the scroll position.
func (w *Window[T]) Refresh() error {
	w.rebuildAll()
	return w.Render()
}

// Render binds the visible items to pool slots, positions them and fills
// their content. Running it twice without an intervening change produces the
// same bindings and writes nothing to the host the second time.
//
// An error from the item or empty-state renderer aborts the pass and is
// returned. Offsets and heights stay committed; the slot being filled may be
// left partially updated.
func (w *Window[T]) Render() error {
	if len(w.data) == 0 {
		return w.renderEmpty()
	}
	if w.emptyShown {
		w.container.HideEmpty()
		w.emptyShown = false
	}

	start := w.index.FindFirstVisible(w.target.ScrollTop())
	end := min(len(w.data), start+w.pool.size())
	w.start, w.end = start, end

	for id := 0; id < w.pool.size(); id++ {
		index := start + id
		if index >= end {
			w.pool.hide(id)
			continue
		}
		w.pool.place(id, index, w.index.OffsetOr(index, w.opts.ItemHeight))
		content, err := w.opts.RenderItem(w.data[index])
		if err != nil {
			return fmt.Errorf("vscroll: render item %d: %w", index, err)
		}
		w.pool.fill(id, content)
	}
	return nil
}

func (w *Window[T]) renderEmpty() error {
	w.pool.hideAll()
	w.start, w.end = 0, 0
	text, err := w.opts.EmptyRenderer()
	if err != nil {
		return fmt.Errorf("vscroll: render empty state: %w", err)
	}
	w.container.ShowEmpty(text)
	w.emptyShown = true
	return nil
}

// ScrollToIndex moves the scroll target to the offset of index. It does not
// render; the render follows from the resulting scroll notification.
func (w *Window[T]) ScrollToIndex(index int, behavior ScrollBehavior) {
	w.target.ScrollTo(w.index.OffsetOr(index, w.opts.ItemHeight), behavior)
}

// Destroy releases size subscriptions, cancels a pending render, stops
// listening for scroll notifications and clears the container.
func (w *Window[T]) Destroy() {
	w.tracker.release()
	w.scheduler.cancel()
	if w.scrollSub != nil {
		w.scrollSub.Unsubscribe()
		w.scrollSub = nil
	}
	w.container.Clear()
	w.log.Debug("vscroll: window destroyed", "pool", w.pool.size())
}

func (w *Window[T]) rebuildAll() {
	w.setSpacer(w.index.RebuildAll(len(w.data), w.heights))
}

func (w *Window[T]) setSpacer(total int) {
	w.spacer = total
	w.container.SetSpacerHeight(total)
}

// PoolSize returns the number of pooled slots.
func (w *Window[T]) PoolSize() int {
	return w.pool.size()
}

// Len returns the number of items.
func (w *Window[T]) Len() int {
	return len(w.data)
}

// Offset returns the offset of item index; Offset(Len()) is the spacer
// height.
func (w *Window[T]) Offset(index int) (int, bool) {
	return w.index.Offset(index)
}

// ItemHeight returns the measured height of item index, or the nominal
// height if it has not been measured.
func (w *Window[T]) ItemHeight(index int) int {
	return w.heights.Get(index)
}

// SpacerHeight returns the total height of the scrollable content.
func (w *Window[T]) SpacerHeight() int {
	return w.spacer
}

// VisibleRange returns the half-open index range bound by the last render.
func (w *Window[T]) VisibleRange() (start, end int) {
	return w.start, w.end
}

// Slots returns a copy of the pool state.
func (w *Window[T]) Slots() []Slot {
	return w.pool.snapshot()
}
