package vscroll

import (
	"context"
	"log/slog"
)

// heightTracker holds one size subscription per pooled slot. Every
// notification funnels through Window.resized.
type heightTracker struct {
	subs []Subscription
}

func (h *heightTracker) observe(observer SizeObserver, pool *slotPool, resized func(id, height int) error) {
	if observer == nil {
		return
	}
	h.subs = make([]Subscription, 0, pool.size())
	for id := range pool.slots {
		sub := observer.Observe(pool.slots[id].view, func(height int) error {
			return resized(id, height)
		})
		h.subs = append(h.subs, sub)
	}
}

func (h *heightTracker) release() {
	for _, sub := range h.subs {
		if sub != nil {
			sub.Unsubscribe()
		}
	}
	h.subs = nil
}

// resized handles a height report for slot id. Unbound slots are ignored.
// A changed height is committed to the height table before the offsets are
// rebuilt from the affected index, and both happen before the render.
func (w *Window[T]) resized(id, height int) error {
	index, ok := w.pool.indexOf(id)
	if !ok || index >= len(w.data) {
		return nil
	}

	// Offsets of unmeasured items were built from the nominal height.
	previous, ok := w.heights.Lookup(index)
	if !ok {
		previous = w.heights.Nominal()
	}
	w.heights.Set(index, height)
	if previous == height {
		return nil
	}

	if w.log.Enabled(context.Background(), slog.LevelDebug) {
		w.log.Debug("vscroll: item resized", "index", index, "from", previous, "to", height)
	}
	w.setSpacer(w.index.RebuildFrom(index, len(w.data), w.heights))
	return w.Render()
}
