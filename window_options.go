package vscroll

import (
	"errors"
	"fmt"
	"log/slog"
)

const (
	// DefaultItemHeight is the nominal height of an item that has not been
	// measured yet.
	DefaultItemHeight = 40
	// DefaultBuffer is the number of slots pooled beyond the visible count.
	DefaultBuffer = 3
	// DefaultEmptyText is shown when a window has no data.
	DefaultEmptyText = "No Data"

	// fallbackVisibleCount sizes the pool when the container height is not
	// known at construction.
	fallbackVisibleCount = 10
)

var (
	// ErrNoContainer is returned by NewWindow when the container is nil.
	ErrNoContainer = errors.New("vscroll: container is required")
	// ErrNoFrames is returned by NewWindow when no frame requester is
	// configured.
	ErrNoFrames = errors.New("vscroll: frame requester is required")
	// ErrNoScrollTarget is returned by NewWindow when no scroll target is
	// configured and the container is not one.
	ErrNoScrollTarget = errors.New("vscroll: scroll target is required")
)

// WindowOptions configures a Window. Zero fields take their defaults; the
// options are resolved once at construction.
type WindowOptions[T any] struct {
	// ItemHeight is the nominal height of unmeasured items. Defaults to
	// DefaultItemHeight.
	ItemHeight int

	// Buffer is the number of slots pooled beyond the visible count. Zero
	// selects DefaultBuffer; a negative value pools no extra slots.
	Buffer int

	// RenderItem produces the content of one item. Defaults to the item's
	// fmt.Sprint text.
	RenderItem func(item T) (Content, error)

	// EmptyRenderer produces the text shown when there is no data. Defaults
	// to DefaultEmptyText.
	EmptyRenderer func() (string, error)

	// ItemClass is applied to every pooled slot.
	ItemClass string

	// ScrollTarget is the scroll source. Defaults to the container when it
	// implements ScrollTarget.
	ScrollTarget ScrollTarget

	// Observer reports slot heights. Defaults to the container when it
	// implements SizeObserver; without one, items keep the nominal height.
	Observer SizeObserver

	// Frames schedules coalesced scroll renders. Required.
	Frames FrameRequester

	// Data is the initial item sequence.
	Data []T

	// Logger overrides the package logger.
	Logger *slog.Logger
}

func (o WindowOptions[T]) withDefaults(container Container) WindowOptions[T] {
	if o.ItemHeight <= 0 {
		o.ItemHeight = DefaultItemHeight
	}
	switch {
	case o.Buffer == 0:
		o.Buffer = DefaultBuffer
	case o.Buffer < 0:
		o.Buffer = 0
	}
	if o.RenderItem == nil {
		o.RenderItem = func(item T) (Content, error) {
			return Text(fmt.Sprint(item)), nil
		}
	}
	if o.EmptyRenderer == nil {
		o.EmptyRenderer = func() (string, error) {
			return DefaultEmptyText, nil
		}
	}
	if o.ScrollTarget == nil {
		if target, ok := container.(ScrollTarget); ok {
			o.ScrollTarget = target
		}
	}
	if o.Observer == nil {
		if observer, ok := container.(SizeObserver); ok {
			o.Observer = observer
		}
	}
	if o.Logger == nil {
		o.Logger = Logger()
	}
	return o
}
