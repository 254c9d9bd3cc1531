package vscroll

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/gdamore/tcell/v3/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViewport(t *testing.T, width, height int, data []string) (*Viewport, *Window[string], *fakeHost) {
	t.Helper()
	host := newFakeHost()
	v := NewViewport(host).SetShowScrollBar(false)
	v.SetRect(0, 0, width, height)
	w, err := NewWindow(v, WindowOptions[string]{
		ItemHeight: 1,
		Frames:     host,
		Data:       data,
	})
	require.NoError(t, err)
	return v, w, host
}

// settle draws and delivers height reports until nothing is posted.
func settle(t *testing.T, v *Viewport, host *fakeHost, width, height int) []string {
	t.Helper()
	for range 8 {
		require.NoError(t, host.tick())
		rows := Snapshot(v, width, height)
		n, err := host.deliver()
		require.NoError(t, err)
		if n == 0 && len(host.queue) == 0 && len(host.animations) == 0 {
			return rows
		}
	}
	t.Fatal("viewport did not settle")
	return nil
}

func TestViewportRendersVisibleItems(t *testing.T) {
	v, w, host := newTestViewport(t, 20, 5, makeData(100))

	assert.Equal(t, 8, w.PoolSize())
	assert.Equal(t, 5, v.ClientHeight())
	assert.Equal(t, 100, v.SpacerHeight())

	rows := settle(t, v, host, 20, 5)
	assert.Equal(t, []string{"item-0", "item-1", "item-2", "item-3", "item-4"}, rows)
}

func TestViewportClientHeightUnknownBeforeLayout(t *testing.T) {
	v := NewViewport(newFakeHost())
	assert.Equal(t, 0, v.ClientHeight())

	v.SetRect(0, 0, 10, 7)
	assert.Equal(t, 7, v.ClientHeight())

	v.SetBorders(BordersAll)
	assert.Equal(t, 5, v.ClientHeight())
}

func TestViewportScrollRendersOnFrame(t *testing.T) {
	v, _, host := newTestViewport(t, 20, 5, makeData(100))
	settle(t, v, host, 20, 5)

	v.ScrollTo(10, ScrollAuto)
	assert.Equal(t, 10, v.ScrollTop())
	assert.Equal(t, 1, host.requests)

	rows := settle(t, v, host, 20, 5)
	assert.Equal(t, []string{"item-10", "item-11", "item-12", "item-13", "item-14"}, rows)
}

func TestViewportScrollIsClamped(t *testing.T) {
	v, _, host := newTestViewport(t, 20, 5, makeData(100))

	v.ScrollTo(1000, ScrollAuto)
	assert.Equal(t, 95, v.ScrollTop())

	rows := settle(t, v, host, 20, 5)
	assert.Equal(t, "item-99", rows[4])
}

func TestViewportMeasuresWrappedText(t *testing.T) {
	data := makeData(10)
	data[0] = "short"
	data[1] = "aaaa bbbb cccc"
	data[2] = "tail"
	v, w, host := newTestViewport(t, 10, 5, data)

	rows := settle(t, v, host, 10, 5)

	assert.Equal(t, []string{"short", "aaaa bbbb", "cccc", "tail", "item-3"}, rows)
	assert.Equal(t, 2, w.ItemHeight(1))
	assert.Equal(t, 11, v.SpacerHeight())
	offset, _ := w.Offset(2)
	assert.Equal(t, 3, offset)
}

func TestViewportRemeasuresOnWidthChange(t *testing.T) {
	data := []string{"aaaa bbbb cccc", "next"}
	v, w, host := newTestViewport(t, 20, 5, data)
	settle(t, v, host, 20, 5)
	assert.Equal(t, 1, w.ItemHeight(0))

	rows := settle(t, v, host, 10, 5)
	assert.Equal(t, []string{"aaaa bbbb", "cccc", "next", "", ""}, rows)
	assert.Equal(t, 2, w.ItemHeight(0))
}

func TestViewportElementContent(t *testing.T) {
	label := NewLabel("one two three")
	label.SetBorders(BordersTop | BordersBottom)

	host := newFakeHost()
	v := NewViewport(host).SetShowScrollBar(false)
	v.SetRect(0, 0, 9, 8)
	w, err := NewWindow(v, WindowOptions[string]{
		ItemHeight: 1,
		Frames:     host,
		Data:       []string{"a", "label", "b"},
		RenderItem: func(item string) (Content, error) {
			if item == "label" {
				return ElementContent(label), nil
			}
			return Text(item), nil
		},
	})
	require.NoError(t, err)

	rows := settle(t, v, host, 9, 8)

	// The label wraps to two lines between its borders.
	assert.Equal(t, 4, w.ItemHeight(1))
	assert.Equal(t, "a", rows[0])
	assert.Equal(t, strings.Repeat(BoxDrawingsLightHorizontal, 9), rows[1])
	assert.Equal(t, "one two", rows[2])
	assert.Equal(t, "three", rows[3])
	assert.Equal(t, strings.Repeat(BoxDrawingsLightHorizontal, 9), rows[4])
	assert.Equal(t, "b", rows[5])

	// Changing the element marks the viewport dirty and is measured again.
	v.MarkClean()
	label.SetText("one")
	assert.True(t, v.IsDirty())
	settle(t, v, host, 9, 8)
	assert.Equal(t, 3, w.ItemHeight(1))
}

func TestViewportEmptyState(t *testing.T) {
	v, _, host := newTestViewport(t, 20, 5, nil)

	rows := settle(t, v, host, 20, 5)

	assert.Equal(t, "No Data", strings.TrimSpace(rows[2]))
	for _, row := range []int{0, 1, 3, 4} {
		assert.Empty(t, rows[row])
	}
}

func TestViewportKeys(t *testing.T) {
	v, _, host := newTestViewport(t, 20, 5, makeData(100))

	tests := []struct {
		name  string
		event *tcell.EventKey
		want  int
	}{
		{name: "down", event: tcell.NewEventKey(tcell.KeyDown, "", tcell.ModNone), want: 1},
		{name: "j", event: tcell.NewEventKey(tcell.KeyRune, "j", tcell.ModNone), want: 2},
		{name: "page down", event: tcell.NewEventKey(tcell.KeyPgDn, "", tcell.ModNone), want: 6},
		{name: "up", event: tcell.NewEventKey(tcell.KeyUp, "", tcell.ModNone), want: 5},
		{name: "page up", event: tcell.NewEventKey(tcell.KeyPgUp, "", tcell.ModNone), want: 1},
	}
	for _, tt := range tests {
		cmd := v.InputHandler(tt.event)
		assert.Equal(t, ConsumeEventCommand{}, cmd, tt.name)
		assert.Equal(t, tt.want, v.ScrollTop(), tt.name)
	}

	assert.Nil(t, v.InputHandler(tcell.NewEventKey(tcell.KeyRune, "x", tcell.ModNone)))

	v.InputHandler(tcell.NewEventKey(tcell.KeyEnd, "", tcell.ModNone))
	for range 64 {
		require.NoError(t, host.tick())
	}
	assert.Empty(t, host.animations)
	assert.Equal(t, 95, v.ScrollTop())
}

func TestViewportMouseWheel(t *testing.T) {
	v, _, _ := newTestViewport(t, 20, 5, makeData(100))

	_, cmd := v.MouseHandler(MouseScrollDown, tcell.NewEventMouse(2, 2, tcell.WheelDown, tcell.ModNone))
	assert.Equal(t, ConsumeEventCommand{}, cmd)
	assert.Equal(t, 3, v.ScrollTop())

	v.SetWheelStep(5)
	v.MouseHandler(MouseScrollUp, tcell.NewEventMouse(2, 2, tcell.WheelUp, tcell.ModNone))
	assert.Equal(t, 0, v.ScrollTop())

	_, cmd = v.MouseHandler(MouseScrollDown, tcell.NewEventMouse(40, 2, tcell.WheelDown, tcell.ModNone))
	assert.Nil(t, cmd, "events outside the viewport are ignored")
	assert.Equal(t, 0, v.ScrollTop())
}

func TestViewportScrollBar(t *testing.T) {
	host := newFakeHost()
	v := NewViewport(host)
	v.SetRect(0, 0, 10, 4)
	_, err := NewWindow(v, WindowOptions[string]{ItemHeight: 1, Frames: host, Data: makeData(8)})
	require.NoError(t, err)

	rows := settle(t, v, host, 10, 4)
	// Half of the content is visible: the thumb covers the upper half.
	assert.Equal(t, "item-0   █", rows[0])
	assert.Equal(t, "item-1   █", rows[1])
	assert.Equal(t, "item-2", rows[2])

	v.ScrollTo(4, ScrollAuto)
	rows = settle(t, v, host, 10, 4)
	assert.Equal(t, "item-4", rows[0])
	assert.Equal(t, "item-6   █", rows[2])
	assert.Equal(t, "item-7   █", rows[3])
}

func TestViewportClassStyle(t *testing.T) {
	host := newFakeHost()
	v := NewViewport(host).SetShowScrollBar(false)
	v.SetClassStyle("row", tcell.StyleDefault.Foreground(color.Red))
	v.SetRect(0, 0, 10, 3)
	_, err := NewWindow(v, WindowOptions[string]{ItemHeight: 1, ItemClass: "row", Frames: host, Data: makeData(3)})
	require.NoError(t, err)

	screen := newCaptureScreen(10, 3)
	v.Draw(screen)

	text, style, _ := screen.Get(0, 0)
	assert.Equal(t, "i", text)
	assert.Equal(t, color.Red, style.GetForeground())
}

func TestViewportObserveForeignView(t *testing.T) {
	v := NewViewport(newFakeHost())
	sub := v.Observe(&fakeSlot{}, func(int) error { return nil })
	require.NotNil(t, sub)
	sub.Unsubscribe()
}

func TestViewportDestroyClears(t *testing.T) {
	v, w, host := newTestViewport(t, 20, 5, makeData(100))
	settle(t, v, host, 20, 5)

	w.Destroy()

	assert.Equal(t, 0, v.SpacerHeight())
	assert.Equal(t, 0, v.ScrollTop())
	rows := Snapshot(v, 20, 5)
	assert.Equal(t, []string{"", "", "", "", ""}, rows)
	assert.Empty(t, host.posted)
}
