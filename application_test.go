package vscroll

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationFramesRunInRequestOrder(t *testing.T) {
	a := NewApplication()
	var order []string
	a.RequestFrame(func() error { order = append(order, "first"); return nil })
	id := a.RequestFrame(func() error { order = append(order, "cancelled"); return nil })
	a.RequestFrame(func() error {
		order = append(order, "second")
		a.RequestFrame(func() error { order = append(order, "next tick"); return nil })
		return nil
	})
	a.CancelFrame(id)
	a.CancelFrame(id)

	require.NoError(t, a.runFrame())
	assert.Equal(t, []string{"first", "second"}, order)

	require.NoError(t, a.runFrame())
	assert.Equal(t, []string{"first", "second", "next tick"}, order)

	require.NoError(t, a.runFrame())
	assert.Len(t, order, 3)
}

func TestApplicationAnimationsRunBeforeFrames(t *testing.T) {
	a := NewApplication()
	var order []string
	steps := 0
	a.Animate(func() bool {
		steps++
		order = append(order, "step")
		a.RequestFrame(func() error { order = append(order, "render"); return nil })
		return steps < 2
	})

	require.NoError(t, a.runFrame())
	assert.Equal(t, []string{"step", "render"}, order)

	require.NoError(t, a.runFrame())
	assert.Equal(t, []string{"step", "render", "step", "render"}, order)

	require.NoError(t, a.runFrame())
	assert.Len(t, order, 4)
}

func TestApplicationFrameErrorStopsTick(t *testing.T) {
	a := NewApplication()
	errBoom := errors.New("boom")
	ran := false
	a.RequestFrame(func() error { return errBoom })
	a.RequestFrame(func() error { ran = true; return nil })

	require.ErrorIs(t, a.runFrame(), errBoom)
	assert.False(t, ran)
}

func TestApplicationPostError(t *testing.T) {
	a := NewApplication()
	errBoom := errors.New("boom")
	a.Post(func() error { return errBoom })
	a.Post(func() error { return errors.New("later") })

	for range 2 {
		update := <-a.updates
		update()
	}
	assert.ErrorIs(t, a.err, errBoom, "the first error wins")
}

func TestApplicationPostAfterStop(t *testing.T) {
	a := NewApplication()
	for range updatesQueueSize {
		a.Post(func() error { return nil })
	}
	a.markStopped()

	queued := make(chan bool, 1)
	go func() { queued <- a.enqueue(func() {}) }()
	select {
	case ok := <-queued:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked after the loop stopped")
	}

	// Overflowing posts return immediately.
	a.Post(func() error { return nil })
	assert.Len(t, a.updates, updatesQueueSize)
}

func TestApplicationFrameInterval(t *testing.T) {
	a := NewApplication().SetFrameInterval(time.Millisecond)
	a.SetFrameInterval(0)
	assert.Equal(t, time.Millisecond, a.frameInterval, "non-positive intervals are ignored")

	a.RequestFrame(func() error { return nil })
	select {
	case <-a.frameTick:
	case <-time.After(time.Second):
		t.Fatal("frame tick did not arrive")
	}
}

func TestApplicationCommands(t *testing.T) {
	a := NewApplication()
	box := NewBox()

	assert.False(t, a.executeCommand(nil))
	assert.True(t, a.executeCommand(RedrawCommand{}))
	assert.False(t, a.executeCommand(ConsumeEventCommand{}))

	assert.True(t, a.executeCommand(SetFocusCommand{Target: box}))
	assert.True(t, box.HasFocus())
	assert.Same(t, box, a.GetFocus())
	assert.False(t, a.executeCommand(SetFocusCommand{Target: box}), "focus did not change")

	assert.True(t, a.executeCommand(BatchCommand{ConsumeEventCommand{}, RedrawCommand{}}))
}

func TestAppendCommand(t *testing.T) {
	assert.Nil(t, AppendCommand(nil, nil))
	assert.Equal(t, RedrawCommand{}, AppendCommand(nil, RedrawCommand{}))
	assert.Equal(t, RedrawCommand{}, AppendCommand(RedrawCommand{}, nil))
	assert.Equal(t,
		BatchCommand{RedrawCommand{}, QuitCommand{}, ConsumeEventCommand{}},
		AppendCommand(BatchCommand{RedrawCommand{}}, BatchCommand{QuitCommand{}, ConsumeEventCommand{}}))
}
