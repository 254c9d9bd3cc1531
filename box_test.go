package vscroll

import (
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/gdamore/tcell/v3/color"
	"github.com/stretchr/testify/assert"
)

func TestBoxCaptions(t *testing.T) {
	box := NewBox().SetBorders(BordersAll)
	box.SetTitle("T").SetTitleAlignment(AlignmentLeft)
	box.SetFooter("F")

	rows := Snapshot(box, 6, 3)
	assert.Equal(t, []string{"┌T───┐", "│    │", "└──F─┘"}, rows)

	box.SetFooter("footer").SetTitleAlignment(AlignmentRight)
	rows = Snapshot(box, 6, 3)
	assert.Equal(t, "┌───T┐", rows[0])
	assert.Equal(t, "└oot…┘", rows[2], "centered captions are cut on both sides")
}

func TestBoxStyles(t *testing.T) {
	box := NewBox().SetBorders(BordersAll)
	box.SetTitle("T").
		SetTitleStyle(tcell.StyleDefault.Foreground(color.Red)).
		SetBorderStyle(tcell.StyleDefault.Foreground(color.Green)).
		SetFooter("F").
		SetFooterStyle(tcell.StyleDefault.Foreground(color.Blue))
	box.SetRect(0, 0, 5, 3)

	screen := newCaptureScreen(5, 3)
	box.Draw(screen)

	text, style, _ := screen.Get(2, 0)
	assert.Equal(t, "T", text)
	assert.Equal(t, color.Red, style.GetForeground())

	text, style, _ = screen.Get(0, 1)
	assert.Equal(t, BoxDrawingsLightVertical, text)
	assert.Equal(t, color.Green, style.GetForeground())

	text, style, _ = screen.Get(2, 2)
	assert.Equal(t, "F", text)
	assert.Equal(t, color.Blue, style.GetForeground())
}

func TestBoxAdoptPropagatesDirty(t *testing.T) {
	parent, child := NewBox(), NewBox()
	parent.Adopt(child)
	parent.MarkClean()
	child.MarkClean()

	child.SetTitle("changed")
	assert.True(t, parent.IsDirty())

	parent.MarkClean()
	child.MarkClean()
	parent.Disown(child)
	child.SetTitle("again")
	assert.True(t, child.IsDirty())
	assert.False(t, parent.IsDirty())
}
