package vscroll

// Slot describes one pooled element.
type Slot struct {
	// ID is the slot's position in the pool.
	ID int
	// Index is the bound data index, or -1 when the slot is unbound.
	Index int
	// Visible reports whether the slot is shown.
	Visible bool
	// Offset is the slot's vertical offset within the scrollable content.
	Offset int
	// Content is the last content written to the slot.
	Content Content
}

type pooledSlot struct {
	Slot
	view SlotView
	// filled is false until content is written for the first time.
	filled bool
}

// slotPool is a fixed set of reusable slots. It owns the slot → index
// mapping; other parts of the window look indices up by slot ID.
type slotPool struct {
	slots []pooledSlot
}

func newSlotPool(container Container, size int, class string) *slotPool {
	p := &slotPool{slots: make([]pooledSlot, size)}
	for id := range p.slots {
		view := container.CreateSlot()
		view.SetClass(class)
		view.SetVisible(false)
		p.slots[id] = pooledSlot{
			Slot: Slot{ID: id, Index: -1},
			view: view,
		}
	}
	return p
}

func (p *slotPool) size() int {
	return len(p.slots)
}

// indexOf returns the data index bound to the slot.
func (p *slotPool) indexOf(id int) (int, bool) {
	if id < 0 || id >= len(p.slots) || p.slots[id].Index < 0 {
		return 0, false
	}
	return p.slots[id].Index, true
}

// hide unbinds and hides the slot.
func (p *slotPool) hide(id int) {
	s := &p.slots[id]
	s.Index = -1
	if s.Visible {
		s.Visible = false
		s.view.SetVisible(false)
	}
}

func (p *slotPool) hideAll() {
	for id := range p.slots {
		p.hide(id)
	}
}

// place binds the slot to index, shows it and moves it to offset.
func (p *slotPool) place(id, index, offset int) {
	s := &p.slots[id]
	s.Index = index
	if !s.Visible {
		s.Visible = true
		s.view.SetVisible(true)
	}
	if s.Offset != offset {
		s.Offset = offset
		s.view.SetOffset(offset)
	}
}

// fill writes content into the slot unless it already holds it.
func (p *slotPool) fill(id int, content Content) {
	s := &p.slots[id]
	if s.filled && s.Content.same(content) {
		return
	}
	s.filled = true
	s.Content = content
	if content.Element != nil {
		s.view.SetElement(content.Element)
		return
	}
	s.view.SetText(content.Text)
}

func (p *slotPool) snapshot() []Slot {
	slots := make([]Slot, len(p.slots))
	for id, s := range p.slots {
		slots[id] = s.Slot
	}
	return slots
}
