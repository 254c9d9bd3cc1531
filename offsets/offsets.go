// Package offsets maintains the prefix-sum table that maps a list index to
// the vertical offset of its first row, together with the table of observed
// item heights the offsets are derived from.
//
// Offsets are plain ints in whatever unit the host measures heights in
// (terminal rows for the tcell binding). The table is rebuilt either fully,
// after the data set changes, or from a single index onward, after one item
// reports a new height.
package offsets

import "sort"

// Heights records the last observed height of each index. Indices that were
// never observed fall back to the nominal height.
type Heights struct {
	nominal int
	known   map[int]int
}

// NewHeights returns an empty height table using nominal for unmeasured
// indices.
func NewHeights(nominal int) *Heights {
	return &Heights{
		nominal: nominal,
		known:   make(map[int]int),
	}
}

// Nominal returns the fallback height.
func (h *Heights) Nominal() int {
	return h.nominal
}

// Get returns the observed height of index i, or the nominal height.
func (h *Heights) Get(i int) int {
	if height, ok := h.known[i]; ok {
		return height
	}
	return h.nominal
}

// Lookup returns the observed height of index i and whether one was recorded.
func (h *Heights) Lookup(i int) (int, bool) {
	height, ok := h.known[i]
	return height, ok
}

// Set records the observed height of index i. Negative heights are stored
// as zero.
func (h *Heights) Set(i, height int) {
	h.known[i] = max(height, 0)
}

// Len returns the number of measured indices.
func (h *Heights) Len() int {
	return len(h.known)
}

// Clear forgets every observation.
func (h *Heights) Clear() {
	clear(h.known)
}

// Index is the ordered offset table. offset[0] is 0, offsets never decrease
// and Total is the sum of all heights.
type Index struct {
	offsets []int
	total   int
}

// RebuildAll recomputes all n offsets from scratch and returns the new total.
func (x *Index) RebuildAll(n int, heights *Heights) int {
	x.resize(n)
	offset := 0
	for i := 0; i < n; i++ {
		x.offsets[i] = offset
		offset += heights.Get(i)
	}
	x.total = offset
	return x.total
}

// RebuildFrom recomputes the offsets of start..n-1, seeded from the offset
// and height of start-1, and returns the new total. Offsets before start are
// left untouched. If the table is not populated up to start-1 it falls back
// to a full rebuild.
func (x *Index) RebuildFrom(start, n int, heights *Heights) int {
	if start <= 0 || start > len(x.offsets) {
		return x.RebuildAll(n, heights)
	}
	x.resize(n)
	start = min(start, n)
	if start == 0 {
		x.total = 0
		return 0
	}
	offset := x.offsets[start-1] + heights.Get(start-1)
	for i := start; i < n; i++ {
		x.offsets[i] = offset
		offset += heights.Get(i)
	}
	x.total = offset
	return x.total
}

func (x *Index) resize(n int) {
	n = max(n, 0)
	if cap(x.offsets) >= n {
		x.offsets = x.offsets[:n]
		return
	}
	grown := make([]int, n)
	copy(grown, x.offsets)
	x.offsets = grown
}

// FindFirstVisible returns the greatest index whose offset is <= scrollTop.
// An item starting exactly at scrollTop wins over its predecessor. It returns
// 0 for an empty table or a scrollTop before every offset.
func (x *Index) FindFirstVisible(scrollTop int) int {
	if len(x.offsets) == 0 {
		return 0
	}
	// First index starting strictly below scrollTop.
	after := sort.Search(len(x.offsets), func(i int) bool {
		return x.offsets[i] > scrollTop
	})
	return max(after-1, 0)
}

// Offset returns the offset of index i. Offset(Len()) is the total. ok is
// false when i is outside the populated table.
func (x *Index) Offset(i int) (offset int, ok bool) {
	switch {
	case i >= 0 && i < len(x.offsets):
		return x.offsets[i], true
	case i == len(x.offsets):
		return x.total, true
	}
	return 0, false
}

// OffsetOr returns the offset of index i, or i*nominal when the table has no
// entry for it yet.
func (x *Index) OffsetOr(i, nominal int) int {
	if i >= 0 && i < len(x.offsets) {
		return x.offsets[i]
	}
	return i * nominal
}

// Len returns the number of indexed items.
func (x *Index) Len() int {
	return len(x.offsets)
}

// Total returns the sum of all heights, i.e. the height of the scrollable
// range.
func (x *Index) Total() int {
	return x.total
}

// Reset empties the table.
func (x *Index) Reset() {
	x.offsets = x.offsets[:0]
	x.total = 0
}
