package carousel

import "math"

// Responsive page sizes by viewport width. The fractional mobile size leaves
// a sliver of the next card visible as a scroll affordance.
const (
	pageSizeMobile  = 1.2
	pageSizeSmall   = 2
	pageSizeMedium  = 3
	pageSizeDesktop = 4
)

// PageSizeFor maps a viewport width in CSS pixels to the number of cards
// shown at once.
func PageSizeFor(width int) float64 {
	switch {
	case width < 640:
		return pageSizeMobile
	case width < 768:
		return pageSizeSmall
	case width < 1024:
		return pageSizeMedium
	default:
		return pageSizeDesktop
	}
}

// Window is the sliding view over a dataset: a position plus a page size.
// Navigation wraps and never leaves the dataset bounds; the effective size
// never exceeds the dataset length.
type Window struct {
	length int
	size   float64
	index  int
}

func NewWindow(size float64) Window {
	return Window{size: size}
}

// SetLength updates the dataset length and clamps the position back into
// bounds when the dataset shrank.
func (w *Window) SetLength(n int) {
	if n < 0 {
		n = 0
	}
	w.length = n
	if w.index > w.lastIndex() {
		w.index = 0
	}
}

// SetSize updates the configured page size.
func (w *Window) SetSize(size float64) {
	if size <= 0 {
		size = 1
	}
	w.size = size
	if w.index > w.lastIndex() {
		w.index = 0
	}
}

// EffectiveSize is the configured size capped at the dataset length.
func (w Window) EffectiveSize() float64 {
	if float64(w.length) < w.size {
		return float64(w.length)
	}
	return w.size
}

// CanNavigate reports whether the dataset is larger than one page.
func (w Window) CanNavigate() bool {
	return float64(w.length) > w.size
}

// Index returns the current position.
func (w Window) Index() int { return w.index }

// Next advances one slide, wrapping to the start past the last page.
func (w *Window) Next() {
	if !w.CanNavigate() {
		return
	}
	if w.index >= w.lastIndex() {
		w.index = 0
		return
	}
	w.index++
}

// Prev moves back one slide, wrapping to the last page from the start.
func (w *Window) Prev() {
	if !w.CanNavigate() {
		return
	}
	if w.index <= 0 {
		w.index = w.lastIndex()
		return
	}
	w.index--
}

// lastIndex is the furthest position that still shows a full page.
func (w Window) lastIndex() int {
	last := w.length - int(math.Ceil(w.size))
	if last < 0 {
		return 0
	}
	return last
}
