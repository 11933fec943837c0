// Package viewport computes scroll offsets and scrollbar geometry for a
// window onto a longer sequence of lines.
package viewport

import "math"

// Clamp limits offset to [0, max(0, contentLen-height)].
func Clamp(contentLen, height, offset int) int {
	hi := max(0, contentLen-height)
	return min(max(offset, 0), hi)
}

// Thumb is the part of a scrollbar track that represents the visible window.
type Thumb struct {
	Start int
	Size  int
}

// End returns the row just past the thumb.
func (t Thumb) End() int { return t.Start + t.Size }

// ScrollbarGeometry places the thumb on a track of height rows. ok is false
// when all content fits and no scrollbar is needed.
//
//	size  = max(1, round(height*height/contentLen))
//	start = round(offset*(height-size)/max(1, contentLen-height))
//
// Both are clamped so the thumb stays on the track.
func ScrollbarGeometry(contentLen, height, offset int) (Thumb, bool) {
	if height <= 0 || contentLen <= height {
		return Thumb{}, false
	}
	offset = Clamp(contentLen, height, offset)
	size := int(math.Round(float64(height) * float64(height) / float64(contentLen)))
	size = min(max(size, 1), height)
	scrollable := max(1, contentLen-height)
	start := int(math.Round(float64(offset) * float64(height-size) / float64(scrollable)))
	start = min(max(start, 0), height-size)
	return Thumb{Start: start, Size: size}, true
}

// Track reports, for each of the height rows of a scrollbar, whether the
// row is part of the thumb. It returns nil when no scrollbar is needed.
func Track(contentLen, height, offset int) []bool {
	thumb, ok := ScrollbarGeometry(contentLen, height, offset)
	if !ok {
		return nil
	}
	rows := make([]bool, height)
	for i := thumb.Start; i < thumb.End(); i++ {
		rows[i] = true
	}
	return rows
}

// State is a scroll position over content of a known length. Every change
// re-clamps the offset.
type State struct {
	contentLen int
	height     int
	offset     int
}

// New returns a state at the top of the content.
func New(contentLen, height int) State {
	return State{contentLen: max(0, contentLen), height: max(0, height)}
}

// ContentLen returns the number of content lines.
func (s State) ContentLen() int { return s.contentLen }

// Height returns the viewport height.
func (s State) Height() int { return s.height }

// Offset returns the index of the first visible line.
func (s State) Offset() int { return s.offset }

func (s *State) clamp() { s.offset = Clamp(s.contentLen, s.height, s.offset) }

// SetContentLen changes the content length.
func (s *State) SetContentLen(n int) {
	s.contentLen = max(0, n)
	s.clamp()
}

// SetHeight changes the viewport height.
func (s *State) SetHeight(h int) {
	s.height = max(0, h)
	s.clamp()
}

// ScrollTo moves the first visible line to offset.
func (s *State) ScrollTo(offset int) {
	s.offset = offset
	s.clamp()
}

// ScrollLines moves by n lines; negative scrolls up. It reports whether the
// offset changed.
func (s *State) ScrollLines(n int) bool {
	before := s.offset
	s.ScrollTo(s.offset + n)
	return s.offset != before
}

// PageSize is the distance of a page scroll: one line less than the height
// so a line of context stays on screen, and never less than one.
func (s State) PageSize() int { return max(1, s.height-1) }

// ScrollPages moves by n pages. It reports whether the offset changed.
func (s *State) ScrollPages(n int) bool {
	return s.ScrollLines(n * s.PageSize())
}

// Top scrolls to the start.
func (s *State) Top() { s.offset = 0 }

// Bottom scrolls to the end.
func (s *State) Bottom() { s.ScrollTo(s.contentLen) }

// AtTop reports whether the first line is visible.
func (s State) AtTop() bool { return s.offset == 0 }

// AtBottom reports whether the last line is visible.
func (s State) AtBottom() bool { return s.offset >= max(0, s.contentLen-s.height) }

// EnsureVisible scrolls the least distance that brings line i on screen.
func (s *State) EnsureVisible(i int) {
	if s.height <= 0 {
		return
	}
	switch {
	case i < s.offset:
		s.offset = i
	case i >= s.offset+s.height:
		s.offset = i - s.height + 1
	}
	s.clamp()
}

// Visible returns the half-open range of content lines on screen.
func (s State) Visible() (start, end int) {
	return s.offset, min(s.contentLen, s.offset+s.height)
}

// Percent is how far through the content the viewport is, from 0 to 1.
// Content that fits entirely reports 1.
func (s State) Percent() float64 {
	scrollable := s.contentLen - s.height
	if scrollable <= 0 {
		return 1
	}
	return float64(s.offset) / float64(scrollable)
}

// Scrollbar returns the thumb for the current position.
func (s State) Scrollbar() (Thumb, bool) {
	return ScrollbarGeometry(s.contentLen, s.height, s.offset)
}
