package viewport

import (
	"testing"
)

func TestClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		contentLen, height, offset int
		want                       int
	}{
		{100, 10, 45, 45},
		{100, 10, -5, 0},
		{100, 10, 95, 90},
		{5, 10, 3, 0},
		{0, 0, 7, 0},
		{10, 10, 1, 0},
	}
	for _, tt := range tests {
		if got := Clamp(tt.contentLen, tt.height, tt.offset); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.contentLen, tt.height, tt.offset, got, tt.want)
		}
	}
}

func TestClampProperty(t *testing.T) {
	t.Parallel()

	for contentLen := 0; contentLen <= 30; contentLen++ {
		for height := 1; height <= 12; height++ {
			for offset := -40; offset <= 40; offset++ {
				got := Clamp(contentLen, height, offset)
				if got < 0 || got > max(0, contentLen-height) {
					t.Fatalf("Clamp(%d, %d, %d) = %d out of range", contentLen, height, offset, got)
				}
			}
		}
	}
}

func TestScrollbarGeometry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                       string
		contentLen, height, offset int
		want                       Thumb
		ok                         bool
	}{
		{"long content midway", 100, 10, 45, Thumb{Start: 5, Size: 1}, true},
		{"top", 100, 10, 0, Thumb{Start: 0, Size: 1}, true},
		{"bottom", 100, 10, 90, Thumb{Start: 9, Size: 1}, true},
		{"half visible", 20, 10, 10, Thumb{Start: 5, Size: 5}, true},
		{"offset past end clamps", 20, 10, 99, Thumb{Start: 5, Size: 5}, true},
		{"fits", 10, 10, 0, Thumb{}, false},
		{"empty", 0, 10, 0, Thumb{}, false},
		{"no height", 10, 0, 0, Thumb{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ScrollbarGeometry(tt.contentLen, tt.height, tt.offset)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ScrollbarGeometry(%d, %d, %d) = %+v, %v; want %+v, %v",
					tt.contentLen, tt.height, tt.offset, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestScrollbarThumbStaysOnTrack(t *testing.T) {
	t.Parallel()

	for contentLen := 1; contentLen <= 60; contentLen++ {
		for height := 1; height <= 20; height++ {
			for offset := 0; offset <= contentLen; offset++ {
				th, ok := ScrollbarGeometry(contentLen, height, offset)
				if !ok {
					continue
				}
				if th.Size < 1 || th.Start < 0 || th.End() > height {
					t.Fatalf("ScrollbarGeometry(%d, %d, %d) = %+v off track", contentLen, height, offset, th)
				}
			}
		}
	}
}

func TestTrack(t *testing.T) {
	t.Parallel()

	rows := Track(8, 4, 4)
	want := []bool{false, false, true, true}
	if len(rows) != len(want) {
		t.Fatalf("Track() = %v", rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("Track() = %v, want %v", rows, want)
			break
		}
	}
	if Track(3, 4, 0) != nil {
		t.Error("Track should be nil when content fits")
	}
}

func TestStateScrolling(t *testing.T) {
	t.Parallel()

	s := New(50, 10)
	if !s.AtTop() || s.AtBottom() {
		t.Fatal("new state should be at the top")
	}
	if !s.ScrollLines(3) || s.Offset() != 3 {
		t.Errorf("ScrollLines(3) offset = %d", s.Offset())
	}
	if !s.ScrollPages(1) || s.Offset() != 12 {
		t.Errorf("ScrollPages(1) offset = %d, want 12", s.Offset())
	}
	s.Bottom()
	if s.Offset() != 40 || !s.AtBottom() {
		t.Errorf("Bottom() offset = %d", s.Offset())
	}
	if s.ScrollLines(5) {
		t.Error("ScrollLines past the end should report no change")
	}
	if s.Percent() != 1 {
		t.Errorf("Percent at bottom = %v", s.Percent())
	}
	s.Top()
	if s.Percent() != 0 {
		t.Errorf("Percent at top = %v", s.Percent())
	}
	if s.ScrollPages(-1) {
		t.Error("ScrollPages(-1) at top should report no change")
	}
}

func TestStatePageSize(t *testing.T) {
	t.Parallel()

	tests := []struct{ height, want int }{{10, 9}, {2, 1}, {1, 1}, {0, 1}}
	for _, tt := range tests {
		if got := New(100, tt.height).PageSize(); got != tt.want {
			t.Errorf("PageSize at height %d = %d, want %d", tt.height, got, tt.want)
		}
	}
}

func TestStateReclampsOnResize(t *testing.T) {
	t.Parallel()

	s := New(50, 10)
	s.Bottom()
	s.SetContentLen(20)
	if s.Offset() != 10 {
		t.Errorf("after shrinking content offset = %d, want 10", s.Offset())
	}
	s.SetHeight(30)
	if s.Offset() != 0 {
		t.Errorf("after growing height offset = %d, want 0", s.Offset())
	}
	start, end := s.Visible()
	if start != 0 || end != 20 {
		t.Errorf("Visible() = %d, %d", start, end)
	}
}

func TestEnsureVisibleIsMinimal(t *testing.T) {
	t.Parallel()

	s := New(100, 10)
	s.EnsureVisible(5)
	if s.Offset() != 0 {
		t.Errorf("visible line should not scroll, offset = %d", s.Offset())
	}
	s.EnsureVisible(15)
	if s.Offset() != 6 {
		t.Errorf("scrolling down should put the line at the bottom, offset = %d", s.Offset())
	}
	s.EnsureVisible(3)
	if s.Offset() != 3 {
		t.Errorf("scrolling up should put the line at the top, offset = %d", s.Offset())
	}
	s.EnsureVisible(500)
	if s.Offset() != 90 {
		t.Errorf("out of range line should clamp, offset = %d", s.Offset())
	}
}
