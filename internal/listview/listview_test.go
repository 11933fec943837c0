package listview

import (
	"strings"
	"testing"

	"github.com/shahbajlive/mdskin/internal/skin"
	"github.com/shahbajlive/mdskin/internal/styled"
)

type entry struct {
	name string
	size string
}

func columns() []Column[entry] {
	return []Column[entry]{
		{Title: "Name", Min: 2, Max: 8, Cell: func(e entry) string { return e.name }},
		{Title: "Size", Align: skin.AlignRight, Cell: func(e entry) string { return e.size }},
	}
}

func rows(names ...string) []entry {
	out := make([]entry, len(names))
	for i, n := range names {
		out[i] = entry{name: n, size: strings.Repeat("9", i+1)}
	}
	return out
}

func newList(height int, names ...string) *List[entry] {
	l := New(columns(), height)
	l.SetRows(rows(names...))
	return l
}

func TestSelectLastScrollsMinimally(t *testing.T) {
	t.Parallel()

	l := newList(2, "a", "b", "c")
	l.SelectLast()
	if l.Offset() != 1 {
		t.Errorf("Offset() = %d, want 1", l.Offset())
	}
	pos, ok := l.Selected()
	if !ok || pos != 2 {
		t.Errorf("Selected() = %d, %v; want 2, true", pos, ok)
	}
	vis := l.VisibleRows()
	if len(vis) != 2 || vis[0].Index != 1 || !vis[1].Selected {
		t.Errorf("VisibleRows() = %+v", vis)
	}
}

func TestSelectionClampsWithoutWrapping(t *testing.T) {
	t.Parallel()

	l := newList(2, "a", "b", "c")
	l.SelectFirst()
	l.SelectPrev()
	if pos, _ := l.Selected(); pos != 0 {
		t.Errorf("SelectPrev at top moved to %d", pos)
	}
	l.SelectLast()
	l.SelectNext()
	if pos, _ := l.Selected(); pos != 2 {
		t.Errorf("SelectNext at bottom moved to %d", pos)
	}
	l.Select(99)
	if pos, _ := l.Selected(); pos != 2 {
		t.Errorf("Select(99) = %d", pos)
	}
	l.Select(-4)
	if pos, _ := l.Selected(); pos != 0 || l.Offset() != 0 {
		t.Errorf("Select(-4) = %d offset %d", pos, l.Offset())
	}
}

func TestSelectNextFromNothing(t *testing.T) {
	t.Parallel()

	l := newList(2, "a", "b", "c", "d")
	l.ScrollLines(2)
	l.SelectNext()
	if pos, _ := l.Selected(); pos != 2 {
		t.Errorf("SelectNext with no selection = %d, want first visible 2", pos)
	}
	l.Unselect()
	l.SelectPrev()
	if pos, _ := l.Selected(); pos != 3 {
		t.Errorf("SelectPrev with no selection = %d, want last visible 3", pos)
	}
}

func TestEmptyList(t *testing.T) {
	t.Parallel()

	l := newList(3)
	l.SelectNext()
	l.SelectLast()
	if _, ok := l.Selected(); ok {
		t.Error("empty list should have no selection")
	}
	if got := l.VisibleRows(); len(got) != 0 {
		t.Errorf("VisibleRows() = %v", got)
	}
	if lines := l.Lines(skin.Plain(), 20); len(lines) != 1 {
		t.Errorf("Lines() = %d lines, want header only", len(lines))
	}
}

func TestScrollLinesKeepsSelection(t *testing.T) {
	t.Parallel()

	l := newList(2, "a", "b", "c", "d", "e")
	l.SelectFirst()
	if !l.ScrollLines(2) {
		t.Fatal("ScrollLines should move")
	}
	if pos, _ := l.Selected(); pos != 0 {
		t.Errorf("selection moved to %d", pos)
	}
	l.ScrollLines(10)
	if l.Offset() != 3 {
		t.Errorf("Offset() = %d, want 3", l.Offset())
	}
}

func TestResizeKeepsSelectionVisible(t *testing.T) {
	t.Parallel()

	l := newList(5, "a", "b", "c", "d", "e", "f")
	l.Select(4)
	l.Resize(2)
	start := l.Offset()
	if 4 < start || 4 >= start+2 {
		t.Errorf("selected row 4 not visible at offset %d", start)
	}
	if l.Height() != 2 {
		t.Errorf("Height() = %d", l.Height())
	}
}

func TestFilterKeepsSurvivingSelection(t *testing.T) {
	t.Parallel()

	l := newList(2, "apple", "bean", "avocado", "beet")
	l.Select(2) // avocado
	l.SetFilter(func(e entry) bool { return strings.HasPrefix(e.name, "a") })
	if l.Len() != 2 {
		t.Fatalf("Len() = %d", l.Len())
	}
	row, ok := l.SelectedRow()
	if !ok || row.name != "avocado" {
		t.Errorf("SelectedRow() = %v, %v", row, ok)
	}
	if pos, _ := l.Selected(); pos != 1 {
		t.Errorf("Selected() = %d, want 1", pos)
	}

	l.SetFilter(func(e entry) bool { return strings.HasPrefix(e.name, "b") })
	if _, ok := l.Selected(); ok {
		t.Error("selection should clear when its row is filtered out")
	}

	l.ClearFilter()
	if l.Len() != 4 {
		t.Errorf("Len() after ClearFilter = %d", l.Len())
	}
}

func TestSortFollowsSelection(t *testing.T) {
	t.Parallel()

	l := newList(4, "c", "a", "b")
	l.Select(0) // c
	l.Sort(func(a, b entry) bool { return a.name < b.name })
	var names []string
	for _, vr := range l.VisibleRows() {
		names = append(names, vr.Row.name)
	}
	if got := strings.Join(names, ","); got != "a,b,c" {
		t.Errorf("sorted rows = %s", got)
	}
	if pos, _ := l.Selected(); pos != 2 {
		t.Errorf("Selected() after sort = %d, want 2", pos)
	}
}

func TestColumnWidths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		names []string
		want  []int
	}{
		{"title wins", []string{"a"}, []int{4, 4}},
		{"content wins", []string{"abcdef"}, []int{6, 4}},
		{"capped", []string{"abcdefghijkl"}, []int{8, 4}},
		{"wide runes", []string{"日本語"}, []int{6, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := newList(3, tt.names...).ColumnWidths()
			if len(got) != len(tt.want) || got[0] != tt.want[0] || got[1] != tt.want[1] {
				t.Errorf("ColumnWidths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColumnMinimum(t *testing.T) {
	t.Parallel()

	l := New([]Column[entry]{{Min: 5, Cell: func(e entry) string { return e.name }}}, 2)
	l.SetRows(rows("x"))
	if got := l.ColumnWidths(); got[0] != 5 {
		t.Errorf("ColumnWidths() = %v, want [5]", got)
	}
}

func TestCell(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text  string
		width int
		align skin.Align
		tail  string
		want  string
	}{
		{"ab", 4, skin.AlignLeft, "…", "ab  "},
		{"ab", 4, skin.AlignRight, "…", "  ab"},
		{"ab", 5, skin.AlignCenter, "…", " ab  "},
		{"abcdef", 4, skin.AlignLeft, "…", "abc…"},
		{"abcdef", 4, skin.AlignLeft, "...", "a..."},
		{"abcdef", 2, skin.AlignLeft, "...", "ab"},
		{"abc", 0, skin.AlignLeft, "…", ""},
	}
	for _, tt := range tests {
		if got := Cell(tt.text, tt.width, tt.align, tt.tail); got != tt.want {
			t.Errorf("Cell(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestLines(t *testing.T) {
	t.Parallel()

	l := newList(2, "alpha", "a-very-long-name", "c")
	l.Select(1)
	lines := l.Lines(skin.Default(), 40)

	want := []string{
		"Name     Size",
		"alpha       9",
		"a-very-…   99",
	}
	if len(lines) != len(want) {
		t.Fatalf("Lines() = %d lines", len(lines))
	}
	for i, line := range lines {
		if got := line.Text(); got != want[i] {
			t.Errorf("line %d = %q, want %q", i, got, want[i])
		}
	}
	if lines[0].Kind != skin.TableCell || lines[2].Kind != skin.Selection || !lines[2].Fill {
		t.Errorf("kinds = %v %v fill %v", lines[0].Kind, lines[2].Kind, lines[2].Fill)
	}
	if lines[1].Fill {
		t.Error("unselected row should not fill")
	}
}

func TestLinesCutToWidth(t *testing.T) {
	t.Parallel()

	l := newList(3, "alpha", "beta", "gamma")
	for width := 1; width <= 20; width++ {
		for i, line := range l.Lines(skin.Default(), width) {
			if w := line.Width(); w > width {
				t.Fatalf("width %d: line %d is %d wide", width, i, w)
			}
		}
	}
	if got := l.Lines(skin.Default(), 0); got != nil {
		t.Errorf("Lines at width 0 = %v", got)
	}
	if got := styled.StringWidth(l.Lines(skin.Default(), 7)[0].Text()); got != 7 {
		t.Errorf("header cut width = %d", got)
	}
}

func TestSetRowsReclampsSelection(t *testing.T) {
	t.Parallel()

	l := newList(2, "a", "b", "c", "d", "e")
	l.SelectLast()
	if l.Offset() != 3 {
		t.Fatalf("Offset() = %d, want 3", l.Offset())
	}

	l.SetRows(rows("a", "b", "c"))
	pos, ok := l.Selected()
	if !ok || pos != 2 {
		t.Fatalf("Selected() = %d, %v; want 2, true", pos, ok)
	}
	if off := l.Offset(); off > pos || pos >= off+l.Height() {
		t.Errorf("selection %d not visible at offset %d", pos, off)
	}
	if row, _ := l.SelectedRow(); row.name != "c" {
		t.Errorf("SelectedRow() = %+v, want c", row)
	}

	l.Select(1)
	l.SetRows(rows("x", "y", "z", "w"))
	if pos, ok := l.Selected(); !ok || pos != 1 {
		t.Errorf("Selected() after same-size refresh = %d, %v; want 1, true", pos, ok)
	}

	l.SetRows(nil)
	if _, ok := l.Selected(); ok {
		t.Error("empty rows should clear the selection")
	}
	if l.Offset() != 0 {
		t.Errorf("Offset() = %d, want 0", l.Offset())
	}

	l.SetRows(rows("a", "b"))
	if _, ok := l.Selected(); ok {
		t.Error("a cleared selection should stay cleared")
	}
}

func TestSetRowsWithoutSelectionKeepsOffsetClamped(t *testing.T) {
	t.Parallel()

	l := newList(2, "a", "b", "c", "d", "e")
	l.ScrollLines(3)
	l.SetRows(rows("a", "b", "c"))
	if l.Offset() != 1 {
		t.Errorf("Offset() = %d, want 1", l.Offset())
	}
	if _, ok := l.Selected(); ok {
		t.Error("no selection expected")
	}
}
