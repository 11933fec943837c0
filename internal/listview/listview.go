// Package listview is a scrollable, selectable table of rows with columns
// sized from their content.
package listview

import (
	"slices"

	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"

	"github.com/shahbajlive/mdskin/internal/skin"
	"github.com/shahbajlive/mdskin/internal/style"
	"github.com/shahbajlive/mdskin/internal/styled"
	"github.com/shahbajlive/mdskin/internal/viewport"
)

// Column describes one column. Max ≤ 0 leaves the width uncapped.
type Column[T any] struct {
	Title string
	Min   int
	Max   int
	Align skin.Align
	Cell  func(T) string
}

// VisibleRow is a row currently on screen. Index is its position among
// the displayed rows.
type VisibleRow[T any] struct {
	Index    int
	Row      T
	Selected bool
}

// List holds rows, a filter, a selection and a scroll position. Selection
// and scrolling operate on the displayed rows, the ones passing the filter.
type List[T any] struct {
	columns []Column[T]
	rows    []T

	filter    func(T) bool
	displayed []int // indexes into rows
	selected  int   // index into rows, -1 when nothing is selected
	view      viewport.State
}

// New returns an empty list showing height rows below its header.
func New[T any](columns []Column[T], height int) *List[T] {
	return &List[T]{
		columns:  columns,
		selected: -1,
		view:     viewport.New(0, height),
	}
}

// Columns returns the column definitions.
func (l *List[T]) Columns() []Column[T] { return l.columns }

// Len returns the number of displayed rows.
func (l *List[T]) Len() int { return len(l.displayed) }

// Height returns the number of row lines on screen.
func (l *List[T]) Height() int { return l.view.Height() }

// Offset returns the displayed index of the first visible row.
func (l *List[T]) Offset() int { return l.view.Offset() }

// SetRows replaces the rows. A selection stays at its displayed position,
// clamped to the new rows, and is cleared only when no row is displayed.
// The scroll offset is clamped, then moved minimally to keep the selection
// in view.
func (l *List[T]) SetRows(rows []T) {
	pos, had := l.Selected()
	l.rows = rows
	l.selected = -1
	l.refresh()
	if had {
		l.Select(pos)
	}
}

// Rows returns the underlying rows, filtered out ones included.
func (l *List[T]) Rows() []T { return l.rows }

// Displayed returns the rows passing the filter, in display order.
func (l *List[T]) Displayed() []T {
	out := make([]T, len(l.displayed))
	for pos, i := range l.displayed {
		out[pos] = l.rows[i]
	}
	return out
}

func (l *List[T]) refresh() {
	l.displayed = l.displayed[:0]
	for i, r := range l.rows {
		if l.filter == nil || l.filter(r) {
			l.displayed = append(l.displayed, i)
		}
	}
	if l.selected >= 0 && l.position(l.selected) < 0 {
		l.selected = -1
	}
	l.view.SetContentLen(len(l.displayed))
	if pos, ok := l.Selected(); ok {
		l.view.EnsureVisible(pos)
	}
}

// position returns the displayed index of row i, or -1.
func (l *List[T]) position(i int) int {
	return slices.Index(l.displayed, i)
}

// Selected returns the displayed index of the selected row.
func (l *List[T]) Selected() (int, bool) {
	if l.selected < 0 {
		return 0, false
	}
	pos := l.position(l.selected)
	return pos, pos >= 0
}

// SelectedRow returns the selected row.
func (l *List[T]) SelectedRow() (T, bool) {
	var zero T
	if l.selected < 0 {
		return zero, false
	}
	return l.rows[l.selected], true
}

// Select selects displayed row i, clamped to the displayed rows, and
// scrolls it into view. It does nothing when no row is displayed.
func (l *List[T]) Select(i int) {
	if len(l.displayed) == 0 {
		return
	}
	i = min(max(i, 0), len(l.displayed)-1)
	l.selected = l.displayed[i]
	l.view.EnsureVisible(i)
}

// Unselect clears the selection without scrolling.
func (l *List[T]) Unselect() { l.selected = -1 }

// SelectNext moves the selection down one row, stopping at the last. With
// nothing selected it selects the first visible row.
func (l *List[T]) SelectNext() {
	pos, ok := l.Selected()
	if !ok {
		l.Select(l.view.Offset())
		return
	}
	l.Select(pos + 1)
}

// SelectPrev moves the selection up one row, stopping at the first. With
// nothing selected it selects the last visible row.
func (l *List[T]) SelectPrev() {
	pos, ok := l.Selected()
	if !ok {
		_, end := l.view.Visible()
		l.Select(end - 1)
		return
	}
	l.Select(pos - 1)
}

// SelectFirst selects the first displayed row.
func (l *List[T]) SelectFirst() { l.Select(0) }

// SelectLast selects the last displayed row.
func (l *List[T]) SelectLast() { l.Select(len(l.displayed) - 1) }

// ScrollLines scrolls by n rows without moving the selection.
func (l *List[T]) ScrollLines(n int) bool { return l.view.ScrollLines(n) }

// ScrollPages scrolls by n pages without moving the selection.
func (l *List[T]) ScrollPages(n int) bool { return l.view.ScrollPages(n) }

// Resize changes the number of visible rows, keeping the selection on
// screen.
func (l *List[T]) Resize(height int) {
	l.view.SetHeight(height)
	if pos, ok := l.Selected(); ok {
		l.view.EnsureVisible(pos)
	}
}

// SetFilter shows only the rows for which keep returns true. A selected
// row that passes stays selected; otherwise the selection is cleared.
func (l *List[T]) SetFilter(keep func(T) bool) {
	l.filter = keep
	l.refresh()
}

// ClearFilter shows every row again.
func (l *List[T]) ClearFilter() { l.SetFilter(nil) }

// Sort reorders the rows stably. The selection follows its row.
func (l *List[T]) Sort(less func(a, b T) bool) {
	order := make([]int, len(l.rows))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case less(l.rows[a], l.rows[b]):
			return -1
		case less(l.rows[b], l.rows[a]):
			return 1
		}
		return 0
	})
	rows := make([]T, len(l.rows))
	sel := -1
	for to, from := range order {
		rows[to] = l.rows[from]
		if from == l.selected {
			sel = to
		}
	}
	l.rows, l.selected = rows, sel
	l.refresh()
}

// VisibleRows returns the displayed rows currently on screen.
func (l *List[T]) VisibleRows() []VisibleRow[T] {
	start, end := l.view.Visible()
	out := make([]VisibleRow[T], 0, end-start)
	for pos := start; pos < end; pos++ {
		i := l.displayed[pos]
		out = append(out, VisibleRow[T]{Index: pos, Row: l.rows[i], Selected: i == l.selected})
	}
	return out
}

// ColumnWidths sizes each column to its widest title or displayed cell,
// clamped to the column's bounds.
func (l *List[T]) ColumnWidths() []int {
	widths := make([]int, len(l.columns))
	for c, col := range l.columns {
		w := styled.StringWidth(col.Title)
		for _, i := range l.displayed {
			w = max(w, styled.StringWidth(col.Cell(l.rows[i])))
		}
		w = max(w, col.Min)
		if col.Max > 0 {
			w = min(w, col.Max)
		}
		widths[c] = max(w, 0)
	}
	return widths
}

// Lines renders the header and the visible rows, each cut to width. Cells
// longer than their column end with the skin's ellipsis; columns are
// separated by one space. The selected row is drawn in the selection style
// across the whole width.
func (l *List[T]) Lines(s *skin.Skin, width int) []styled.Line {
	if width <= 0 {
		return nil
	}
	if s == nil {
		s = skin.Default()
	}
	widths := l.ColumnWidths()
	cellStyle := s.Resolve(skin.TableCell)
	head := cellStyle.With(style.Bold)

	titles := make([]string, len(l.columns))
	for c, col := range l.columns {
		titles[c] = col.Title
	}
	out := []styled.Line{l.line(titles, widths, width, s, head, skin.TableCell)}

	for _, vr := range l.VisibleRows() {
		cells := make([]string, len(l.columns))
		for c, col := range l.columns {
			cells[c] = col.Cell(vr.Row)
		}
		st, kind := s.Resolve(skin.Normal), skin.Normal
		if vr.Selected {
			st, kind = cellStyle.Override(s.Resolve(skin.Selection)), skin.Selection
		}
		line := l.line(cells, widths, width, s, st, kind)
		line.Fill = vr.Selected
		out = append(out, line)
	}
	return out
}

func (l *List[T]) line(cells []string, widths []int, width int, s *skin.Skin, st style.Style, kind skin.Kind) styled.Line {
	var toks []styled.Token
	for c, text := range cells {
		if c > 0 {
			toks = append(toks, styled.Tok(" ", st))
		}
		toks = append(toks, styled.Tok(Cell(text, widths[c], l.columns[c].Align, s.Ellipsis()), st))
	}
	return styled.Line{Tokens: cut(toks, width), Kind: kind}
}

// Cell fits text into exactly width columns: truncated with tail when too
// long, padded according to a when too short.
func Cell(text string, width int, a skin.Align, tail string) string {
	if width <= 0 {
		return ""
	}
	if styled.StringWidth(tail) > width {
		tail = ""
	}
	text = truncate.StringWithTail(text, uint(width), tail)
	free := width - styled.StringWidth(text)
	switch a {
	case skin.AlignRight:
		return spaces(free) + text
	case skin.AlignCenter:
		left := free / 2
		return padding.String(spaces(left)+text, uint(width))
	}
	return padding.String(text, uint(width))
}

// cut drops whatever lies beyond width columns.
func cut(toks []styled.Token, width int) []styled.Token {
	out := make([]styled.Token, 0, len(toks))
	used := 0
	for _, t := range toks {
		w := t.Width()
		if used+w <= width {
			out = append(out, t)
			used += w
			continue
		}
		if room := width - used; room > 0 {
			out = append(out, styled.Tok(truncate.String(t.Text, uint(room)), t.Style))
		}
		break
	}
	return styled.Merge(out)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
