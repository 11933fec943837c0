package composite

import (
	"strings"

	"github.com/shahbajlive/mdskin/internal/doc"
	"github.com/shahbajlive/mdskin/internal/skin"
	"github.com/shahbajlive/mdskin/internal/style"
	"github.com/shahbajlive/mdskin/internal/styled"
	"github.com/shahbajlive/mdskin/internal/wrap"
)

// table draws a framed grid. Column widths start at the widest cell and
// shrink in proportion when the frame would not fit in width; cells that no
// longer fit are wrapped inside their column.
func (r *run) table(t doc.Table, width int) []Line {
	ncols := len(t.Header)
	switch {
	case ncols == 0 && len(t.Rows) == 0:
		return r.fail(width, "empty table")
	case ncols == 0:
		return r.fail(width, "table has no header row")
	case len(t.Align) != 0 && len(t.Align) != ncols:
		return r.fail(width, "table has %d alignments for %d columns", len(t.Align), ncols)
	}
	for i, row := range t.Rows {
		if len(row) != ncols {
			return r.fail(width, "table row %d has %d cells, want %d", i+1, len(row), ncols)
		}
	}

	cellStyle := r.skin.Resolve(skin.TableCell)
	headStyle := r.over(cellStyle, skin.Bold)

	head := make([][]Token, ncols)
	natural := make([]int, ncols)
	for j, cell := range t.Header {
		head[j] = r.flatten(cell, headStyle)
		natural[j] = max(1, wrap.Width(head[j]))
	}
	rows := make([][][]Token, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = make([][]Token, ncols)
		for j, cell := range row {
			rows[i][j] = r.flatten(cell, cellStyle)
			natural[j] = max(natural[j], wrap.Width(rows[i][j]))
		}
	}

	// One frame character per column edge, one space of padding per side.
	padding := 1
	avail := width - (ncols + 1) - 2*padding*ncols
	if avail < ncols {
		padding = 0
		avail = width - (ncols + 1)
	}
	if avail < ncols {
		return []Line{elisionLine(r.skin, width)}
	}
	widths := fitColumns(natural, avail)

	aligns := make([]skin.Align, ncols)
	for j := range aligns {
		aligns[j] = r.skin.Align(skin.TableCell)
		if j < len(t.Align) {
			switch t.Align[j] {
			case doc.AlignLeft:
				aligns[j] = skin.AlignLeft
			case doc.AlignCenter:
				aligns[j] = skin.AlignCenter
			case doc.AlignRight:
				aligns[j] = skin.AlignRight
			}
		}
	}

	g := grid{
		border:  r.skin.Border(),
		style:   r.skin.Resolve(skin.TableBorder),
		cell:    cellStyle,
		widths:  widths,
		aligns:  aligns,
		padding: padding,
	}
	b := g.border
	out := []Line{g.rule(b.TopLeft, b.TopMid, b.TopRight)}
	out = append(out, g.row(head)...)
	out = append(out, g.rule(b.MidLeft, b.Cross, b.MidRight))
	for _, row := range rows {
		out = append(out, g.row(row)...)
	}
	out = append(out, g.rule(b.BottomLeft, b.BottomMid, b.BottomRight))
	return out
}

// fitColumns scales natural widths down to a total of avail, keeping every
// column at least one wide. avail must be at least len(natural).
func fitColumns(natural []int, avail int) []int {
	sum := 0
	for _, n := range natural {
		sum += n
	}
	widths := append([]int(nil), natural...)
	if sum <= avail {
		return widths
	}
	total := 0
	for j, n := range natural {
		widths[j] = max(1, n*avail/sum)
		total += widths[j]
	}
	// Integer division leaves some columns short; hand the remainder to the
	// columns that lost the most.
	for total < avail {
		best := 0
		for j := range widths {
			if natural[j]-widths[j] > natural[best]-widths[best] {
				best = j
			}
		}
		widths[best]++
		total++
	}
	for total > avail {
		best := 0
		for j := range widths {
			if widths[j] > widths[best] {
				best = j
			}
		}
		widths[best]--
		total--
	}
	return widths
}

type grid struct {
	border  skin.Border
	style   style.Style
	cell    style.Style
	widths  []int
	aligns  []skin.Align
	padding int
}

func (g grid) rule(left, mid, right rune) Line {
	var b strings.Builder
	b.WriteRune(left)
	for j, w := range g.widths {
		b.WriteString(strings.Repeat(string(g.border.Horizontal), w+2*g.padding))
		if j < len(g.widths)-1 {
			b.WriteRune(mid)
		}
	}
	b.WriteRune(right)
	return Line{Tokens: []Token{styled.Tok(b.String(), g.style)}, Kind: skin.TableBorder}
}

func (g grid) row(cells [][]Token) []Line {
	wrapped := make([][]Line, len(cells))
	height := 1
	for j, toks := range cells {
		lines, err := wrap.Wrap(toks, g.widths[j])
		if err != nil {
			lines = nil
		}
		wrapped[j] = lines
		height = max(height, len(lines))
	}

	vert := styled.Tok(string(g.border.Vertical), g.style)
	out := make([]Line, height)
	for k := range out {
		toks := []Token{vert}
		for j, w := range g.widths {
			var content Line
			if k < len(wrapped[j]) {
				content = wrapped[j][k]
			}
			free := w - content.Width()
			left := 0
			switch g.aligns[j] {
			case skin.AlignCenter:
				left = free / 2
			case skin.AlignRight:
				left = free
			}
			toks = append(toks, pad(g.padding+left, g.cell))
			toks = append(toks, content.Tokens...)
			toks = append(toks, pad(free-left+g.padding, g.cell), vert)
		}
		out[k] = Line{Tokens: styled.Merge(toks), Kind: skin.TableCell}
	}
	return out
}
