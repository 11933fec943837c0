// Package wrap breaks runs of styled tokens into lines of a given display
// width.
package wrap

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shahbajlive/mdskin/internal/style"
	"github.com/shahbajlive/mdskin/internal/styled"
)

// ErrInvalidWidth is returned for a zero or negative target width.
var ErrInvalidWidth = errors.New("invalid width")

// Replacement stands in for a rune too wide to fit on any line.
const Replacement = '?'

// Width returns the display width of tokens.
func Width(tokens []styled.Token) int {
	w := 0
	for _, t := range tokens {
		w += t.Width()
	}
	return w
}

// StringWidth returns the display width of s.
func StringWidth(s string) int { return styled.StringWidth(s) }

func checkWidth(width int) error {
	if width <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	return nil
}

type pieceKind uint8

const (
	word pieceKind = iota
	space
	newline
)

// piece is a word, a whitespace run or a forced break. A word may span
// several tokens, e.g. "foo**bar**".
type piece struct {
	kind  pieceKind
	frags []styled.Token
	width int
}

// normalizeSpace maps breaking whitespace to ' ' and drops '\r'. The
// no-break space is left alone so it glues words together.
func normalizeSpace(r rune) rune {
	switch {
	case r == '\r':
		return -1
	case r == '\n', r == ' ':
		return r
	case unicode.IsSpace(r):
		return ' '
	}
	return r
}

func classify(r rune) pieceKind {
	switch r {
	case '\n':
		return newline
	case ' ':
		return space
	}
	return word
}

func split(tokens []styled.Token) []piece {
	var out []piece
	for _, tok := range tokens {
		text := strings.Map(normalizeSpace, tok.Text)
		start, kind := 0, word
		for i, r := range text {
			k := classify(r)
			switch {
			case k == newline:
				out = addFrag(out, kind, text[start:i], tok.Style)
				out = append(out, piece{kind: newline})
				start = i + 1
			case i == start:
				kind = k
			case k != kind:
				out = addFrag(out, kind, text[start:i], tok.Style)
				start, kind = i, k
			}
		}
		out = addFrag(out, kind, text[start:], tok.Style)
	}
	return out
}

// addFrag appends text to the last piece when it is of the same kind,
// otherwise starts a new piece.
func addFrag(out []piece, k pieceKind, text string, st style.Style) []piece {
	if text == "" {
		return out
	}
	w := styled.StringWidth(text)
	if n := len(out); n > 0 && out[n-1].kind == k {
		out[n-1].frags = append(out[n-1].frags, styled.Tok(text, st))
		out[n-1].width += w
		return out
	}
	return append(out, piece{kind: k, frags: []styled.Token{styled.Tok(text, st)}, width: w})
}

// builder accumulates the current line.
type builder struct {
	width int
	lines []styled.Line
	cur   []styled.Token
	curW  int
	// content is true once the current line holds a word.
	content bool
}

func (b *builder) add(frags []styled.Token, w int) {
	b.cur = append(b.cur, frags...)
	b.curW += w
}

func (b *builder) emit() {
	b.lines = append(b.lines, styled.Line{Tokens: styled.Merge(b.cur)})
	b.cur = nil
	b.curW = 0
	b.content = false
}

// hardBreak places frags rune by rune, starting new lines at the width
// boundary.
func (b *builder) hardBreak(frags []styled.Token) {
	for _, f := range frags {
		for _, r := range f.Text {
			rw := styled.RuneWidth(r)
			if rw > b.width {
				r, rw = Replacement, 1
			}
			if b.curW+rw > b.width {
				b.emit()
			}
			b.add([]styled.Token{styled.Tok(string(r), f.Style)}, rw)
			b.content = true
		}
	}
}

// Wrap breaks tokens into lines no wider than width, preferring to break at
// whitespace. Whitespace at a break point is dropped, as is leading
// whitespace on continuation lines; leading whitespace of the first line and
// of lines after a "\n" is kept when it fits. A word wider than the line is
// broken at the width boundary. Returned lines have Kind Normal.
func Wrap(tokens []styled.Token, width int) ([]styled.Line, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	b := builder{width: width}
	var pending []styled.Token
	pendingW := 0
	// keepLeading is true at the start of the text and after a forced break.
	keepLeading := true

	for _, p := range split(tokens) {
		switch p.kind {
		case newline:
			b.emit()
			pending, pendingW = nil, 0
			keepLeading = true
		case space:
			if !b.content && !keepLeading {
				continue
			}
			pending = append(pending, p.frags...)
			pendingW += p.width
		case word:
			if b.content && b.curW+pendingW+p.width > width {
				b.emit()
				pending, pendingW = nil, 0
			}
			if b.curW+pendingW+p.width > width {
				// Only leading whitespace precedes the word here; give it up
				// before breaking the word itself.
				pending, pendingW = nil, 0
			}
			b.add(pending, pendingW)
			pending, pendingW = nil, 0
			if b.curW+p.width <= width {
				b.add(p.frags, p.width)
				b.content = true
			} else {
				b.hardBreak(p.frags)
			}
			keepLeading = false
		}
	}
	if b.content || len(b.cur) > 0 {
		b.emit()
	}
	return b.lines, nil
}

// Hard breaks tokens only at the width boundary and at "\n", keeping every
// space. It is the wrapping used for code. Tabs should already have been
// expanded with ExpandTabs; any left count as zero columns.
func Hard(tokens []styled.Token, width int) ([]styled.Line, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	b := builder{width: width}
	for _, tok := range tokens {
		start := 0
		text := strings.ReplaceAll(tok.Text, "\r", "")
		for i := 0; i <= len(text); i++ {
			if i < len(text) && text[i] != '\n' {
				continue
			}
			if i > start {
				b.hardBreak([]styled.Token{styled.Tok(text[start:i], tok.Style)})
			}
			if i < len(text) {
				b.emit()
			}
			start = i + 1
		}
	}
	if len(b.cur) > 0 {
		b.emit()
	}
	return b.lines, nil
}

// ExpandTabs replaces tabs with spaces up to the next multiple of tabWidth
// display columns. Columns restart after every "\n".
func ExpandTabs(s string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col += styled.RuneWidth(r)
		}
	}
	return b.String()
}
