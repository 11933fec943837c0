// Package composite turns a document tree into width-bounded styled lines
// and resizes the result, either by rebuilding from the tree or by eliding
// the middle of an already flattened composite.
package composite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shahbajlive/mdskin/internal/doc"
	"github.com/shahbajlive/mdskin/internal/skin"
	"github.com/shahbajlive/mdskin/internal/style"
	"github.com/shahbajlive/mdskin/internal/styled"
)

var (
	// ErrInvalidBudget is returned by FitToLines for a budget below one line.
	ErrInvalidBudget = errors.New("invalid line budget")
	// ErrMalformedDocument reports a structurally inconsistent element. The
	// element is rendered as a marker line and the rest of the document is
	// still built.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrNoSource is returned when rewrapping a composite that was not built
	// from a document.
	ErrNoSource = errors.New("composite has no source document")
)

// Line and Token are the styled values a composite is made of.
type (
	Line  = styled.Line
	Token = styled.Token
)

// Source is what a composite can be rebuilt from.
type Source struct {
	Document doc.Document
	Skin     *skin.Skin
}

// Span locates one top-level block in a composite. End is exclusive. Title
// and Level are set for headers.
type Span struct {
	Start, End int
	Kind       skin.Kind
	Title      string
	Level      int
}

// Composite is a sequence of lines, each at most Width columns wide.
type Composite struct {
	Lines []Line
	Width int
	Spans []Span

	skin    *skin.Skin
	source  *Source
	builder *Builder
}

// FromLines wraps already rendered lines. The result cannot be rewrapped;
// s supplies the elision marker and may be nil for the default skin.
func FromLines(lines []Line, width int, s *skin.Skin) *Composite {
	return &Composite{Lines: lines, Width: width, skin: s}
}

// Len returns the number of lines.
func (c *Composite) Len() int { return len(c.Lines) }

// Source returns the document and skin c was built from, if retained.
func (c *Composite) Source() (Source, bool) {
	if c.source == nil {
		return Source{}, false
	}
	return *c.source, true
}

// Headers returns the spans of top-level headers in order.
func (c *Composite) Headers() []Span {
	var out []Span
	for _, s := range c.Spans {
		if s.Kind.IsHeader() {
			out = append(out, s)
		}
	}
	return out
}

// Text returns the unstyled lines joined by "\n".
func (c *Composite) Text() string {
	var b strings.Builder
	for i, l := range c.Lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.Text())
	}
	return b.String()
}

// Rewrap rebuilds src at a new width.
func Rewrap(src Source, width int) (*Composite, error) {
	return Build(src.Document, src.Skin, width)
}

// Rewrap rebuilds c's source at a new width with the builder that made c.
// c is left untouched so callers can keep showing it until the new one is
// ready.
func (c *Composite) Rewrap(width int) (*Composite, error) {
	if c.source == nil {
		return nil, ErrNoSource
	}
	b := c.builder
	if b == nil {
		b = NewBuilder()
	}
	return b.Build(c.source.Document, c.source.Skin, width)
}

// FitToLines elides the middle of c so that it has at most maxLines lines.
// The first ceil((maxLines-1)/2) and last floor((maxLines-1)/2) lines are
// kept around a single elision line carrying the skin's ellipsis in the
// normal style. A composite that already fits is returned as is. The result
// keeps no source: the elided text cannot be rewrapped back.
func FitToLines(c *Composite, maxLines int) (*Composite, error) {
	if maxLines < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBudget, maxLines)
	}
	if maxLines >= c.Len() {
		return c, nil
	}
	s := c.skin
	if s == nil {
		s = skin.Default()
	}
	head := maxLines / 2
	tail := (maxLines - 1) / 2

	lines := make([]Line, 0, maxLines)
	for _, l := range c.Lines[:head] {
		lines = append(lines, l.Clone())
	}
	lines = append(lines, elisionLine(s, c.Width))
	for _, l := range c.Lines[c.Len()-tail:] {
		lines = append(lines, l.Clone())
	}
	return &Composite{Lines: lines, Width: c.Width, skin: c.skin}, nil
}

func elisionLine(s *skin.Skin, width int) Line {
	text := truncate(s.Ellipsis(), width, "")
	return Line{Tokens: []Token{styled.Tok(text, s.Resolve(skin.Normal))}, Kind: skin.Normal}
}

// Extend pads c with blank normal lines up to minLines. A composite that is
// already long enough is returned as is; c itself is never modified.
func Extend(c *Composite, minLines int) *Composite {
	if minLines <= c.Len() {
		return c
	}
	cp := *c
	cp.Lines = make([]Line, c.Len(), minLines)
	copy(cp.Lines, c.Lines)
	for len(cp.Lines) < minLines {
		cp.Lines = append(cp.Lines, Line{Kind: skin.Normal})
	}
	return &cp
}

// truncate cuts s to width display columns, ending with tail when cut.
func truncate(s string, width int, tail string) string {
	if styled.StringWidth(s) <= width {
		return s
	}
	tw := styled.StringWidth(tail)
	if tw > width {
		tail, tw = "", 0
	}
	var b strings.Builder
	w := 0
	for _, r := range s {
		rw := styled.RuneWidth(r)
		if w+rw+tw > width {
			break
		}
		b.WriteRune(r)
		w += rw
	}
	b.WriteString(tail)
	return b.String()
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// pad returns a token of n spaces carrying only the background of st.
func pad(n int, st style.Style) Token {
	return styled.Tok(spaces(n), st.BackgroundOnly())
}
