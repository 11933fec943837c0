package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/shahbajlive/mdskin/internal/composite"
	"github.com/shahbajlive/mdskin/internal/doc"
	"github.com/shahbajlive/mdskin/internal/skin"
	"github.com/shahbajlive/mdskin/internal/style"
	"github.com/shahbajlive/mdskin/internal/styled"
	"github.com/shahbajlive/mdskin/internal/testutil"
	"github.com/shahbajlive/mdskin/internal/viewport"
)

func ascii(s *skin.Skin) *Renderer {
	return New(&bytes.Buffer{}, s, WithProfile(termenv.Ascii))
}

func color(s *skin.Skin) *Renderer {
	return New(&bytes.Buffer{}, s, WithProfile(termenv.ANSI256))
}

func TestAsciiProfileEmitsPlainText(t *testing.T) {
	t.Parallel()

	d := doc.New(
		doc.H(1, doc.T("Title")),
		doc.P(doc.T("some "), doc.B(doc.T("bold")), doc.T(" text")),
		doc.Bullets("one", "two"),
	)
	c, err := composite.Build(d, skin.Plain(), 20)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	r := ascii(skin.Plain())
	if r.Profile() != termenv.Ascii {
		t.Fatalf("Profile() = %v", r.Profile())
	}
	testutil.AssertText(t, r.Composite(c), c.Text())
}

func TestColorProfileEmitsEscapes(t *testing.T) {
	t.Parallel()

	r := color(skin.Default())
	got := r.Token(styled.Tok("hi", style.New(style.MustColor("178"), style.MustColor("235"), style.Bold)))
	for _, want := range []string{"38;5;178", "48;5;235", "hi"} {
		if !strings.Contains(got, want) {
			t.Errorf("Token() = %q, missing %q", got, want)
		}
	}
	if w := Width(got); w != 2 {
		t.Errorf("Width() = %d, want 2", w)
	}
	if plain := r.Token(styled.Tok("x", style.Style{})); plain != "x" {
		t.Errorf("unstyled token = %q", plain)
	}
}

func TestFillPadsWithKindBackground(t *testing.T) {
	t.Parallel()

	s := skin.New(skin.WithStyle(skin.CodeBlock, style.New(style.NoColor, style.MustColor("236"), 0)))
	r := color(s)
	line := styled.Line{
		Tokens: []styled.Token{styled.Tok("ab", s.Resolve(skin.CodeBlock))},
		Kind:   skin.CodeBlock,
		Fill:   true,
	}
	got := r.Line(line, 6)
	if w := Width(got); w != 6 {
		t.Errorf("filled width = %d, want 6", w)
	}
	if strings.Count(got, "48;5;236") != 2 {
		t.Errorf("fill should carry the background: %q", got)
	}

	line.Fill = false
	if w := Width(r.Line(line, 6)); w != 2 {
		t.Errorf("unfilled width = %d, want 2", w)
	}
}

func TestPageWithScrollbar(t *testing.T) {
	t.Parallel()

	var lines []styled.Line
	for _, s := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		lines = append(lines, styled.Line{Tokens: []styled.Token{styled.Tok(s, style.Style{})}})
	}
	view := viewport.New(len(lines), 4)
	view.ScrollTo(4)

	got := ascii(skin.Plain()).Page(lines, 3, view, true)
	want := []string{
		"e |",
		"f |",
		"g #",
		"h #",
	}
	testutil.AssertText(t, strings.Join(got, "\n"), strings.Join(want, "\n"))
}

func TestPageWithoutOverflow(t *testing.T) {
	t.Parallel()

	lines := []styled.Line{{Tokens: []styled.Token{styled.Tok("only", style.Style{})}}}
	got := ascii(skin.Plain()).Page(lines, 6, viewport.New(1, 3), true)
	want := []string{"only  ", "      ", "      "}
	testutil.AssertText(t, strings.Join(got, "\n"), strings.Join(want, "\n"))
}

func TestPageRowsHaveExactWidth(t *testing.T) {
	t.Parallel()

	d := doc.New(doc.H(1, doc.T("Header")), doc.P(doc.T(strings.Repeat("word ", 40))), doc.Bullets("a", "b"))
	for _, s := range []*skin.Skin{skin.Default(), skin.Light(), skin.Plain()} {
		r := color(s)
		for width := 5; width <= 40; width += 7 {
			tw := TextWidth(width, 100, 6, true)
			c, err := composite.Build(d, s, tw)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			view := viewport.New(c.Len(), 6)
			view.ScrollLines(2)
			for i, row := range r.Page(c.Lines, width, view, true) {
				if w := Width(row); w != width {
					t.Fatalf("%s width %d row %d = %d wide: %q", s.Name(), width, i, w, row)
				}
			}
		}
	}
}

func TestTextWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		width, contentLen, height int
		scrollbar                 bool
		want                      int
	}{
		{80, 100, 20, true, 79},
		{80, 10, 20, true, 80},
		{80, 100, 20, false, 80},
		{1, 100, 20, true, 1},
	}
	for _, tt := range tests {
		if got := TextWidth(tt.width, tt.contentLen, tt.height, tt.scrollbar); got != tt.want {
			t.Errorf("TextWidth(%+v) = %d, want %d", tt, got, tt.want)
		}
	}
}

func TestWriteComposite(t *testing.T) {
	t.Parallel()

	c := composite.FromLines([]styled.Line{
		{Tokens: []styled.Token{styled.Tok("one", style.Style{})}},
		{Tokens: []styled.Token{styled.Tok("two", style.Style{})}},
	}, 10, nil)
	var buf bytes.Buffer
	if err := ascii(nil).WriteComposite(&buf, c); err != nil {
		t.Fatalf("WriteComposite() error = %v", err)
	}
	if buf.String() != "one\ntwo\n" {
		t.Errorf("WriteComposite() = %q", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	r := color(skin.Default())
	s := r.Token(styled.Tok("status line", style.New(style.MustColor("39"), style.NoColor, 0)))
	got := Truncate(s, 7, "…")
	if w := Width(got); w != 7 {
		t.Errorf("Truncate width = %d, want 7 (%q)", w, got)
	}
}
