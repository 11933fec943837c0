// Package styled holds the styled token and line values shared by the
// wrapper, the composite builder, the list view and the renderer.
package styled

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/shahbajlive/mdskin/internal/skin"
	"github.com/shahbajlive/mdskin/internal/style"
)

// Token is a run of text in a single style.
type Token struct {
	Text  string
	Style style.Style
}

// Tok returns a token.
func Tok(text string, st style.Style) Token {
	return Token{Text: text, Style: st}
}

// Width returns the display width of the token's text.
func (t Token) Width() int { return StringWidth(t.Text) }

// Line is exactly one terminal row. Kind is the element the line came from;
// Fill asks the renderer to pad the row to full width in the background of
// Kind's style.
type Line struct {
	Tokens []Token
	Kind   skin.Kind
	Fill   bool
}

// Width returns the display width of the line.
func (l Line) Width() int {
	w := 0
	for _, t := range l.Tokens {
		w += t.Width()
	}
	return w
}

// Text returns the line's characters without styling.
func (l Line) Text() string {
	var b strings.Builder
	for _, t := range l.Tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Clone returns a copy of l that shares no token storage with it.
func (l Line) Clone() Line {
	cp := l
	cp.Tokens = append([]Token(nil), l.Tokens...)
	return cp
}

// Prepend returns a copy of l with toks in front.
func (l Line) Prepend(toks ...Token) Line {
	cp := l
	cp.Tokens = make([]Token, 0, len(toks)+len(l.Tokens))
	cp.Tokens = append(cp.Tokens, toks...)
	cp.Tokens = append(cp.Tokens, l.Tokens...)
	return cp
}

// RuneWidth is the display width of a single rune. Control characters
// count as zero.
func RuneWidth(r rune) int { return runewidth.RuneWidth(r) }

// StringWidth is the display width of s, summed per rune. Summing keeps the
// width of a string equal to the sum of its pieces, which the wrapper relies
// on when it splits text.
func StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += runewidth.RuneWidth(r)
	}
	return w
}

// Merge joins adjacent tokens that share a style and drops empty ones.
func Merge(toks []Token) []Token {
	out := make([]Token, 0, len(toks))
	for _, t := range toks {
		if t.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Style == t.Style {
			out[n-1].Text += t.Text
			continue
		}
		out = append(out, t)
	}
	return out
}
