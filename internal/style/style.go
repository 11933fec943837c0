// Package style defines the immutable Style value shared by skins, the
// composite builder and the renderer.
package style

import "strings"

// Attr is a set of text attributes.
type Attr uint16

const (
	Bold Attr = 1 << iota
	Italic
	Underline
	Strikethrough
	Faint
	Reverse
	Blink
)

var attrNames = []struct {
	attr Attr
	name string
}{
	{Bold, "bold"},
	{Italic, "italic"},
	{Underline, "underline"},
	{Strikethrough, "strikethrough"},
	{Faint, "faint"},
	{Reverse, "reverse"},
	{Blink, "blink"},
}

// Has reports whether every attribute in b is set in a.
func (a Attr) Has(b Attr) bool { return a&b == b }

// String lists the set attributes separated by spaces.
func (a Attr) String() string {
	var names []string
	for _, an := range attrNames {
		if a.Has(an.attr) {
			names = append(names, an.name)
		}
	}
	return strings.Join(names, " ")
}

// Style is a foreground/background pair plus attributes. Unset colors leave
// the terminal default (or an enclosing style) in effect.
type Style struct {
	Fg    Color
	Bg    Color
	Attrs Attr
}

// New returns a style with the given colors and attributes.
func New(fg, bg Color, attrs Attr) Style {
	return Style{Fg: fg, Bg: bg, Attrs: attrs}
}

// Foreground returns a copy of s with the foreground replaced.
func (s Style) Foreground(c Color) Style {
	s.Fg = c
	return s
}

// Background returns a copy of s with the background replaced.
func (s Style) Background(c Color) Style {
	s.Bg = c
	return s
}

// With returns a copy of s with the attributes added.
func (s Style) With(attrs Attr) Style {
	s.Attrs |= attrs
	return s
}

// Override layers over on top of s. Colors are replaced only when over sets
// them; attributes accumulate.
func (s Style) Override(over Style) Style {
	if over.Fg.IsSet() {
		s.Fg = over.Fg
	}
	if over.Bg.IsSet() {
		s.Bg = over.Bg
	}
	s.Attrs |= over.Attrs
	return s
}

// IsZero reports whether the style changes nothing.
func (s Style) IsZero() bool {
	return s == Style{}
}

// HasBackground reports whether a background color is set.
func (s Style) HasBackground() bool { return s.Bg.IsSet() }

// BackgroundOnly keeps only the background of s; used for padding and
// continuation indents.
func (s Style) BackgroundOnly() Style {
	return Style{Bg: s.Bg}
}

// String renders s in the spec syntax accepted by ParseSpec.
func (s Style) String() string {
	var parts []string
	if s.Fg.IsSet() {
		parts = append(parts, s.Fg.String())
	}
	if s.Bg.IsSet() {
		parts = append(parts, "on", s.Bg.String())
	}
	if s.Attrs != 0 {
		parts = append(parts, s.Attrs.String())
	}
	return strings.Join(parts, " ")
}
