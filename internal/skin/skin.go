// Package skin maps document element kinds to terminal styles.
//
// A Skin is immutable once built. Every render call takes the skin as an
// explicit argument; derive a modified copy with Derive instead of editing a
// shared one.
package skin

import (
	"errors"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/shahbajlive/mdskin/internal/style"
)

var (
	// ErrUnresolvableStyle marks a skin entry that could not be turned into a
	// style. Entries failing this way fall back to the normal style.
	ErrUnresolvableStyle = errors.New("unresolvable style")
	// ErrUnknownPreset is returned when a preset name is not registered.
	ErrUnknownPreset = errors.New("unknown skin preset")
)

// Align is the horizontal alignment applied to headers, code blocks and
// table cells.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// String returns the configuration name of the alignment.
func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// ParseAlign parses "left", "center"/"centre" or "right".
func ParseAlign(s string) (Align, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "":
		return AlignLeft, true
	case "center", "centre", "middle":
		return AlignCenter, true
	case "right":
		return AlignRight, true
	}
	return AlignLeft, false
}

// Glyph is a single styled character such as a bullet or quote mark. Its
// style is layered over the style of the element it decorates.
type Glyph struct {
	Char  rune
	Style style.Style
}

// String returns the glyph character.
func (g Glyph) String() string { return string(g.Char) }

// Width returns the display width of the glyph.
func (g Glyph) Width() int { return runewidth.RuneWidth(g.Char) }

// Border is the set of characters used to draw table frames.
type Border struct {
	Horizontal, Vertical               rune
	TopLeft, TopMid, TopRight          rune
	MidLeft, Cross, MidRight           rune
	BottomLeft, BottomMid, BottomRight rune
}

var (
	// BoxBorder draws tables with light box-drawing characters.
	BoxBorder = Border{'─', '│', '┌', '┬', '┐', '├', '┼', '┤', '└', '┴', '┘'}
	// RoundedBorder is BoxBorder with rounded corners.
	RoundedBorder = Border{'─', '│', '╭', '┬', '╮', '├', '┼', '┤', '╰', '┴', '╯'}
	// ASCIIBorder uses only '-', '|' and '+'.
	ASCIIBorder = Border{'-', '|', '+', '+', '+', '+', '+', '+', '+', '+', '+'}
)

var borders = map[string]Border{
	"box":     BoxBorder,
	"unicode": BoxBorder,
	"rounded": RoundedBorder,
	"ascii":   ASCIIBorder,
}

// Skin resolves element kinds to styles and carries the glyphs used for
// decorations.
type Skin struct {
	name      string
	styles    [kindCount]style.Style
	set       [kindCount]bool
	align     [kindCount]Align
	bullet    Glyph
	quoteMark Glyph
	rule      rune
	track     rune
	thumb     rune
	ellipsis  string
	border    Border
	codeTheme string
}

// Option configures a Skin during construction.
type Option func(*Skin)

// New builds a skin from bare defaults: unstyled text and unicode glyphs.
func New(opts ...Option) *Skin {
	s := &Skin{
		name:      "custom",
		bullet:    Glyph{Char: '•'},
		quoteMark: Glyph{Char: '▐'},
		rule:      '―',
		track:     '│',
		thumb:     '┃',
		ellipsis:  "…",
		border:    BoxBorder,
	}
	s.set[Normal] = true
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Derive returns a copy of s with opts applied. s itself is unchanged.
func (s *Skin) Derive(opts ...Option) *Skin {
	cp := *s
	for _, opt := range opts {
		opt(&cp)
	}
	return &cp
}

// WithName sets the skin's display name.
func WithName(name string) Option {
	return func(s *Skin) { s.name = name }
}

// WithStyle sets the style for kind. Invalid kinds are ignored.
func WithStyle(kind Kind, st style.Style) Option {
	return func(s *Skin) {
		if !kind.Valid() {
			return
		}
		s.styles[kind] = st
		s.set[kind] = true
	}
}

// WithHeaders sets the same style on every header level.
func WithHeaders(st style.Style) Option {
	return func(s *Skin) {
		for lvl := 1; lvl <= MaxHeaderLevel; lvl++ {
			WithStyle(HeaderKind(lvl), st)(s)
		}
	}
}

// WithAlign sets the alignment for kind.
func WithAlign(kind Kind, a Align) Option {
	return func(s *Skin) {
		if kind.Valid() {
			s.align[kind] = a
		}
	}
}

// WithBullet sets the bullet glyph for unordered list items.
func WithBullet(g Glyph) Option {
	return func(s *Skin) { s.bullet = g }
}

// WithQuoteMark sets the glyph prefixed to quoted lines.
func WithQuoteMark(g Glyph) Option {
	return func(s *Skin) { s.quoteMark = g }
}

// WithRuleChar sets the character repeated for horizontal rules.
func WithRuleChar(r rune) Option {
	return func(s *Skin) { s.rule = r }
}

// WithScrollbarChars sets the scrollbar track and thumb characters.
func WithScrollbarChars(track, thumb rune) Option {
	return func(s *Skin) {
		s.track = track
		s.thumb = thumb
	}
}

// WithEllipsis sets the marker used for elided or truncated content. Empty
// markers and markers holding control characters are ignored.
func WithEllipsis(e string) Option {
	return func(s *Skin) {
		if e != "" && !hasControl(e) {
			s.ellipsis = e
		}
	}
}

// WithBorder sets the table frame characters.
func WithBorder(b Border) Option {
	return func(s *Skin) { s.border = b }
}

// WithCodeTheme names the chroma theme used to highlight fenced code with a
// language. The empty string disables highlighting.
func WithCodeTheme(theme string) Option {
	return func(s *Skin) { s.codeTheme = theme }
}

// Name returns the skin's display name.
func (s *Skin) Name() string { return s.name }

// Resolve returns the style for kind, falling back to the normal style when
// the kind has no explicit entry. It never fails.
func (s *Skin) Resolve(kind Kind) style.Style {
	if kind.Valid() && s.set[kind] {
		return s.styles[kind]
	}
	return s.styles[Normal]
}

// Explicit returns the style for kind only if the skin sets it.
func (s *Skin) Explicit(kind Kind) (style.Style, bool) {
	if !kind.Valid() || !s.set[kind] {
		return style.Style{}, false
	}
	return s.styles[kind], true
}

// Compose resolves an inline kind nested inside an outer kind: the outer
// style first, then only the fields the inner entry explicitly sets.
func (s *Skin) Compose(outer, inner Kind) style.Style {
	base := s.Resolve(outer)
	if over, ok := s.Explicit(inner); ok {
		return base.Override(over)
	}
	return base
}

// Align returns the alignment configured for kind.
func (s *Skin) Align(kind Kind) Align {
	if !kind.Valid() {
		return AlignLeft
	}
	return s.align[kind]
}

// Bullet returns the unordered-list glyph.
func (s *Skin) Bullet() Glyph { return s.bullet }

// QuoteMark returns the quote glyph.
func (s *Skin) QuoteMark() Glyph { return s.quoteMark }

// RuleChar returns the horizontal rule character.
func (s *Skin) RuleChar() rune { return s.rule }

// ScrollbarChars returns the track and thumb characters.
func (s *Skin) ScrollbarChars() (track, thumb rune) { return s.track, s.thumb }

// Ellipsis returns the elision marker.
func (s *Skin) Ellipsis() string { return s.ellipsis }

// Border returns the table frame characters.
func (s *Skin) Border() Border { return s.border }

// CodeTheme returns the chroma theme name, or "" when highlighting is off.
func (s *Skin) CodeTheme() string { return s.codeTheme }
