package skin

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"

	"github.com/shahbajlive/mdskin/internal/style"
)

func init() {
	for name, cfg := range map[string]ansi.StyleConfig{
		"glamour-dark":  glamourstyles.DarkStyleConfig,
		"glamour-light": glamourstyles.LightStyleConfig,
		"dracula":       glamourstyles.DraculaStyleConfig,
		"tokyo-night":   glamourstyles.TokyoNightStyleConfig,
		"pink":          glamourstyles.PinkStyleConfig,
		"ascii":         glamourstyles.ASCIIStyleConfig,
		"notty":         glamourstyles.NoTTYStyleConfig,
	} {
		name, cfg := name, cfg
		presets[name] = func() *Skin { return FromGlamour(name, cfg) }
	}
}

// FromGlamour translates a glamour style configuration into a skin. Colors
// glamour writes that do not parse are dropped, so the affected kind keeps
// whatever the rest of the translation gives it.
func FromGlamour(name string, cfg ansi.StyleConfig) *Skin {
	normal := primitive(cfg.Document.StylePrimitive).
		Override(primitive(cfg.Paragraph.StylePrimitive)).
		Override(primitive(cfg.Text))
	heading := primitive(cfg.Heading.StylePrimitive)
	levels := []ansi.StyleBlock{cfg.H1, cfg.H2, cfg.H3, cfg.H4, cfg.H5, cfg.H6}

	opts := []Option{
		WithName(name),
		WithStyle(Normal, normal),
		WithStyle(InlineCode, primitive(cfg.Code.StylePrimitive)),
		WithStyle(CodeBlock, primitive(cfg.CodeBlock.StylePrimitive)),
		WithStyle(NumberedItem, primitive(cfg.Enumeration)),
		WithStyle(BulletItem, primitive(cfg.Item)),
		WithStyle(Quote, primitive(cfg.BlockQuote.StylePrimitive)),
		WithStyle(Rule, primitive(cfg.HorizontalRule)),
		WithStyle(Bold, primitive(cfg.Strong)),
		WithStyle(Italic, primitive(cfg.Emph)),
		WithStyle(Strikethrough, primitive(cfg.Strikethrough)),
		WithStyle(Link, primitive(cfg.Link).Override(primitive(cfg.LinkText))),
		WithStyle(TableCell, primitive(cfg.Table.StylePrimitive)),
		WithStyle(TableBorder, primitive(cfg.Table.StylePrimitive)),
		WithStyle(Selection, style.New(style.NoColor, style.NoColor, style.Reverse)),
		WithCodeTheme(cfg.CodeBlock.Theme),
	}
	for i, lvl := range levels {
		opts = append(opts, WithStyle(HeaderKind(i+1), heading.Override(primitive(lvl.StylePrimitive))))
	}
	if r, ok := firstGlyph(cfg.Item.BlockPrefix); ok {
		opts = append(opts, WithBullet(Glyph{Char: r}))
	}
	if cfg.BlockQuote.IndentToken != nil {
		if r, ok := firstGlyph(*cfg.BlockQuote.IndentToken); ok {
			opts = append(opts, WithQuoteMark(Glyph{Char: r}))
		}
	}
	if r, ok := firstGlyph(cfg.HorizontalRule.Format); ok {
		opts = append(opts, WithRuleChar(r))
	}
	if isASCIIConfig(cfg) {
		opts = append(opts, WithBullet(Glyph{Char: '*'}), WithScrollbarChars('|', '#'), WithEllipsis("..."), WithBorder(ASCIIBorder))
	}
	return New(opts...)
}

func primitive(p ansi.StylePrimitive) style.Style {
	var st style.Style
	if p.Color != nil {
		if col, err := style.ParseColor(*p.Color); err == nil {
			st.Fg = col
		}
	}
	if p.BackgroundColor != nil {
		if col, err := style.ParseColor(*p.BackgroundColor); err == nil {
			st.Bg = col
		}
	}
	flags := []struct {
		on   *bool
		attr style.Attr
	}{
		{p.Bold, style.Bold},
		{p.Italic, style.Italic},
		{p.Underline, style.Underline},
		{p.CrossedOut, style.Strikethrough},
		{p.Faint, style.Faint},
		{p.Inverse, style.Reverse},
		{p.Blink, style.Blink},
	}
	for _, f := range flags {
		if f.on != nil && *f.on {
			st.Attrs |= f.attr
		}
	}
	return st
}

// firstGlyph returns the first printable, non-space rune of s.
func firstGlyph(s string) (rune, bool) {
	for _, r := range s {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			continue
		}
		return r, true
	}
	return 0, false
}

// isASCIIConfig reports whether cfg draws quotes with ASCII only; glamour's
// ascii and notty styles still use a unicode bullet.
func isASCIIConfig(cfg ansi.StyleConfig) bool {
	tok := cfg.BlockQuote.IndentToken
	return tok != nil && strings.IndexFunc(*tok, func(r rune) bool { return r > unicode.MaxASCII }) < 0
}
