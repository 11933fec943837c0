package skin

import (
	"fmt"
	"sort"

	"github.com/shahbajlive/mdskin/internal/style"
)

// DefaultPreset is the preset used when nothing else is configured.
const DefaultPreset = "default"

var presets = map[string]func() *Skin{
	"default": Default,
	"dark":    Default,
	"light":   Light,
	"plain":   Plain,
}

// Preset returns a fresh skin for a registered preset name.
func Preset(name string) (*Skin, error) {
	if name == "" {
		name = DefaultPreset
	}
	build, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return build(), nil
}

// PresetNames lists registered preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func c(spec string) style.Color { return style.MustColor(spec) }

// Default is a dark-terminal skin with gold headers and dim decorations.
func Default() *Skin {
	gold := c("178")
	return New(
		WithName("default"),
		WithStyle(InlineCode, style.New(c("223"), c("236"), 0)),
		WithStyle(CodeBlock, style.New(c("252"), c("235"), 0)),
		WithStyle(Header1, style.New(gold, style.NoColor, style.Bold|style.Underline)),
		WithStyle(Header2, style.New(gold, style.NoColor, style.Bold)),
		WithStyle(Header3, style.New(gold, style.NoColor, 0)),
		WithStyle(Header4, style.New(gold, style.NoColor, style.Italic)),
		WithStyle(Header5, style.New(gold, style.NoColor, style.Italic)),
		WithStyle(Header6, style.New(gold, style.NoColor, style.Italic|style.Faint)),
		WithStyle(Quote, style.New(c("250"), style.NoColor, style.Italic)),
		WithStyle(Rule, style.New(c("240"), style.NoColor, 0)),
		WithStyle(Bold, style.New(style.NoColor, style.NoColor, style.Bold)),
		WithStyle(Italic, style.New(style.NoColor, style.NoColor, style.Italic)),
		WithStyle(Strikethrough, style.New(style.NoColor, style.NoColor, style.Strikethrough)),
		WithStyle(Link, style.New(c("39"), style.NoColor, style.Underline)),
		WithStyle(TableBorder, style.New(c("240"), style.NoColor, 0)),
		WithStyle(ScrollbarTrack, style.New(c("238"), style.NoColor, 0)),
		WithStyle(ScrollbarThumb, style.New(c("250"), style.NoColor, 0)),
		WithStyle(Selection, style.New(style.NoColor, c("238"), style.Bold)),
		WithAlign(Header1, AlignCenter),
		WithBullet(Glyph{Char: '•', Style: style.New(gold, style.NoColor, 0)}),
		WithQuoteMark(Glyph{Char: '▐', Style: style.New(c("244"), style.NoColor, 0)}),
		WithCodeTheme("monokai"),
	)
}

// Light suits terminals with a light background.
func Light() *Skin {
	accent := c("25")
	return New(
		WithName("light"),
		WithStyle(InlineCode, style.New(c("124"), c("255"), 0)),
		WithStyle(CodeBlock, style.New(c("236"), c("254"), 0)),
		WithHeaders(style.New(accent, style.NoColor, style.Bold)),
		WithStyle(Header1, style.New(accent, style.NoColor, style.Bold|style.Underline)),
		WithStyle(Quote, style.New(c("241"), style.NoColor, style.Italic)),
		WithStyle(Rule, style.New(c("249"), style.NoColor, 0)),
		WithStyle(Bold, style.New(style.NoColor, style.NoColor, style.Bold)),
		WithStyle(Italic, style.New(style.NoColor, style.NoColor, style.Italic)),
		WithStyle(Strikethrough, style.New(style.NoColor, style.NoColor, style.Strikethrough)),
		WithStyle(Link, style.New(c("27"), style.NoColor, style.Underline)),
		WithStyle(TableBorder, style.New(c("249"), style.NoColor, 0)),
		WithStyle(ScrollbarTrack, style.New(c("252"), style.NoColor, 0)),
		WithStyle(ScrollbarThumb, style.New(c("243"), style.NoColor, 0)),
		WithStyle(Selection, style.New(style.NoColor, c("153"), 0)),
		WithAlign(Header1, AlignCenter),
		WithBullet(Glyph{Char: '•', Style: style.New(accent, style.NoColor, 0)}),
		WithQuoteMark(Glyph{Char: '▐', Style: style.New(c("249"), style.NoColor, 0)}),
		WithCodeTheme("github"),
	)
}

// Plain uses attributes only and ASCII glyphs, for dumb terminals and pipes.
func Plain() *Skin {
	return New(
		WithName("plain"),
		WithHeaders(style.New(style.NoColor, style.NoColor, style.Bold)),
		WithStyle(Bold, style.New(style.NoColor, style.NoColor, style.Bold)),
		WithStyle(Italic, style.New(style.NoColor, style.NoColor, style.Italic)),
		WithStyle(Strikethrough, style.New(style.NoColor, style.NoColor, style.Strikethrough)),
		WithStyle(Selection, style.New(style.NoColor, style.NoColor, style.Reverse)),
		WithBullet(Glyph{Char: '*'}),
		WithQuoteMark(Glyph{Char: '>'}),
		WithRuleChar('-'),
		WithScrollbarChars('|', '#'),
		WithEllipsis("..."),
		WithBorder(ASCIIBorder),
	)
}
