package skin

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shahbajlive/mdskin/internal/style"
)

func writeSkin(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write skin: %v", err)
	}
	return path
}

func TestLoadTOML(t *testing.T) {
	t.Parallel()

	path := writeSkin(t, "sunset.toml", `
preset = "plain"
code_theme = "dracula"

[styles]
h1 = "yellow on #303030 bold"
inline-code = "223 on 236"

[glyphs]
bullet = "▸ magenta"
rule = "─"
ellipsis = "~"
table_border = "rounded"

[align]
h2 = "right"
`)

	s, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if got := s.Resolve(Header1); got != style.New("3", "#303030", style.Bold) {
		t.Errorf("h1 = %+v", got)
	}
	if got := s.Resolve(InlineCode); got != style.New("223", "236", 0) {
		t.Errorf("inline_code = %+v", got)
	}
	if b := s.Bullet(); b.Char != '▸' || b.Style.Fg != "5" {
		t.Errorf("bullet = %+v", b)
	}
	if s.RuleChar() != '─' || s.Ellipsis() != "~" {
		t.Errorf("glyphs not applied: rule %q ellipsis %q", s.RuleChar(), s.Ellipsis())
	}
	if s.Border() != RoundedBorder {
		t.Errorf("border = %+v, want rounded", s.Border())
	}
	if s.Align(Header2) != AlignRight {
		t.Errorf("h2 align = %v", s.Align(Header2))
	}
	if s.CodeTheme() != "dracula" {
		t.Errorf("code theme = %q", s.CodeTheme())
	}
	// Entries not named in the file keep the preset's values.
	if s.QuoteMark().Char != '>' {
		t.Errorf("quote mark should come from plain preset, got %q", s.QuoteMark().Char)
	}
	if s.Name() != "plain+custom" {
		t.Errorf("name = %q", s.Name())
	}
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	path := writeSkin(t, "ocean.yaml", `
name: ocean
styles:
  quote: "cyan italic"
  link: "blue underline"
glyphs:
  quote_mark: "┃ blue"
`)

	s, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if s.Name() != "ocean" {
		t.Errorf("name = %q", s.Name())
	}
	if got := s.Resolve(Quote); got != style.New("6", style.NoColor, style.Italic) {
		t.Errorf("quote = %+v", got)
	}
	if q := s.QuoteMark(); q.Char != '┃' || q.Style.Fg != "4" {
		t.Errorf("quote mark = %+v", q)
	}
}

func TestLoadFailsClosedOnBadEntries(t *testing.T) {
	t.Parallel()

	path := writeSkin(t, "broken.toml", `
preset = "default"

[styles]
h1 = "red sparkly"
sidebar = "blue"
bold = "bold"

[glyphs]
bullet = "ab"
sparkle = "*"

[align]
h1 = "justify"
`)

	s, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not abort on bad entries: %v", err)
	}
	if len(warnings) != 5 {
		t.Fatalf("expected 5 warnings, got %d: %v", len(warnings), warnings)
	}
	for _, w := range warnings {
		if !errors.Is(w, ErrUnresolvableStyle) {
			t.Errorf("warning %v does not wrap ErrUnresolvableStyle", w)
		}
	}
	if got, want := s.Resolve(Header1), Default().Resolve(Header1); got != want {
		t.Errorf("bad h1 entry should keep preset style %+v, got %+v", want, got)
	}
	if s.Align(Header1) != AlignCenter {
		t.Errorf("bad align entry should keep preset alignment")
	}
	if s.Bullet().Char != '•' {
		t.Errorf("bad bullet should keep preset glyph, got %q", s.Bullet().Char)
	}
}

func TestLoadUnknownPresetFallsBack(t *testing.T) {
	t.Parallel()

	s, warnings, err := Parse([]byte(`preset = "neon"`), FormatTOML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(warnings) != 1 || !errors.Is(warnings[0], ErrUnknownPreset) {
		t.Fatalf("warnings = %v, want one ErrUnknownPreset", warnings)
	}
	if s.Resolve(Header2) != Default().Resolve(Header2) {
		t.Error("unknown preset should fall back to the default skin")
	}
}

func TestLoadSyntaxErrorAborts(t *testing.T) {
	t.Parallel()

	if _, _, err := Parse([]byte("[styles\nh1 = "), FormatTOML); err == nil {
		t.Error("expected a toml syntax error")
	}
	if _, _, err := Parse([]byte("styles: [unclosed"), FormatYAML); err == nil {
		t.Error("expected a yaml syntax error")
	}
	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	t.Parallel()

	s, warnings, err := Parse(nil, FormatYAML)
	if err != nil || len(warnings) != 0 {
		t.Fatalf("Parse(empty) = %v, %v", warnings, err)
	}
	if s.Resolve(Header1) != Default().Resolve(Header1) {
		t.Error("empty file should produce the default skin")
	}
}

func TestFormatForPath(t *testing.T) {
	t.Parallel()

	if FormatForPath("a.yml") != FormatYAML || FormatForPath("b.YAML") != FormatYAML {
		t.Error("yaml extensions not detected")
	}
	if FormatForPath("c.toml") != FormatTOML || FormatForPath("d") != FormatTOML {
		t.Error("toml should be the default")
	}
}

func TestLoadRejectsControlCharacterGlyphs(t *testing.T) {
	t.Parallel()

	path := writeSkin(t, "ctrl.toml", `
preset = "plain"

[glyphs]
ellipsis = "a\nb"
bullet = "\u001b"
rule = "\t"
`)

	s, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %d: %v", len(warnings), warnings)
	}
	for _, w := range warnings {
		if !errors.Is(w, ErrUnresolvableStyle) {
			t.Errorf("warning %v does not wrap ErrUnresolvableStyle", w)
		}
	}
	if s.Ellipsis() != "..." || s.Bullet().Char != '*' || s.RuleChar() != '-' {
		t.Errorf("control glyphs replaced plain ones: %q %q %q", s.Ellipsis(), s.Bullet().Char, s.RuleChar())
	}

	if got := New(WithEllipsis("x\ry")).Ellipsis(); got != "…" {
		t.Errorf("WithEllipsis accepted a control character: %q", got)
	}
}
