package skin

import (
	"errors"
	"testing"

	glamourstyles "github.com/charmbracelet/glamour/styles"

	"github.com/shahbajlive/mdskin/internal/style"
)

func TestEveryKindResolves(t *testing.T) {
	t.Parallel()

	for _, name := range PresetNames() {
		s, err := Preset(name)
		if err != nil {
			t.Fatalf("Preset(%q): %v", name, err)
		}
		for _, k := range Kinds() {
			_ = s.Resolve(k)
			if k.String() == "unknown" {
				t.Errorf("kind %d has no name", k)
			}
		}
	}
}

func TestResolveFallsBackToNormal(t *testing.T) {
	t.Parallel()

	normal := style.New("7", "0", 0)
	s := New(WithStyle(Normal, normal), WithStyle(Bold, style.New(style.NoColor, style.NoColor, style.Bold)))

	if got := s.Resolve(Quote); got != normal {
		t.Errorf("Resolve(Quote) = %+v, want normal %+v", got, normal)
	}
	if got := s.Resolve(Kind(200)); got != normal {
		t.Errorf("Resolve(invalid) = %+v, want normal %+v", got, normal)
	}
	if _, ok := s.Explicit(Quote); ok {
		t.Error("Explicit(Quote) should report unset")
	}
}

func TestComposePartialOverride(t *testing.T) {
	t.Parallel()

	s := New(
		WithStyle(Quote, style.New("250", "236", style.Italic)),
		WithStyle(Bold, style.New(style.NoColor, style.NoColor, style.Bold)),
		WithStyle(Link, style.New("39", style.NoColor, style.Underline)),
	)

	got := s.Compose(Quote, Bold)
	want := style.New("250", "236", style.Italic|style.Bold)
	if got != want {
		t.Errorf("Compose(Quote, Bold) = %+v, want %+v", got, want)
	}

	got = s.Compose(Quote, Link)
	want = style.New("39", "236", style.Italic|style.Underline)
	if got != want {
		t.Errorf("Compose(Quote, Link) = %+v, want %+v", got, want)
	}

	// An inline kind with no entry leaves the outer style untouched.
	if got := s.Compose(Quote, Strikethrough); got != s.Resolve(Quote) {
		t.Errorf("Compose with unset inner = %+v, want %+v", got, s.Resolve(Quote))
	}
}

func TestDeriveDoesNotMutateBase(t *testing.T) {
	t.Parallel()

	base := Default()
	before := base.Resolve(Header1)
	derived := base.Derive(WithStyle(Header1, style.New("1", style.NoColor, 0)), WithRuleChar('='))

	if base.Resolve(Header1) != before {
		t.Error("Derive mutated the base skin's styles")
	}
	if base.RuleChar() == '=' {
		t.Error("Derive mutated the base skin's glyphs")
	}
	if derived.Resolve(Header1).Fg != "1" || derived.RuleChar() != '=' {
		t.Error("Derive did not apply options")
	}
}

func TestKindNames(t *testing.T) {
	t.Parallel()

	for _, k := range Kinds() {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", k.String(), got, ok, k)
		}
	}

	aliases := map[string]Kind{
		"Inline-Code": InlineCode,
		"blockquote":  Quote,
		"strong":      Bold,
		"header3":     Header3,
	}
	for name, want := range aliases {
		if got, ok := ParseKind(name); !ok || got != want {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", name, got, ok, want)
		}
	}
	if _, ok := ParseKind("sidebar"); ok {
		t.Error("ParseKind should reject unknown names")
	}
}

func TestHeaderKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level int
		want  Kind
	}{
		{-3, Header1},
		{1, Header1},
		{4, Header4},
		{6, Header6},
		{9, Header6},
	}
	for _, tt := range tests {
		if got := HeaderKind(tt.level); got != tt.want {
			t.Errorf("HeaderKind(%d) = %v, want %v", tt.level, got, tt.want)
		}
		if got := tt.want.HeaderLevel(); got < 1 || got > MaxHeaderLevel {
			t.Errorf("%v.HeaderLevel() = %d", tt.want, got)
		}
	}
	if Quote.HeaderLevel() != 0 {
		t.Error("non-header kinds should report level 0")
	}
}

func TestPresetUnknown(t *testing.T) {
	t.Parallel()

	if _, err := Preset("neon"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("Preset(neon) error = %v, want ErrUnknownPreset", err)
	}
	s, err := Preset("")
	if err != nil {
		t.Fatalf("Preset(\"\") error = %v", err)
	}
	if s.Name() != DefaultPreset {
		t.Errorf("empty preset name should give %q, got %q", DefaultPreset, s.Name())
	}
}

func TestPlainPresetIsColorless(t *testing.T) {
	t.Parallel()

	s := Plain()
	for _, k := range Kinds() {
		st := s.Resolve(k)
		if st.Fg.IsSet() || st.Bg.IsSet() {
			t.Errorf("plain skin sets a color on %v: %+v", k, st)
		}
	}
	if s.Border() != ASCIIBorder {
		t.Errorf("plain skin should draw ASCII tables")
	}
	if s.Ellipsis() != "..." || s.Bullet().Char != '*' {
		t.Errorf("plain skin should use ASCII glyphs, got bullet %q ellipsis %q", s.Bullet().Char, s.Ellipsis())
	}
}

func TestFromGlamourDark(t *testing.T) {
	t.Parallel()

	s := FromGlamour("glamour-dark", glamourstyles.DarkStyleConfig)

	h1 := s.Resolve(Header1)
	if !h1.HasBackground() {
		t.Errorf("glamour dark h1 should carry a background, got %+v", h1)
	}
	if !h1.Attrs.Has(style.Bold) {
		t.Errorf("glamour dark h1 should be bold, got %+v", h1)
	}
	if s.Bullet().Char != '•' {
		t.Errorf("bullet = %q, want •", s.Bullet().Char)
	}
	if s.RuleChar() != '-' {
		t.Errorf("rule char = %q, want -", s.RuleChar())
	}
	if s.QuoteMark().Char != '│' {
		t.Errorf("quote mark = %q, want │", s.QuoteMark().Char)
	}
	if got := s.Resolve(Bold); !got.Attrs.Has(style.Bold) {
		t.Errorf("strong should map to bold, got %+v", got)
	}
}

func TestFromGlamourASCII(t *testing.T) {
	t.Parallel()

	s, err := Preset("ascii")
	if err != nil {
		t.Fatal(err)
	}
	track, thumb := s.ScrollbarChars()
	if track > 127 || thumb > 127 {
		t.Errorf("ascii preset should use ASCII scrollbar chars, got %q %q", track, thumb)
	}
	if s.Ellipsis() != "..." {
		t.Errorf("ascii preset ellipsis = %q", s.Ellipsis())
	}
}

func TestParseAlign(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Align{"left": AlignLeft, "Centre": AlignCenter, "right": AlignRight, "": AlignLeft} {
		got, ok := ParseAlign(in)
		if !ok || got != want {
			t.Errorf("ParseAlign(%q) = %v, %v; want %v", in, got, ok, want)
		}
	}
	if _, ok := ParseAlign("justify"); ok {
		t.Error("ParseAlign should reject justify")
	}
}
