package skin

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/shahbajlive/mdskin/internal/style"
)

// Format is the encoding of a skin file.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatForPath picks the format from a file extension; TOML is the default.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// File is the on-disk shape of a skin:
//
//	preset = "default"
//	code_theme = "dracula"
//
//	[styles]
//	h1 = "yellow on #303030 bold"
//	inline_code = "223 on 236"
//
//	[glyphs]
//	bullet = "▸ yellow"
//	rule = "─"
//	ellipsis = "…"
//	table_border = "rounded"
//
//	[align]
//	h1 = "center"
type File struct {
	Name      string            `toml:"name" yaml:"name"`
	Preset    string            `toml:"preset" yaml:"preset"`
	CodeTheme *string           `toml:"code_theme" yaml:"code_theme"`
	Styles    map[string]string `toml:"styles" yaml:"styles"`
	Glyphs    map[string]string `toml:"glyphs" yaml:"glyphs"`
	Align     map[string]string `toml:"align" yaml:"align"`
}

// Load reads a skin file. See Parse for the meaning of the return values.
func Load(path string) (*Skin, []error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading skin: %w", err)
	}
	s, warnings, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.name == "custom" {
		s.name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, warnings, nil
}

// Parse decodes a skin file. A decode failure is returned as err and no skin
// is produced. Individual entries that cannot be resolved never abort
// loading: they are skipped, leaving the preset's (or the normal) style in
// place, and each is reported in warnings wrapping ErrUnresolvableStyle.
func Parse(data []byte, format Format) (*Skin, []error, error) {
	var f File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("parsing skin yaml: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, nil, fmt.Errorf("parsing skin toml: %w", err)
		}
	}
	s, warnings := f.Build()
	return s, warnings, nil
}

// Build turns a decoded file into a skin, collecting per-entry warnings.
func (f File) Build() (*Skin, []error) {
	var warnings []error

	base, err := Preset(f.Preset)
	if err != nil {
		warnings = append(warnings, fmt.Errorf("%w: %w", ErrUnresolvableStyle, err))
		base = Default()
	}

	var opts []Option
	if f.Name != "" {
		opts = append(opts, WithName(f.Name))
	} else if f.Preset == "" {
		opts = append(opts, WithName("custom"))
	} else {
		opts = append(opts, WithName(base.Name()+"+custom"))
	}
	if f.CodeTheme != nil {
		opts = append(opts, WithCodeTheme(*f.CodeTheme))
	}

	for _, key := range sortedKeys(f.Styles) {
		kind, ok := ParseKind(key)
		if !ok {
			warnings = append(warnings, fmt.Errorf("%w: unknown element kind %q", ErrUnresolvableStyle, key))
			continue
		}
		st, err := style.ParseSpec(f.Styles[key])
		if err != nil {
			warnings = append(warnings, fmt.Errorf("%w: styles.%s: %w", ErrUnresolvableStyle, key, err))
			continue
		}
		opts = append(opts, WithStyle(kind, st))
	}

	for _, key := range sortedKeys(f.Glyphs) {
		opt, err := glyphOption(key, f.Glyphs[key])
		if err != nil {
			warnings = append(warnings, fmt.Errorf("%w: glyphs.%s: %w", ErrUnresolvableStyle, key, err))
			continue
		}
		opts = append(opts, opt)
	}

	for _, key := range sortedKeys(f.Align) {
		kind, ok := ParseKind(key)
		if !ok {
			warnings = append(warnings, fmt.Errorf("%w: unknown element kind %q", ErrUnresolvableStyle, key))
			continue
		}
		a, ok := ParseAlign(f.Align[key])
		if !ok {
			warnings = append(warnings, fmt.Errorf("%w: align.%s: unknown alignment %q", ErrUnresolvableStyle, key, f.Align[key]))
			continue
		}
		opts = append(opts, WithAlign(kind, a))
	}

	return base.Derive(opts...), warnings
}

func glyphOption(key, value string) (Option, error) {
	switch strings.ReplaceAll(strings.ToLower(key), "-", "_") {
	case "ellipsis":
		if strings.TrimSpace(value) == "" {
			return nil, errors.New("empty ellipsis")
		}
		if hasControl(value) {
			return nil, fmt.Errorf("ellipsis %q contains control characters", value)
		}
		return WithEllipsis(value), nil
	case "bullet":
		g, err := parseGlyph(value)
		if err != nil {
			return nil, err
		}
		return WithBullet(g), nil
	case "quote", "quote_mark":
		g, err := parseGlyph(value)
		if err != nil {
			return nil, err
		}
		return WithQuoteMark(g), nil
	case "rule":
		r, err := singleRune(value)
		if err != nil {
			return nil, err
		}
		return WithRuleChar(r), nil
	case "table_border", "border":
		b, ok := borders[strings.ToLower(strings.TrimSpace(value))]
		if !ok {
			return nil, fmt.Errorf("unknown border %q", value)
		}
		return WithBorder(b), nil
	case "scrollbar_track", "track":
		r, err := singleRune(value)
		if err != nil {
			return nil, err
		}
		return func(s *Skin) { s.track = r }, nil
	case "scrollbar_thumb", "thumb":
		r, err := singleRune(value)
		if err != nil {
			return nil, err
		}
		return func(s *Skin) { s.thumb = r }, nil
	}
	return nil, errors.New("unknown glyph")
}

// parseGlyph reads "<char> [style spec]", e.g. "▸ yellow bold".
func parseGlyph(value string) (Glyph, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Glyph{}, errors.New("empty glyph")
	}
	r, size := utf8.DecodeRuneInString(value)
	if unicode.IsControl(r) {
		return Glyph{}, fmt.Errorf("glyph %q is a control character", value)
	}
	rest := value[size:]
	if rest != "" && !strings.HasPrefix(rest, " ") {
		return Glyph{}, fmt.Errorf("glyph %q must be a single character", value)
	}
	st, err := style.ParseSpec(rest)
	if err != nil {
		return Glyph{}, err
	}
	return Glyph{Char: r, Style: st}, nil
}

func singleRune(value string) (rune, error) {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("%q must be a single character", value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	if unicode.IsControl(r) {
		return 0, fmt.Errorf("%q is a control character", value)
	}
	return r, nil
}

// hasControl reports whether s holds a control character such as a newline,
// which would break the one-row-per-line layout.
func hasControl(s string) bool {
	return strings.ContainsFunc(s, unicode.IsControl)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
