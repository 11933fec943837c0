package style

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSpec is returned when a style spec cannot be parsed.
var ErrInvalidSpec = errors.New("invalid style spec")

var attrWords = map[string]Attr{
	"bold":          Bold,
	"b":             Bold,
	"italic":        Italic,
	"i":             Italic,
	"underline":     Underline,
	"underlined":    Underline,
	"u":             Underline,
	"strikethrough": Strikethrough,
	"strike":        Strikethrough,
	"crossed-out":   Strikethrough,
	"crossedout":    Strikethrough,
	"faint":         Faint,
	"dim":           Faint,
	"reverse":       Reverse,
	"inverse":       Reverse,
	"blink":         Blink,
}

// ParseSpec parses a declarative style spec such as
//
//	yellow on #202020 bold italic
//
// The first color word is the foreground, the word after "on" is the
// background, and attribute words may appear anywhere. "none" and "default"
// are accepted as no-ops so a spec can explicitly clear an entry.
func ParseSpec(spec string) (Style, error) {
	var st Style
	fields := strings.Fields(strings.ToLower(spec))
	for i := 0; i < len(fields); i++ {
		word := fields[i]
		switch word {
		case "none", "default", "-":
			continue
		case "on":
			if i+1 >= len(fields) {
				return Style{}, fmt.Errorf("%w: %q: missing background after \"on\"", ErrInvalidSpec, spec)
			}
			i++
			bg, err := ParseColor(fields[i])
			if err != nil {
				return Style{}, fmt.Errorf("%w: %q: %w", ErrInvalidSpec, spec, err)
			}
			st.Bg = bg
			continue
		}
		if a, ok := attrWords[word]; ok {
			st.Attrs |= a
			continue
		}
		c, err := ParseColor(word)
		if err != nil {
			return Style{}, fmt.Errorf("%w: %q: unknown word %q", ErrInvalidSpec, spec, word)
		}
		if st.Fg.IsSet() {
			return Style{}, fmt.Errorf("%w: %q: more than one foreground color", ErrInvalidSpec, spec)
		}
		st.Fg = c
	}
	return st, nil
}
