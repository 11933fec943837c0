package style

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidColor is returned when a color spec cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Color is a normalized terminal color: an ANSI index ("0".."255") or a
// "#rrggbb" hex triplet. The zero value means "not set".
type Color string

// NoColor is the unset color.
const NoColor Color = ""

var namedColors = map[string]Color{
	"black":          "0",
	"red":            "1",
	"green":          "2",
	"yellow":         "3",
	"blue":           "4",
	"magenta":        "5",
	"cyan":           "6",
	"white":          "7",
	"gray":           "8",
	"grey":           "8",
	"bright-black":   "8",
	"bright-red":     "9",
	"bright-green":   "10",
	"bright-yellow":  "11",
	"bright-blue":    "12",
	"bright-magenta": "13",
	"bright-cyan":    "14",
	"bright-white":   "15",
	"dark-red":       "88",
	"dark-green":     "22",
	"dark-yellow":    "136",
	"dark-blue":      "18",
	"dark-magenta":   "90",
	"dark-cyan":      "30",
	"dark-grey":      "238",
	"dark-gray":      "238",
}

// IsSet reports whether the color carries a value.
func (c Color) IsSet() bool { return c != NoColor }

// String returns the normalized color code.
func (c Color) String() string { return string(c) }

// IsHex reports whether the color is a #rrggbb triplet.
func (c Color) IsHex() bool { return strings.HasPrefix(string(c), "#") }

// ParseColor normalizes a color spec. Accepted forms:
//
//	red, bright-blue, grey    named colors
//	178, ansi(178)            ANSI 256 palette index
//	#fa0, #ffaa00             hex
//	rgb(255, 170, 0)          decimal triplet
//
// The empty string parses to NoColor.
func ParseColor(spec string) (Color, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if s == "" {
		return NoColor, nil
	}
	s = strings.ReplaceAll(s, "_", "-")
	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	switch {
	case strings.HasPrefix(s, "ansi(") && strings.HasSuffix(s, ")"):
		return parseIndex(spec, s[len("ansi("):len(s)-1])
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseRGB(spec, s[len("rgb("):len(s)-1])
	case strings.HasPrefix(s, "#"):
		return parseHex(spec, s[1:])
	}
	return parseIndex(spec, s)
}

// MustColor is ParseColor for literals known to be valid; it panics otherwise.
func MustColor(spec string) Color {
	c, err := ParseColor(spec)
	if err != nil {
		panic(err)
	}
	return c
}

func parseIndex(spec, s string) (Color, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 255 {
		return NoColor, fmt.Errorf("%w: %q", ErrInvalidColor, spec)
	}
	return Color(strconv.Itoa(n)), nil
}

func parseHex(spec, hex string) (Color, error) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return NoColor, fmt.Errorf("%w: %q", ErrInvalidColor, spec)
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return NoColor, fmt.Errorf("%w: %q", ErrInvalidColor, spec)
	}
	return Color("#" + hex), nil
}

func parseRGB(spec, body string) (Color, error) {
	parts := strings.Split(body, ",")
	if len(parts) != 3 {
		return NoColor, fmt.Errorf("%w: %q", ErrInvalidColor, spec)
	}
	var b strings.Builder
	b.WriteByte('#')
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return NoColor, fmt.Errorf("%w: %q", ErrInvalidColor, spec)
		}
		fmt.Fprintf(&b, "%02x", n)
	}
	return Color(b.String()), nil
}
