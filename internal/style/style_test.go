package style

import (
	"errors"
	"testing"
)

func TestParseColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    Color
		wantErr bool
	}{
		{"empty is unset", "", NoColor, false},
		{"named", "red", "1", false},
		{"named bright", "Bright-Blue", "12", false},
		{"underscore alias", "bright_white", "15", false},
		{"grey alias", "grey", "8", false},
		{"ansi index", "178", "178", false},
		{"ansi call form", "ansi(178)", "178", false},
		{"short hex", "#fa0", "#ffaa00", false},
		{"long hex upper", "#FFAA00", "#ffaa00", false},
		{"rgb triplet", "rgb(255,170,0)", "#ffaa00", false},
		{"index out of range", "256", NoColor, true},
		{"negative index", "-1", NoColor, true},
		{"bad hex", "#zzzzzz", NoColor, true},
		{"bad hex length", "#abcd", NoColor, true},
		{"unknown name", "chartreuse", NoColor, true},
		{"rgb out of range", "rgb(300,0,0)", NoColor, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Fatalf("ParseColor(%q) error = %v, want ErrInvalidColor", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestOverrideKeepsUnsetFields(t *testing.T) {
	t.Parallel()

	quote := New("7", "236", Italic)
	bold := New(NoColor, NoColor, Bold)

	got := quote.Override(bold)
	if got.Fg != "7" || got.Bg != "236" {
		t.Errorf("enclosing colors should persist, got fg=%q bg=%q", got.Fg, got.Bg)
	}
	if !got.Attrs.Has(Bold | Italic) {
		t.Errorf("attributes should accumulate, got %v", got.Attrs)
	}

	red := New("1", NoColor, 0)
	got = quote.Override(red)
	if got.Fg != "1" {
		t.Errorf("explicit foreground should win, got %q", got.Fg)
	}
	if got.Bg != "236" {
		t.Errorf("background should persist, got %q", got.Bg)
	}
}

func TestOverrideDoesNotMutate(t *testing.T) {
	t.Parallel()

	base := New("2", NoColor, 0)
	_ = base.Override(New("3", "4", Bold))
	if base != New("2", NoColor, 0) {
		t.Errorf("Override mutated its receiver: %+v", base)
	}
}

func TestParseSpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    string
		want    Style
		wantErr bool
	}{
		{"empty", "", Style{}, false},
		{"fg only", "yellow", New("3", NoColor, 0), false},
		{"fg bg attrs", "yellow on #202020 bold italic", New("3", "#202020", Bold|Italic), false},
		{"attrs first", "underline magenta", New("5", NoColor, Underline), false},
		{"bg only", "on 236", New(NoColor, "236", 0), false},
		{"aliases", "dim crossed-out inverse", New(NoColor, NoColor, Faint|Strikethrough|Reverse), false},
		{"none is a no-op", "none", Style{}, false},
		{"two foregrounds", "red blue", Style{}, true},
		{"dangling on", "red on", Style{}, true},
		{"bad word", "red sparkly", Style{}, true},
		{"bad background", "red on nope", Style{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSpec(tt.spec)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSpec) {
					t.Fatalf("ParseSpec(%q) error = %v, want ErrInvalidSpec", tt.spec, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSpec(%q) unexpected error: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("ParseSpec(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	t.Parallel()

	in := New("3", "#202020", Bold|Underline)
	out, err := ParseSpec(in.String())
	if err != nil {
		t.Fatalf("ParseSpec(%q): %v", in.String(), err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}
