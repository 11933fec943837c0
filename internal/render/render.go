// Package render turns styled lines into terminal strings.
package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/shahbajlive/mdskin/internal/composite"
	"github.com/shahbajlive/mdskin/internal/skin"
	"github.com/shahbajlive/mdskin/internal/style"
	"github.com/shahbajlive/mdskin/internal/styled"
	"github.com/shahbajlive/mdskin/internal/viewport"
)

// Renderer emits lines through a lipgloss renderer bound to one output.
// It is not safe for concurrent use.
type Renderer struct {
	lg    *lipgloss.Renderer
	skin  *skin.Skin
	cache map[style.Style]lipgloss.Style
}

// Option configures a Renderer.
type Option func(*options)

type options struct {
	profile *termenv.Profile
}

// WithProfile forces a color profile instead of detecting one from the
// output. termenv.Ascii strips all styling.
func WithProfile(p termenv.Profile) Option {
	return func(o *options) { o.profile = &p }
}

// New returns a renderer for output written to w. A nil skin means the
// default preset.
func New(w io.Writer, s *skin.Skin, opts ...Option) *Renderer {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	var tOpts []termenv.OutputOption
	if o.profile != nil {
		tOpts = append(tOpts, termenv.WithProfile(*o.profile))
	}
	if s == nil {
		s = skin.Default()
	}
	return &Renderer{
		lg:    lipgloss.NewRenderer(w, tOpts...),
		skin:  s,
		cache: make(map[style.Style]lipgloss.Style),
	}
}

// Profile returns the color profile in use.
func (r *Renderer) Profile() termenv.Profile { return r.lg.ColorProfile() }

// Skin returns the skin used for fills and the scrollbar.
func (r *Renderer) Skin() *skin.Skin { return r.skin }

// SetSkin swaps the skin, as after a reload.
func (r *Renderer) SetSkin(s *skin.Skin) {
	if s != nil {
		r.skin = s
	}
}

func (r *Renderer) style(st style.Style) lipgloss.Style {
	if ls, ok := r.cache[st]; ok {
		return ls
	}
	ls := r.lg.NewStyle()
	if st.Fg.IsSet() {
		ls = ls.Foreground(lipgloss.Color(st.Fg.String()))
	}
	if st.Bg.IsSet() {
		ls = ls.Background(lipgloss.Color(st.Bg.String()))
	}
	a := st.Attrs
	ls = ls.Bold(a.Has(style.Bold)).
		Italic(a.Has(style.Italic)).
		Underline(a.Has(style.Underline)).
		Strikethrough(a.Has(style.Strikethrough)).
		Faint(a.Has(style.Faint)).
		Reverse(a.Has(style.Reverse)).
		Blink(a.Has(style.Blink))
	r.cache[st] = ls
	return ls
}

// Token renders one token.
func (r *Renderer) Token(t styled.Token) string {
	if t.Text == "" {
		return ""
	}
	if t.Style.IsZero() {
		return t.Text
	}
	return r.style(t.Style).Render(t.Text)
}

// Line renders l. When l.Fill is set the line is padded to width with the
// background of its kind; otherwise it is left unpadded.
func (r *Renderer) Line(l styled.Line, width int) string {
	var b strings.Builder
	for _, t := range l.Tokens {
		b.WriteString(r.Token(t))
	}
	if l.Fill {
		if free := width - l.Width(); free > 0 {
			fill := r.skin.Resolve(l.Kind).BackgroundOnly()
			b.WriteString(r.Token(styled.Tok(strings.Repeat(" ", free), fill)))
		}
	}
	return b.String()
}

// Lines renders each line at width.
func (r *Renderer) Lines(lines []styled.Line, width int) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = r.Line(l, width)
	}
	return out
}

// Composite renders c as newline-separated text without a trailing newline.
func (r *Renderer) Composite(c *composite.Composite) string {
	return strings.Join(r.Lines(c.Lines, c.Width), "\n")
}

// WriteComposite writes c followed by a newline.
func (r *Renderer) WriteComposite(w io.Writer, c *composite.Composite) error {
	_, err := io.WriteString(w, r.Composite(c)+"\n")
	return err
}

// Page renders the window of lines selected by view, exactly view.Height()
// rows. Every row is padded to fill the text area so stale screen content
// is overwritten. When the content overflows and scrollbar is set, the
// last of the width columns holds the scrollbar and the text area is one
// column narrower; callers lay content out at TextWidth.
func (r *Renderer) Page(lines []styled.Line, width int, view viewport.State, scrollbar bool) []string {
	height := view.Height()
	var track []bool
	if scrollbar {
		track = viewport.Track(len(lines), height, view.Offset())
	}
	textWidth := width
	if track != nil {
		textWidth--
	}
	trackCh, thumbCh := r.skin.ScrollbarChars()
	trackTok := styled.Tok(string(trackCh), r.skin.Resolve(skin.ScrollbarTrack))
	thumbTok := styled.Tok(string(thumbCh), r.skin.Resolve(skin.ScrollbarThumb))

	out := make([]string, height)
	for row := range height {
		var l styled.Line
		if i := view.Offset() + row; i < len(lines) {
			l = lines[i]
		}
		s := r.Line(l, textWidth)
		if !l.Fill {
			if free := textWidth - l.Width(); free > 0 {
				s += strings.Repeat(" ", free)
			}
		}
		if track != nil {
			if track[row] {
				s += r.Token(thumbTok)
			} else {
				s += r.Token(trackTok)
			}
		}
		out[row] = s
	}
	return out
}

// TextWidth is the width available to content in a Page of width columns
// showing contentLen lines in height rows.
func TextWidth(width, contentLen, height int, scrollbar bool) int {
	if scrollbar && contentLen > height && width > 1 {
		return width - 1
	}
	return width
}

// Width measures a rendered string, ignoring escape sequences.
func Width(s string) int { return ansi.StringWidth(s) }

// Truncate cuts a rendered string to width columns, keeping escape
// sequences intact and ending with tail when cut.
func Truncate(s string, width int, tail string) string {
	return ansi.Truncate(s, width, tail)
}
