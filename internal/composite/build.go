package composite

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shahbajlive/mdskin/internal/doc"
	"github.com/shahbajlive/mdskin/internal/skin"
	"github.com/shahbajlive/mdskin/internal/style"
	"github.com/shahbajlive/mdskin/internal/styled"
	"github.com/shahbajlive/mdskin/internal/wrap"
)

// DefaultTabWidth is the tab stop used in code blocks.
const DefaultTabWidth = 4

// Builder lays documents out. The zero value is not usable; use NewBuilder.
type Builder struct {
	Logger *slog.Logger

	tabWidth  int
	highlight bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for build diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.Logger = l }
}

// WithTabWidth sets the tab stop for code blocks.
func WithTabWidth(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.tabWidth = n
		}
	}
}

// WithHighlight turns code highlighting on or off. It is on by default and
// only takes effect when the skin names a code theme.
func WithHighlight(on bool) Option {
	return func(b *Builder) { b.highlight = on }
}

// NewBuilder returns a builder with default settings.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{tabWidth: DefaultTabWidth, highlight: true}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) loggerSafe() *slog.Logger {
	if b != nil && b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

// Build lays d out at width with the default builder.
func Build(d doc.Document, s *skin.Skin, width int) (*Composite, error) {
	return NewBuilder().Build(d, s, width)
}

// Build lays d out at width. A nil skin means the default preset.
//
// Top-level blocks are separated by one blank line. An element that cannot
// be laid out (a ragged table, a nil block) becomes a single marker line; the
// composite is still returned, together with every such error joined and
// wrapping ErrMalformedDocument. A width below one returns
// wrap.ErrInvalidWidth and no composite.
func (b *Builder) Build(d doc.Document, s *skin.Skin, width int) (*Composite, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: %d", wrap.ErrInvalidWidth, width)
	}
	if s == nil {
		s = skin.Default()
	}
	r := &run{b: b, skin: s}
	c := &Composite{
		Width:   width,
		skin:    s,
		source:  &Source{Document: d, Skin: s},
		builder: b,
	}
	for i, blk := range d.Blocks {
		r.index = i
		if i > 0 {
			c.Lines = append(c.Lines, Line{Kind: skin.Normal})
		}
		start := len(c.Lines)
		c.Lines = append(c.Lines, r.block(blk, width, skin.Normal)...)
		span := Span{Start: start, End: len(c.Lines), Kind: blockKind(blk)}
		if h, ok := blk.(doc.Header); ok {
			span.Title = doc.PlainText(h.Inlines)
			span.Level = span.Kind.HeaderLevel()
		}
		c.Spans = append(c.Spans, span)
	}
	if len(r.errs) > 0 {
		b.loggerSafe().Debug("document built with errors",
			"width", width,
			"errors", len(r.errs),
		)
	}
	return c, errors.Join(r.errs...)
}

func blockKind(blk doc.Block) skin.Kind {
	switch v := blk.(type) {
	case doc.Header:
		return skin.HeaderKind(v.Level)
	case doc.List:
		if v.Ordered {
			return skin.NumberedItem
		}
		return skin.BulletItem
	case doc.Quote:
		return skin.Quote
	case doc.CodeBlock:
		return skin.CodeBlock
	case doc.Rule:
		return skin.Rule
	case doc.Table:
		return skin.TableCell
	}
	return skin.Normal
}

// run holds the state of one Build call.
type run struct {
	b     *Builder
	skin  *skin.Skin
	index int
	errs  []error
}

// report records a malformed element of the current block.
func (r *run) report(msg string) {
	r.errs = append(r.errs, fmt.Errorf("%w: block %d: %s", ErrMalformedDocument, r.index+1, msg))
	r.b.loggerSafe().Debug("malformed element", "block", r.index+1, "reason", msg)
}

func (r *run) fail(width int, format string, args ...any) []Line {
	msg := fmt.Sprintf(format, args...)
	r.report(msg)
	text := truncate("[malformed: "+msg+"]", width, r.skin.Ellipsis())
	return []Line{{Tokens: []Token{styled.Tok(text, r.skin.Resolve(skin.Normal))}, Kind: skin.Normal}}
}

// block lays out one block at width. ambient is the kind of the enclosing
// container; paragraphs take its style.
func (r *run) block(blk doc.Block, width int, ambient skin.Kind) []Line {
	switch v := blk.(type) {
	case doc.Paragraph:
		return r.paragraph(v.Inlines, width, ambient)
	case doc.Header:
		return r.header(v, width)
	case doc.List:
		return r.list(v, width)
	case doc.Quote:
		return r.quote(v, width)
	case doc.CodeBlock:
		return r.code(v, width)
	case doc.Rule:
		return []Line{r.rule(width)}
	case doc.Table:
		return r.table(v, width)
	case nil:
		return r.fail(width, "nil block")
	}
	return r.fail(width, "unsupported block %T", blk)
}

// blocks lays out a container's children, optionally separated by blank
// lines of the ambient kind.
func (r *run) blocks(blks []doc.Block, width int, ambient skin.Kind, separate bool) []Line {
	var out []Line
	for i, blk := range blks {
		if separate && i > 0 {
			out = append(out, Line{Kind: ambient})
		}
		out = append(out, r.block(blk, width, ambient)...)
	}
	return out
}

func (r *run) paragraph(inlines []doc.Inline, width int, kind skin.Kind) []Line {
	lines, err := wrap.Wrap(r.flatten(inlines, r.skin.Resolve(kind)), width)
	if err != nil {
		return r.fail(width, "%v", err)
	}
	if len(lines) == 0 {
		return []Line{{Kind: kind}}
	}
	for i := range lines {
		lines[i].Kind = kind
	}
	return lines
}

func (r *run) header(h doc.Header, width int) []Line {
	kind := skin.HeaderKind(h.Level)
	st := r.skin.Resolve(kind)
	lines := r.paragraph(h.Inlines, width, kind)
	a := r.skin.Align(kind)
	for i := range lines {
		lines[i] = alignLine(lines[i], width, a, st)
		lines[i].Fill = st.HasBackground()
	}
	return lines
}

// alignLine shifts l right within width for centered or right alignment.
func alignLine(l Line, width int, a skin.Align, st style.Style) Line {
	free := width - l.Width()
	var left int
	switch a {
	case skin.AlignCenter:
		left = free / 2
	case skin.AlignRight:
		left = free
	}
	if left <= 0 {
		return l
	}
	return l.Prepend(pad(left, st))
}

// prefixed places first before the first line and an equally wide blank
// indent before the others. When the prefix leaves no room the block is laid
// out without it.
func (r *run) prefixed(first []Token, indentStyle style.Style, width int, layout func(int) []Line, kind skin.Kind) []Line {
	pw := wrap.Width(first)
	if width-pw < 1 {
		return layout(width)
	}
	lines := layout(width - pw)
	if len(lines) == 0 {
		lines = []Line{{Kind: kind}}
	}
	for i := range lines {
		if i == 0 {
			lines[i] = lines[i].Prepend(first...)
			continue
		}
		lines[i] = lines[i].Prepend(pad(pw, indentStyle))
	}
	return lines
}

func (r *run) list(l doc.List, width int) []Line {
	kind := skin.BulletItem
	if l.Ordered {
		kind = skin.NumberedItem
	}
	body := r.skin.Resolve(kind)
	bullet := r.skin.Bullet()
	markStyle := body.Override(bullet.Style)

	markers := make([]string, len(l.Items))
	mw := 0
	for i := range l.Items {
		if l.Ordered {
			markers[i] = fmt.Sprintf("%d.", l.Start+i)
		} else {
			markers[i] = bullet.String()
		}
		mw = max(mw, styled.StringWidth(markers[i]))
	}

	var out []Line
	for i, item := range l.Items {
		mark := markers[i] + spaces(mw-styled.StringWidth(markers[i]))
		first := []Token{styled.Tok(mark, markStyle), pad(1, body)}
		blocks := item.Blocks
		out = append(out, r.prefixed(first, body, width, func(w int) []Line {
			return r.blocks(blocks, w, kind, false)
		}, kind)...)
	}
	return out
}

// quote puts the quote mark on the first line; the other lines get a blank
// indent of the same width in the quote background.
func (r *run) quote(q doc.Quote, width int) []Line {
	st := r.skin.Resolve(skin.Quote)
	mark := r.skin.QuoteMark()
	first := []Token{styled.Tok(mark.String(), st.Override(mark.Style)), pad(1, st)}
	return r.prefixed(first, st, width, func(w int) []Line {
		return r.blocks(q.Blocks, w, skin.Quote, true)
	}, skin.Quote)
}

func (r *run) code(cb doc.CodeBlock, width int) []Line {
	st := r.skin.Resolve(skin.CodeBlock)
	text := wrap.ExpandTabs(cb.Text, r.b.tabWidth)
	lines, err := wrap.Hard(r.highlight(cb.Lang, text, st), width)
	if err != nil {
		return r.fail(width, "%v", err)
	}
	if len(lines) == 0 {
		lines = []Line{{}}
	}

	// Alignment moves the block as a whole so indentation inside it survives.
	widest := 0
	for _, l := range lines {
		widest = max(widest, l.Width())
	}
	var left int
	switch r.skin.Align(skin.CodeBlock) {
	case skin.AlignCenter:
		left = (width - widest) / 2
	case skin.AlignRight:
		left = width - widest
	}
	for i := range lines {
		if left > 0 {
			lines[i] = lines[i].Prepend(pad(left, st))
		}
		lines[i].Kind = skin.CodeBlock
		lines[i].Fill = true
	}
	return lines
}

func (r *run) rule(width int) Line {
	ch := r.skin.RuleChar()
	cw := styled.RuneWidth(ch)
	if cw < 1 || cw > width {
		ch, cw = '-', 1
	}
	n := width / cw
	text := strings.Repeat(string(ch), n) + spaces(width-n*cw)
	return Line{Tokens: []Token{styled.Tok(text, r.skin.Resolve(skin.Rule))}, Kind: skin.Rule}
}

// flatten resolves inlines to tokens, layering each nested inline's
// explicit style over the style around it.
func (r *run) flatten(inlines []doc.Inline, base style.Style) []Token {
	var out []Token
	r.walk(&out, inlines, base)
	return out
}

func (r *run) walk(out *[]Token, inlines []doc.Inline, cur style.Style) {
	for _, in := range inlines {
		switch v := in.(type) {
		case doc.Text:
			*out = append(*out, styled.Tok(v.Value, cur))
		case doc.Code:
			*out = append(*out, styled.Tok(v.Value, r.over(cur, skin.InlineCode)))
		case doc.Bold:
			r.walk(out, v.Children, r.over(cur, skin.Bold))
		case doc.Italic:
			r.walk(out, v.Children, r.over(cur, skin.Italic))
		case doc.Strike:
			r.walk(out, v.Children, r.over(cur, skin.Strikethrough))
		case doc.Link:
			st := r.over(cur, skin.Link)
			if len(v.Children) == 0 {
				*out = append(*out, styled.Tok(v.URL, st))
				continue
			}
			r.walk(out, v.Children, st)
		case nil:
			r.report("nil inline")
		default:
			r.report(fmt.Sprintf("unsupported inline %T", in))
		}
	}
}

func (r *run) over(cur style.Style, k skin.Kind) style.Style {
	if st, ok := r.skin.Explicit(k); ok {
		return cur.Override(st)
	}
	return cur
}
