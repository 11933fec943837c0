// Package doc is the document tree handed to the composite builder.
//
// Blocks and inlines are closed sets: the marker methods are unexported, so
// only the types declared here satisfy Block and Inline. A builder switching
// over them can treat anything else (in practice only nil) as malformed.
package doc

import "strings"

// Document is an ordered list of top-level blocks.
type Document struct {
	Blocks []Block
}

// Block is a block-level element.
type Block interface {
	block()
}

// Inline is a span inside a paragraph, header, list item or table cell.
type Inline interface {
	inline()
}

// Paragraph is a run of inlines wrapped as prose.
type Paragraph struct {
	Inlines []Inline
}

// Header is a heading of level 1..6.
type Header struct {
	Level   int
	Inlines []Inline
}

// List is a bulleted or numbered list. Start is the number of the first item
// of an ordered list and is used as given, so a list may start at 0; Numbered
// starts at 1.
type List struct {
	Ordered bool
	Start   int
	Items   []ListItem
}

// ListItem holds the blocks of one list entry. The first paragraph carries
// the bullet; nested lists are ordinary blocks inside the item.
type ListItem struct {
	Blocks []Block
}

// Quote is a block quote.
type Quote struct {
	Blocks []Block
}

// CodeBlock is preformatted text. Lang is the fence info string, if any.
type CodeBlock struct {
	Lang string
	Text string
}

// Rule is a horizontal rule.
type Rule struct{}

// Alignment is a table column alignment.
type Alignment uint8

const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Cell is the inline content of one table cell.
type Cell []Inline

// Table is a grid with a header row. Every row must have len(Header) cells;
// Align, when non-empty, has one entry per column.
type Table struct {
	Header []Cell
	Rows   [][]Cell
	Align  []Alignment
}

func (Paragraph) block() {}
func (Header) block()    {}
func (List) block()      {}
func (Quote) block()     {}
func (CodeBlock) block() {}
func (Rule) block()      {}
func (Table) block()     {}

// Text is literal text. A "\n" inside it is a hard line break.
type Text struct {
	Value string
}

// Bold is strong emphasis.
type Bold struct {
	Children []Inline
}

// Italic is emphasis.
type Italic struct {
	Children []Inline
}

// Strike is struck-through text.
type Strike struct {
	Children []Inline
}

// Code is an inline code span.
type Code struct {
	Value string
}

// Link is a hyperlink; only its children are displayed.
type Link struct {
	URL      string
	Children []Inline
}

func (Text) inline()   {}
func (Bold) inline()   {}
func (Italic) inline() {}
func (Strike) inline() {}
func (Code) inline()   {}
func (Link) inline()   {}

// PlainText concatenates the visible text of inlines, dropping styling.
func PlainText(inlines []Inline) string {
	var b strings.Builder
	writePlain(&b, inlines)
	return b.String()
}

func writePlain(b *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		switch v := in.(type) {
		case Text:
			b.WriteString(v.Value)
		case Code:
			b.WriteString(v.Value)
		case Bold:
			writePlain(b, v.Children)
		case Italic:
			writePlain(b, v.Children)
		case Strike:
			writePlain(b, v.Children)
		case Link:
			writePlain(b, v.Children)
		}
	}
}

// Headers returns the top-level headers of d in document order.
func (d Document) Headers() []Header {
	var out []Header
	for _, b := range d.Blocks {
		if h, ok := b.(Header); ok {
			out = append(out, h)
		}
	}
	return out
}
