// Package markdown parses CommonMark (with GitHub tables and strikethrough)
// into a doc.Document using goldmark.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/shahbajlive/mdskin/internal/doc"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Parse converts markdown source into a document tree. Constructs the
// engine has no element for (raw HTML, images) are kept as their text.
func Parse(src []byte) doc.Document {
	root := md.Parser().Parse(text.NewReader(src))
	c := converter{src: src}
	return doc.Document{Blocks: c.blocks(root)}
}

// ParseString is Parse for a string.
func ParseString(src string) doc.Document {
	return Parse([]byte(src))
}

type converter struct {
	src []byte
}

func (c converter) blocks(parent ast.Node) []doc.Block {
	var out []doc.Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if b := c.block(n); b != nil {
			out = append(out, b)
		}
	}
	return out
}

func (c converter) block(n ast.Node) doc.Block {
	switch v := n.(type) {
	case *ast.Paragraph:
		return doc.Paragraph{Inlines: c.inlines(v)}
	case *ast.TextBlock:
		return doc.Paragraph{Inlines: c.inlines(v)}
	case *ast.Heading:
		return doc.Header{Level: v.Level, Inlines: c.inlines(v)}
	case *ast.ThematicBreak:
		return doc.Rule{}
	case *ast.Blockquote:
		return doc.Quote{Blocks: c.blocks(v)}
	case *ast.List:
		l := doc.List{Ordered: v.IsOrdered(), Start: v.Start}
		for it := v.FirstChild(); it != nil; it = it.NextSibling() {
			l.Items = append(l.Items, doc.ListItem{Blocks: c.blocks(it)})
		}
		return l
	case *ast.FencedCodeBlock:
		return doc.CodeBlock{Lang: string(v.Language(c.src)), Text: c.lines(v)}
	case *ast.CodeBlock:
		return doc.CodeBlock{Text: c.lines(v)}
	case *ast.HTMLBlock:
		return doc.CodeBlock{Text: c.lines(v)}
	case *east.Table:
		return c.table(v)
	}
	if n.HasChildren() {
		return doc.Paragraph{Inlines: c.inlines(n)}
	}
	return nil
}

func (c converter) lines(n ast.Node) string {
	var b bytes.Buffer
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(c.src))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (c converter) table(t *east.Table) doc.Table {
	out := doc.Table{}
	for _, a := range t.Alignments {
		out.Align = append(out.Align, alignment(a))
	}
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []doc.Cell
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, doc.Cell(c.inlines(cell)))
		}
		if _, ok := row.(*east.TableHeader); ok {
			out.Header = cells
			continue
		}
		out.Rows = append(out.Rows, cells)
	}
	return out
}

func alignment(a east.Alignment) doc.Alignment {
	switch a {
	case east.AlignLeft:
		return doc.AlignLeft
	case east.AlignCenter:
		return doc.AlignCenter
	case east.AlignRight:
		return doc.AlignRight
	}
	return doc.AlignDefault
}

func (c converter) inlines(parent ast.Node) []doc.Inline {
	var out []doc.Inline
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = append(out, c.inline(n)...)
	}
	return out
}

func (c converter) inline(n ast.Node) []doc.Inline {
	switch v := n.(type) {
	case *ast.Text:
		s := string(v.Value(c.src))
		switch {
		case v.HardLineBreak():
			s += "\n"
		case v.SoftLineBreak():
			s += " "
		}
		return []doc.Inline{doc.Text{Value: s}}
	case *ast.String:
		return []doc.Inline{doc.Text{Value: string(v.Value)}}
	case *ast.CodeSpan:
		var b strings.Builder
		for ch := v.FirstChild(); ch != nil; ch = ch.NextSibling() {
			switch t := ch.(type) {
			case *ast.Text:
				b.Write(t.Value(c.src))
			case *ast.String:
				b.Write(t.Value)
			}
		}
		return []doc.Inline{doc.Code{Value: b.String()}}
	case *ast.Emphasis:
		children := c.inlines(v)
		if v.Level >= 2 {
			return []doc.Inline{doc.Bold{Children: children}}
		}
		return []doc.Inline{doc.Italic{Children: children}}
	case *east.Strikethrough:
		return []doc.Inline{doc.Strike{Children: c.inlines(v)}}
	case *ast.Link:
		return []doc.Inline{doc.Link{URL: string(v.Destination), Children: c.inlines(v)}}
	case *ast.AutoLink:
		return []doc.Inline{doc.Link{
			URL:      string(v.URL(c.src)),
			Children: []doc.Inline{doc.Text{Value: string(v.Label(c.src))}},
		}}
	case *ast.Image:
		return c.inlines(v)
	case *east.TaskCheckBox:
		if v.IsChecked {
			return []doc.Inline{doc.Text{Value: "[x] "}}
		}
		return []doc.Inline{doc.Text{Value: "[ ] "}}
	case *ast.RawHTML:
		var b strings.Builder
		for i := 0; i < v.Segments.Len(); i++ {
			seg := v.Segments.At(i)
			b.Write(seg.Value(c.src))
		}
		return []doc.Inline{doc.Text{Value: b.String()}}
	}
	return c.inlines(n)
}
