package doc

// Shorthands for assembling trees by hand, mostly in tests and examples.

// T returns a text inline.
func T(s string) Inline { return Text{Value: s} }

// P returns a paragraph.
func P(inlines ...Inline) Block { return Paragraph{Inlines: inlines} }

// H returns a header of the given level.
func H(level int, inlines ...Inline) Block { return Header{Level: level, Inlines: inlines} }

// B returns bold inlines.
func B(children ...Inline) Inline { return Bold{Children: children} }

// I returns italic inlines.
func I(children ...Inline) Inline { return Italic{Children: children} }

// Bullets returns an unordered list with one paragraph per item.
func Bullets(items ...string) Block {
	l := List{}
	for _, s := range items {
		l.Items = append(l.Items, ListItem{Blocks: []Block{P(T(s))}})
	}
	return l
}

// Numbered returns an ordered list starting at 1 with one paragraph per item.
func Numbered(items ...string) Block {
	l := List{Ordered: true, Start: 1}
	for _, s := range items {
		l.Items = append(l.Items, ListItem{Blocks: []Block{P(T(s))}})
	}
	return l
}

// New returns a document of the given blocks.
func New(blocks ...Block) Document { return Document{Blocks: blocks} }
