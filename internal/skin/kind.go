package skin

import "strings"

// Kind identifies a semantic element that a skin can style. The set is
// closed: adding a kind means adding it here, to kindNames, and to the
// builder's resolution switch.
type Kind uint8

const (
	Normal Kind = iota
	InlineCode
	CodeBlock
	Header1
	Header2
	Header3
	Header4
	Header5
	Header6
	BulletItem
	NumberedItem
	Quote
	Rule
	Bold
	Italic
	Strikethrough
	Link
	TableCell
	TableBorder
	ScrollbarTrack
	ScrollbarThumb
	Selection

	kindCount
)

// MaxHeaderLevel is the deepest header level with its own kind.
const MaxHeaderLevel = 6

var kindNames = [kindCount]string{
	Normal:         "normal",
	InlineCode:     "inline_code",
	CodeBlock:      "code_block",
	Header1:        "h1",
	Header2:        "h2",
	Header3:        "h3",
	Header4:        "h4",
	Header5:        "h5",
	Header6:        "h6",
	BulletItem:     "bullet",
	NumberedItem:   "numbered",
	Quote:          "quote",
	Rule:           "rule",
	Bold:           "bold",
	Italic:         "italic",
	Strikethrough:  "strikethrough",
	Link:           "link",
	TableCell:      "table_cell",
	TableBorder:    "table_border",
	ScrollbarTrack: "scrollbar_track",
	ScrollbarThumb: "scrollbar_thumb",
	Selection:      "selection",
}

var kindAliases = map[string]Kind{
	"text":            Normal,
	"paragraph":       Normal,
	"code":            InlineCode,
	"codeblock":       CodeBlock,
	"header1":         Header1,
	"header2":         Header2,
	"header3":         Header3,
	"header4":         Header4,
	"header5":         Header5,
	"header6":         Header6,
	"bullet_item":     BulletItem,
	"list_item":       BulletItem,
	"numbered_item":   NumberedItem,
	"ordered_item":    NumberedItem,
	"blockquote":      Quote,
	"hr":              Rule,
	"horizontal_rule": Rule,
	"strong":          Bold,
	"emph":            Italic,
	"em":              Italic,
	"strike":          Strikethrough,
	"cell":            TableCell,
	"table":           TableCell,
	"track":           ScrollbarTrack,
	"thumb":           ScrollbarThumb,
	"selected":        Selection,
}

// String returns the configuration name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool { return k < kindCount }

// IsHeader reports whether k is a header kind.
func (k Kind) IsHeader() bool { return k >= Header1 && k <= Header6 }

// HeaderLevel returns 1..6 for header kinds and 0 otherwise.
func (k Kind) HeaderLevel() int {
	if !k.IsHeader() {
		return 0
	}
	return int(k-Header1) + 1
}

// HeaderKind maps a header level to its kind, clamping to 1..MaxHeaderLevel.
func HeaderKind(level int) Kind {
	if level < 1 {
		level = 1
	}
	if level > MaxHeaderLevel {
		level = MaxHeaderLevel
	}
	return Header1 + Kind(level-1)
}

// Kinds returns every declared kind in order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind resolves a configuration key (case-insensitive, '-' or '_').
func ParseKind(name string) (Kind, bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for k, n := range kindNames {
		if n == key {
			return Kind(k), true
		}
	}
	if k, ok := kindAliases[key]; ok {
		return k, true
	}
	return 0, false
}
