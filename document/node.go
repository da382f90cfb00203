package document

import (
	"github.com/google/uuid"

	"github.com/dshills/richdoc/text"
)

// Kind identifies a node variant.
type Kind int

const (
	// KindParagraph is a text block (paragraph, heading, quote, preformatted).
	KindParagraph Kind = iota
	// KindListItem is a bullet or numbered list entry.
	KindListItem
	// KindTable is a rectangular grid of attributed-text cells.
	KindTable
	// KindImage is an image reference (URL plus optional dimensions).
	KindImage
	// KindRule is a horizontal rule.
	KindRule
	// KindCodeBlock is a fenced block of source code.
	KindCodeBlock
)

// String returns the kind's JSON discriminant name.
func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindListItem:
		return "listItem"
	case KindTable:
		return "table"
	case KindImage:
		return "image"
	case KindRule:
		return "horizontalRule"
	case KindCodeBlock:
		return "codeBlock"
	default:
		return "unknown"
	}
}

// Alignment is a block or cell horizontal alignment.
type Alignment int

const (
	// AlignLeft aligns content to the left edge (the default).
	AlignLeft Alignment = iota
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right edge.
	AlignRight
	// AlignJustify justifies content across the full width.
	AlignJustify
)

// String returns the alignment's serialized name.
func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// ParseAlignment maps a serialized name back to an Alignment.
// Unknown names yield AlignLeft.
func ParseAlignment(s string) Alignment {
	switch s {
	case "center":
		return AlignCenter
	case "right":
		return AlignRight
	case "justify":
		return AlignJustify
	default:
		return AlignLeft
	}
}

// BlockType distinguishes the rendering role of a paragraph node.
type BlockType int

const (
	// BlockParagraph is a plain paragraph.
	BlockParagraph BlockType = iota
	// BlockHeading1 through BlockHeading6 are section headings.
	BlockHeading1
	BlockHeading2
	BlockHeading3
	BlockHeading4
	BlockHeading5
	BlockHeading6
	// BlockQuote is a block quotation.
	BlockQuote
	// BlockPreformatted preserves whitespace.
	BlockPreformatted
)

// String returns the block type's serialized name.
func (b BlockType) String() string {
	switch b {
	case BlockHeading1:
		return "heading1"
	case BlockHeading2:
		return "heading2"
	case BlockHeading3:
		return "heading3"
	case BlockHeading4:
		return "heading4"
	case BlockHeading5:
		return "heading5"
	case BlockHeading6:
		return "heading6"
	case BlockQuote:
		return "blockquote"
	case BlockPreformatted:
		return "preformatted"
	default:
		return "paragraph"
	}
}

// HeadingLevel returns 1-6 for heading block types, 0 otherwise.
func (b BlockType) HeadingLevel() int {
	if b >= BlockHeading1 && b <= BlockHeading6 {
		return int(b-BlockHeading1) + 1
	}
	return 0
}

// ParseBlockType maps a serialized name back to a BlockType.
// Unknown names yield BlockParagraph.
func ParseBlockType(s string) BlockType {
	switch s {
	case "heading1":
		return BlockHeading1
	case "heading2":
		return BlockHeading2
	case "heading3":
		return BlockHeading3
	case "heading4":
		return BlockHeading4
	case "heading5":
		return BlockHeading5
	case "heading6":
		return BlockHeading6
	case "blockquote":
		return BlockQuote
	case "preformatted":
		return BlockPreformatted
	default:
		return BlockParagraph
	}
}

// ListType distinguishes bullet from numbered list items.
type ListType int

const (
	// ListBullet is an unordered list entry.
	ListBullet ListType = iota
	// ListNumbered is an ordered list entry.
	ListNumbered
)

// String returns the list type's serialized name.
func (l ListType) String() string {
	if l == ListNumbered {
		return "numbered"
	}
	return "bullet"
}

// ParseListType maps a serialized name back to a ListType.
func ParseListType(s string) ListType {
	if s == "numbered" {
		return ListNumbered
	}
	return ListBullet
}

// Node is the common contract of all document node variants.
// The variant set is closed; consumers dispatch with type switches on the
// concrete types or on Kind.
type Node interface {
	// ID returns the node's unique, stable identifier.
	ID() string

	// Kind returns the node variant.
	Kind() Kind

	// IsEmpty reports whether the node has no user-visible content.
	IsEmpty() bool

	// PlainText returns the node's plain-text projection.
	PlainText() string

	// Clone returns a deep copy of the node, keeping the same id.
	Clone() Node
}

// newNodeID generates a unique node identifier.
func newNodeID() string {
	return uuid.NewString()
}

// Paragraph is a text block: plain paragraph, heading, quote, or
// preformatted block.
type Paragraph struct {
	id        string
	Text      text.Text
	Alignment Alignment
	BlockType BlockType
	Indent    int
}

// NewParagraph creates an empty paragraph node.
func NewParagraph() *Paragraph {
	return &Paragraph{id: newNodeID()}
}

// NewParagraphText creates a paragraph node with the given attributed text.
func NewParagraphText(t text.Text) *Paragraph {
	return &Paragraph{id: newNodeID(), Text: t}
}

// NewHeading creates a paragraph node with a heading block type.
// Levels outside 1-6 are clamped.
func NewHeading(level int, t text.Text) *Paragraph {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return &Paragraph{id: newNodeID(), Text: t, BlockType: BlockHeading1 + BlockType(level-1)}
}

// ID returns the node id.
func (p *Paragraph) ID() string { return p.id }

// Kind returns KindParagraph.
func (p *Paragraph) Kind() Kind { return KindParagraph }

// IsEmpty reports whether the paragraph has no text.
func (p *Paragraph) IsEmpty() bool { return p.Text.IsEmpty() }

// PlainText returns the paragraph's text content.
func (p *Paragraph) PlainText() string { return p.Text.String() }

// Clone returns a deep copy with the same id.
func (p *Paragraph) Clone() Node {
	c := *p
	return &c
}

// ListItem is a bullet or numbered list entry.
type ListItem struct {
	id       string
	Text     text.Text
	ListType ListType
	Indent   int
}

// NewListItem creates a list item node.
func NewListItem(lt ListType, t text.Text) *ListItem {
	return &ListItem{id: newNodeID(), Text: t, ListType: lt}
}

// ID returns the node id.
func (l *ListItem) ID() string { return l.id }

// Kind returns KindListItem.
func (l *ListItem) Kind() Kind { return KindListItem }

// IsEmpty reports whether the item has no text.
func (l *ListItem) IsEmpty() bool { return l.Text.IsEmpty() }

// PlainText returns the item's text content.
func (l *ListItem) PlainText() string { return l.Text.String() }

// Clone returns a deep copy with the same id.
func (l *ListItem) Clone() Node {
	c := *l
	return &c
}

// Image is a reference to an image: URL, alternative text, and optional
// dimensions. The core stores the reference only; loading is the UI's job.
type Image struct {
	id        string
	Src       string
	Alt       string
	Width     int // 0 means unset
	Height    int // 0 means unset
	Alignment Alignment
}

// NewImage creates an image node.
func NewImage(src, alt string) *Image {
	return &Image{id: newNodeID(), Src: src, Alt: alt}
}

// ID returns the node id.
func (i *Image) ID() string { return i.id }

// Kind returns KindImage.
func (i *Image) Kind() Kind { return KindImage }

// IsEmpty reports whether the image has no source URL.
func (i *Image) IsEmpty() bool { return i.Src == "" }

// PlainText returns the image's alt text.
func (i *Image) PlainText() string { return i.Alt }

// Clone returns a copy with the same id.
func (i *Image) Clone() Node {
	c := *i
	return &c
}

// Rule is a horizontal rule. It has no payload and always renders.
type Rule struct {
	id string
}

// NewRule creates a horizontal rule node.
func NewRule() *Rule {
	return &Rule{id: newNodeID()}
}

// ID returns the node id.
func (r *Rule) ID() string { return r.id }

// Kind returns KindRule.
func (r *Rule) Kind() Kind { return KindRule }

// IsEmpty always reports false; a rule always renders.
func (r *Rule) IsEmpty() bool { return false }

// PlainText returns an empty string.
func (r *Rule) PlainText() string { return "" }

// Clone returns a copy with the same id.
func (r *Rule) Clone() Node {
	c := *r
	return &c
}

// CodeBlock is a fenced block of source code with an optional language tag.
type CodeBlock struct {
	id       string
	Code     string
	Language string
}

// NewCodeBlock creates a code block node.
func NewCodeBlock(code, language string) *CodeBlock {
	return &CodeBlock{id: newNodeID(), Code: code, Language: language}
}

// ID returns the node id.
func (c *CodeBlock) ID() string { return c.id }

// Kind returns KindCodeBlock.
func (c *CodeBlock) Kind() Kind { return KindCodeBlock }

// IsEmpty reports whether the block has no code.
func (c *CodeBlock) IsEmpty() bool { return c.Code == "" }

// PlainText returns the code content.
func (c *CodeBlock) PlainText() string { return c.Code }

// Clone returns a copy with the same id.
func (c *CodeBlock) Clone() Node {
	cc := *c
	return &cc
}

// restoreID is used by the deserializer to rebuild nodes with persisted ids.
// An empty id keeps the generated one.
func restoreID(n Node, id string) {
	if id == "" {
		return
	}
	switch v := n.(type) {
	case *Paragraph:
		v.id = id
	case *ListItem:
		v.id = id
	case *Table:
		v.id = id
	case *Image:
		v.id = id
	case *Rule:
		v.id = id
	case *CodeBlock:
		v.id = id
	}
}

// RestoreID sets a node's id to a persisted value. It exists for
// deserializers only; ids are otherwise stable for the node's lifetime.
func RestoreID(n Node, id string) {
	restoreID(n, id)
}
