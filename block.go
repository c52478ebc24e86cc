package webextract

import "strings"

// TagClass is a static classification of tag names. It drives both
// word-break insertion during the tree walk and block grouping for the
// boilerplate split.
type TagClass int

// Tag classes. Inline is the zero value so unknown tags default to it.
const (
	// Inline tags contribute text without breaking words (a, span, b).
	Inline TagClass = iota

	// Block tags force a word break on entry and exit and open a new
	// block scope (p, div, table, li).
	Block

	// Heading tags behave like blocks and additionally route their
	// text into the headings list (h1-h6, hgroup).
	Heading

	// Discard tags suppress their subtree's text entirely (script,
	// style) while still being walked for statistics and attributes.
	Discard
)

// String returns the class name for diagnostics.
func (c TagClass) String() string {
	switch c {
	case Block:
		return "block"
	case Heading:
		return "heading"
	case Discard:
		return "discard"
	default:
		return "inline"
	}
}

// InsertionKind describes how an element ended up in the tree. The
// external parser may synthesize elements for several distinct
// reasons; this core treats all synthesis the same but keeps the
// variants apart for future callers.
type InsertionKind int

const (
	// InsertionExplicit marks an element backed by a literal start tag.
	InsertionExplicit InsertionKind = iota

	// InsertionImplied marks a structural element the parser is
	// allowed to imply when omitted (html, head, body, tbody).
	InsertionImplied

	// InsertionSynthetic marks an element created by error recovery.
	InsertionSynthetic
)

// Counted reports whether elements of this kind participate in DOM
// statistics.
func (k InsertionKind) Counted() bool {
	return k == InsertionExplicit || k == InsertionImplied
}

// BlockNode is one node of the block tree built during the tree walk.
// It accumulates the signals the boilerplate pruner scores on. A block
// tree is owned by the walk that built it, consumed once by the
// pruner, then discarded.
type BlockNode struct {
	Class     TagClass
	TextLen   int
	LinkCount int
	TagCount  int
	Children  []*BlockNode

	text strings.Builder
}

// NewBlockNode returns an empty block of the given class.
func NewBlockNode(class TagClass) *BlockNode {
	return &BlockNode{Class: class}
}

// AddText appends visible text to the block.
func (b *BlockNode) AddText(s string) {
	b.text.WriteString(s)
	b.TextLen += len(s)
}

// AddChild attaches a nested block.
func (b *BlockNode) AddChild(child *BlockNode) {
	b.Children = append(b.Children, child)
}

// Text returns the text accumulated directly in this block (not in
// its children).
func (b *BlockNode) Text() string {
	return b.text.String()
}
