// Package dast provides the docblock syntax tree: docblock nodes (comments,
// block tags, type expressions, inline tags) mixed with Markdown content
// nodes, each carrying its span in the original source.
package dast

// NodeKind classifies the type of a tree node.
type NodeKind uint16

// Node kinds for docblock structure and Markdown content.
const (
	NodeRoot NodeKind = iota

	// Docblock nodes.
	NodeComment
	NodeDescription
	NodeBlockTag
	NodeTypeExpression
	NodeInlineTag

	// Markdown block nodes.
	NodeParagraph
	NodeCode
	NodeList
	NodeListItem
	NodeBlockquote
	NodeThematicBreak
	NodeHTML

	// Markdown inline nodes.
	NodeText
	NodeBreak
	NodeInlineCode
	NodeEmphasis
	NodeStrong
	NodeDelete
	NodeLink
	NodeImage
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [...]string{
	NodeRoot:           "root",
	NodeComment:        "comment",
	NodeDescription:    "description",
	NodeBlockTag:       "blockTag",
	NodeTypeExpression: "typeExpression",
	NodeInlineTag:      "inlineTag",
	NodeParagraph:      "paragraph",
	NodeCode:           "code",
	NodeList:           "list",
	NodeListItem:       "listItem",
	NodeBlockquote:     "blockquote",
	NodeThematicBreak:  "thematicBreak",
	NodeHTML:           "html",
	NodeText:           "text",
	NodeBreak:          "break",
	NodeInlineCode:     "inlineCode",
	NodeEmphasis:       "emphasis",
	NodeStrong:         "strong",
	NodeDelete:         "delete",
	NodeLink:           "link",
	NodeImage:          "image",
}

// String returns the node type name used in serialized trees.
func (k NodeKind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// IsDocblock returns true for node kinds that describe docblock structure
// rather than Markdown content.
func (k NodeKind) IsDocblock() bool {
	switch k {
	case NodeRoot, NodeComment, NodeDescription, NodeBlockTag,
		NodeTypeExpression, NodeInlineTag:
		return true
	default:
		return false
	}
}

// Node is a single node in the syntax tree.
// Nodes form a tree through parent/child/sibling pointers.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Position is the span of the node in the source text.
	Position Position

	// Value holds literal content: text, code, inline code, html, type
	// expression and inline tag values, and image alt text.
	Value string

	// Tag is the tag as written, including "@" (block and inline tags).
	Tag string

	// Name identifies the tag. Block tags drop the leading "@" ("param");
	// inline tags keep it ("@link").
	Name string

	// Code holds attributes for NodeCode.
	Code *CodeAttrs

	// List holds attributes for NodeList.
	List *ListAttrs

	// Link holds attributes for NodeLink and NodeImage.
	Link *LinkAttrs

	// Break holds attributes for NodeBreak.
	Break *BreakAttrs

	// Checked is set on task list items.
	Checked *bool

	// Data holds extension-specific attributes.
	Data map[string]any
}

// CodeAttrs holds attributes for code nodes.
type CodeAttrs struct {
	// Lang is the info string language, if any.
	Lang string

	// Meta is the remainder of the info string after the language.
	Meta string
}

// ListAttrs holds attributes for list nodes.
type ListAttrs struct {
	Ordered bool

	// Start is the first number of an ordered list.
	Start int

	// Spread is true for loose lists (blank lines between items).
	Spread bool
}

// LinkAttrs holds attributes for link and image nodes.
type LinkAttrs struct {
	URL   string
	Title string
}

// BreakAttrs holds attributes for break nodes.
type BreakAttrs struct {
	// Hard marks a hard line break written as a backslash escape.
	Hard bool

	// Blank marks a break that stands for one or more blank lines.
	Blank bool
}

// IsBlank returns true if n is a blank-line break.
func (n *Node) IsBlank() bool {
	return n != nil && n.Kind == NodeBreak && n.Break != nil && n.Break.Blank
}

// IsHard returns true if n is a hard (escaped) line break.
func (n *Node) IsHard() bool {
	return n != nil && n.Kind == NodeBreak && n.Break != nil && n.Break.Hard
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// TypeExpression returns the type expression child of a block tag, or nil.
func (n *Node) TypeExpression() *Node {
	if n == nil || n.FirstChild == nil || n.FirstChild.Kind != NodeTypeExpression {
		return nil
	}
	return n.FirstChild
}
