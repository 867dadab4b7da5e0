package dast_test

import (
	"testing"

	"github.com/yaklabco/docblock/pkg/dast"
)

func TestNewNode(t *testing.T) {
	t.Parallel()

	node := dast.NewNode(dast.NodeParagraph)

	if node.Kind != dast.NodeParagraph {
		t.Errorf("expected paragraph, got %s", node.Kind)
	}

	if node.Parent != nil || node.FirstChild != nil || node.LastChild != nil {
		t.Error("expected nil parent and children")
	}
}

func TestAppendChild(t *testing.T) {
	t.Parallel()

	parent := dast.NewRoot()
	child1 := dast.NewNode(dast.NodeComment)
	child2 := dast.NewNode(dast.NodeComment)

	dast.AppendChild(parent, child1)

	if parent.FirstChild != child1 || parent.LastChild != child1 {
		t.Error("first child not set correctly")
	}

	dast.AppendChild(parent, child2)

	if parent.FirstChild != child1 || parent.LastChild != child2 {
		t.Error("children not linked in order")
	}

	if child1.Next != child2 || child2.Prev != child1 {
		t.Error("sibling links not set correctly")
	}
}

func TestAppendChildMovesNode(t *testing.T) {
	t.Parallel()

	first := dast.NewRoot()
	second := dast.NewRoot()
	child := dast.NewNode(dast.NodeComment)

	dast.AppendChild(first, child)
	dast.AppendChild(second, child)

	if first.HasChildren() {
		t.Error("child should have been removed from its old parent")
	}

	if child.Parent != second {
		t.Error("child parent not updated")
	}
}

func TestInsertBeforeAndAfter(t *testing.T) {
	t.Parallel()

	parent := dast.NewNode(dast.NodeParagraph)
	middle := dast.NewNode(dast.NodeText)
	dast.AppendChild(parent, middle)

	before := dast.NewNode(dast.NodeBreak)
	after := dast.NewNode(dast.NodeEmphasis)
	dast.InsertBefore(middle, before)
	dast.InsertAfter(middle, after)

	children := parent.Children()
	if len(children) != 3 || children[0] != before || children[1] != middle || children[2] != after {
		t.Fatalf("unexpected children order: %v", children)
	}

	if parent.FirstChild != before || parent.LastChild != after {
		t.Error("first/last child not updated")
	}
}

func TestRemoveAndReplaceChild(t *testing.T) {
	t.Parallel()

	parent := dast.NewNode(dast.NodeParagraph)
	a := dast.NewNode(dast.NodeText)
	b := dast.NewNode(dast.NodeText)
	c := dast.NewNode(dast.NodeText)
	dast.AppendChildren(parent, []*dast.Node{a, b})

	dast.ReplaceChild(parent, a, c)
	if parent.FirstChild != c || c.Next != b || a.Parent != nil {
		t.Error("replace did not relink")
	}

	dast.RemoveChild(parent, b)
	if parent.ChildCount() != 1 || parent.LastChild != c {
		t.Error("remove did not relink")
	}
}

func TestUnwrap(t *testing.T) {
	t.Parallel()

	tag := dast.NewNode(dast.NodeBlockTag)
	expr := dast.NewNode(dast.NodeTypeExpression)
	para := dast.NewNode(dast.NodeParagraph)
	text := dast.NewNode(dast.NodeText)
	code := dast.NewNode(dast.NodeInlineCode)

	dast.AppendChildren(para, []*dast.Node{text, code})
	dast.AppendChildren(tag, []*dast.Node{expr, para})

	if got := dast.Unwrap(para); got != text {
		t.Errorf("expected unwrap to return the first spliced child")
	}

	children := tag.Children()
	if len(children) != 3 || children[0] != expr || children[1] != text || children[2] != code {
		t.Fatalf("unexpected children after unwrap: %d", len(children))
	}

	if text.Parent != tag || para.Parent != nil {
		t.Error("parents not updated")
	}
}

func TestUnwrapEmpty(t *testing.T) {
	t.Parallel()

	parent := dast.NewNode(dast.NodeListItem)
	empty := dast.NewNode(dast.NodeParagraph)
	next := dast.NewNode(dast.NodeList)
	dast.AppendChildren(parent, []*dast.Node{empty, next})

	if got := dast.Unwrap(empty); got != next {
		t.Error("expected unwrap of an empty node to return its next sibling")
	}

	if parent.ChildCount() != 1 {
		t.Error("empty node not removed")
	}
}

func TestSpanChildren(t *testing.T) {
	t.Parallel()

	list := dast.NewNode(dast.NodeList)
	a := dast.NewNode(dast.NodeListItem)
	a.Position = dast.Position{
		Start: dast.Point{Line: 1, Column: 1, Offset: 0},
		End:   dast.Point{Line: 1, Column: 4, Offset: 3},
	}
	b := dast.NewNode(dast.NodeListItem)
	b.Position = dast.Position{
		Start: dast.Point{Line: 2, Column: 1, Offset: 4},
		End:   dast.Point{Line: 2, Column: 4, Offset: 7},
	}
	dast.AppendChildren(list, []*dast.Node{a, b})

	dast.SpanChildren(list)

	if list.Position.Start != a.Position.Start || list.Position.End != b.Position.End {
		t.Errorf("unexpected span %s", list.Position)
	}
}

func TestTypeExpression(t *testing.T) {
	t.Parallel()

	tag := dast.NewNode(dast.NodeBlockTag)
	if tag.TypeExpression() != nil {
		t.Error("expected no type expression")
	}

	expr := dast.NewNode(dast.NodeTypeExpression)
	dast.AppendChild(tag, expr)
	if tag.TypeExpression() != expr {
		t.Error("expected the first child type expression")
	}
}
