package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/docblock/pkg/dast"
)

const treeIndent = "  "

// FormatTree renders a tree one node per line as
// `kind line:col-line:col "value"`, children indented under their parent.
// Tags, code languages, link targets and list attributes follow the
// position when present.
func (s *Styles) FormatTree(root *dast.Node) string {
	var builder strings.Builder
	s.writeNode(&builder, root, 0)
	return builder.String()
}

func (s *Styles) writeNode(builder *strings.Builder, node *dast.Node, depth int) {
	if node == nil {
		return
	}

	builder.WriteString(strings.Repeat(treeIndent, depth))

	if node.Kind.IsDocblock() {
		builder.WriteString(s.DocKind.Render(node.Kind.String()))
	} else {
		builder.WriteString(s.Kind.Render(node.Kind.String()))
	}

	builder.WriteString(" ")
	builder.WriteString(s.Position.Render(FormatPosition(node.Position)))

	if node.Tag != "" {
		builder.WriteString(" " + s.Tag.Render(node.Tag))
	}

	for _, attr := range nodeAttrs(node) {
		builder.WriteString(" " + s.Attr.Render(attr))
	}

	if node.Value != "" {
		builder.WriteString(" " + s.Value.Render(strconv.Quote(node.Value)))
	}

	builder.WriteString("\n")

	for child := node.FirstChild; child != nil; child = child.Next {
		s.writeNode(builder, child, depth+1)
	}
}

// FormatPosition renders a span as line:col-line:col.
func FormatPosition(pos dast.Position) string {
	return fmt.Sprintf("%d:%d-%d:%d", pos.Start.Line, pos.Start.Column, pos.End.Line, pos.End.Column)
}

// nodeAttrs lists the kind-specific attributes worth showing.
func nodeAttrs(node *dast.Node) []string {
	var attrs []string

	if node.Code != nil {
		if node.Code.Lang != "" {
			attrs = append(attrs, "lang="+node.Code.Lang)
		}
		if node.Code.Meta != "" {
			attrs = append(attrs, "meta="+strconv.Quote(node.Code.Meta))
		}
	}

	if node.List != nil {
		attrs = append(attrs, "ordered="+strconv.FormatBool(node.List.Ordered))
		if node.List.Ordered {
			attrs = append(attrs, "start="+strconv.Itoa(node.List.Start))
		}
		if node.List.Spread {
			attrs = append(attrs, "spread")
		}
	}

	if node.Link != nil && node.Link.URL != "" {
		attrs = append(attrs, "url="+node.Link.URL)
	}

	if node.Break != nil && node.Break.Hard {
		attrs = append(attrs, "hard")
	}

	if node.Checked != nil {
		attrs = append(attrs, "checked="+strconv.FormatBool(*node.Checked))
	}

	return attrs
}
