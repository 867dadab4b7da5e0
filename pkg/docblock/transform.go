package docblock

import (
	"fmt"

	"github.com/yaklabco/docblock/pkg/dast"
	"github.com/yaklabco/docblock/pkg/location"
)

// unwrapParagraphs replaces paragraphs directly inside block tags and list
// items with their children. Prose in those places is not a block of its
// own.
func unwrapParagraphs(root *dast.Node) {
	paragraphs := dast.FindAll(root, func(n *dast.Node) bool {
		return n.Kind == dast.NodeParagraph && n.Parent != nil &&
			(n.Parent.Kind == dast.NodeBlockTag || n.Parent.Kind == dast.NodeListItem)
	})

	for _, paragraph := range paragraphs {
		dast.Unwrap(paragraph)
	}
}

// toUTF16 rewrites every position in the tree from bytes to UTF-16 code
// units. Caller transforms only ever see the converted tree.
func toUTF16(root *dast.Node, loc *location.Location) {
	_ = dast.Walk(root, func(n *dast.Node) error {
		n.Position.Start = loc.ToUTF16(n.Position.Start)
		n.Position.End = loc.ToUTF16(n.Position.End)
		return nil
	})
}

// runTransforms applies transforms in order and stops at the first error.
func runTransforms(root *dast.Node, transforms []Transform) error {
	for i, transform := range transforms {
		if err := transform(root); err != nil {
			return fmt.Errorf("%w: transform %d: %w", ErrTransform, i, err)
		}
	}
	return nil
}
