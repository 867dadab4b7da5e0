package dast

import "encoding/json"

// jsonNode is the unist-shaped wire form of a Node.
type jsonNode struct {
	Type     string         `json:"type"`
	Tag      string         `json:"tag,omitempty"`
	Name     string         `json:"name,omitempty"`
	Value    *string        `json:"value,omitempty"`
	Lang     string         `json:"lang,omitempty"`
	Meta     string         `json:"meta,omitempty"`
	Ordered  *bool          `json:"ordered,omitempty"`
	Start    *int           `json:"start,omitempty"`
	Spread   *bool          `json:"spread,omitempty"`
	Checked  *bool          `json:"checked,omitempty"`
	URL      string         `json:"url,omitempty"`
	Title    string         `json:"title,omitempty"`
	Alt      string         `json:"alt,omitempty"`
	Hard     bool           `json:"hard,omitempty"`
	Blank    bool           `json:"blank,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	Children *[]*Node       `json:"children,omitempty"`
	Position Position       `json:"position"`
}

// MarshalJSON encodes the node and its subtree as unist-style JSON.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := jsonNode{
		Type:     n.Kind.String(),
		Tag:      n.Tag,
		Name:     n.Name,
		Checked:  n.Checked,
		Data:     n.Data,
		Position: n.Position,
	}

	if hasValue(n.Kind) {
		value := n.Value
		out.Value = &value
	}

	if n.Code != nil {
		out.Lang = n.Code.Lang
		out.Meta = n.Code.Meta
	}
	if n.List != nil {
		ordered, start, spread := n.List.Ordered, n.List.Start, n.List.Spread
		out.Ordered = &ordered
		out.Spread = &spread
		if ordered {
			out.Start = &start
		}
	}
	if n.Link != nil {
		out.URL = n.Link.URL
		out.Title = n.Link.Title
	}
	if n.Kind == NodeImage {
		out.Alt = n.Value
	}
	if n.Break != nil {
		out.Hard = n.Break.Hard
		out.Blank = n.Break.Blank
	}

	if isParent(n.Kind) {
		children := n.Children()
		if children == nil {
			children = []*Node{}
		}
		out.Children = &children
	}

	return json.Marshal(out)
}

func hasValue(kind NodeKind) bool {
	switch kind {
	case NodeText, NodeCode, NodeInlineCode, NodeHTML, NodeTypeExpression, NodeInlineTag:
		return true
	default:
		return false
	}
}

func isParent(kind NodeKind) bool {
	return !hasValue(kind) && kind != NodeBreak && kind != NodeThematicBreak && kind != NodeImage
}
