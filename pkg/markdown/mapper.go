package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/docblock/pkg/dast"
	"github.com/yaklabco/docblock/pkg/location"
)

// NodeMapper converts goldmark nodes contributed by a syntax extension.
// It returns nil when it does not handle the node. Positions it assigns
// must come from Mapper.Position so later passes can remap them.
type NodeMapper func(m *Mapper, n ast.Node) *dast.Node

// Mapper converts a goldmark tree into dast nodes positioned in the
// coordinates of the Markdown text that was parsed.
type Mapper struct {
	src     []byte
	loc     *location.Location
	mappers []NodeMapper

	// cursor is the end of the most recently mapped node. It bounds the
	// search for nodes goldmark gives no segment for.
	cursor int
}

// NewMapper creates a mapper over src.
func NewMapper(src []byte, mappers ...NodeMapper) *Mapper {
	return &Mapper{
		src:     src,
		loc:     location.New(string(src)),
		mappers: mappers,
	}
}

// Source returns the Markdown text being mapped.
func (m *Mapper) Source() []byte {
	return m.src
}

// Position returns the local position of the byte range [start, end).
func (m *Mapper) Position(start, end int) dast.Position {
	start = clamp(start, 0, len(m.src))
	end = clamp(end, start, len(m.src))

	return dast.Position{Start: m.loc.Point(start), End: m.loc.Point(end)}
}

// MapChildren maps the children of gmParent and appends them to parent.
func (m *Mapper) MapChildren(gmParent ast.Node, parent *dast.Node) {
	dast.AppendChildren(parent, m.mapChildren(gmParent, false))
}

// MapDocument maps a goldmark document into top-level nodes.
func (m *Mapper) MapDocument(doc ast.Node) []*dast.Node {
	m.cursor = 0
	return m.mapChildren(doc, true)
}

// mapChildren maps the children of gmParent. Flow containers get blank-line
// breaks between block children that are separated by blank lines.
func (m *Mapper) mapChildren(gmParent ast.Node, flow bool) []*dast.Node {
	var nodes []*dast.Node

	for child := gmParent.FirstChild(); child != nil; {
		if isTextual(child) {
			var run []*dast.Node
			run, child = m.mapTextRun(child)
			nodes = append(nodes, run...)
			continue
		}

		for _, node := range m.mapNode(child, flow) {
			if flow && len(nodes) > 0 {
				if blank := m.blankBetween(nodes[len(nodes)-1], node); blank != nil {
					nodes = append(nodes, blank)
				}
			}
			nodes = append(nodes, node)
			m.cursor = max(m.cursor, node.Position.End.Offset)
		}

		child = child.NextSibling()
	}

	return nodes
}

// blankBetween returns a blank break spanning the blank lines between two
// block siblings, or nil when they are on adjacent lines.
func (m *Mapper) blankBetween(prev, next *dast.Node) *dast.Node {
	first := prev.Position.End.Line + 1
	last := next.Position.Start.Line
	if last-first < 1 {
		return nil
	}

	start := m.loc.LineStart(first)
	end := m.loc.LineStart(last)

	return dast.NewBreak(m.Position(start, end), false, true)
}

// mapNode converts a single non-text goldmark node. Nodes nobody knows are
// flattened: their children take their place.
func (m *Mapper) mapNode(gmNode ast.Node, flow bool) []*dast.Node {
	for _, mapper := range m.mappers {
		if node := mapper(m, gmNode); node != nil {
			return []*dast.Node{node}
		}
	}

	if _, ok := gmNode.(*east.TaskCheckBox); ok {
		// Folded into the enclosing list item.
		return nil
	}

	if node := m.mapKnown(gmNode); node != nil {
		return []*dast.Node{node}
	}

	return m.mapChildren(gmNode, flow)
}

func (m *Mapper) mapKnown(gmNode ast.Node) *dast.Node {
	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Paragraph, *ast.TextBlock:
		return m.mapParagraph(gmNode)

	case *ast.List:
		return m.mapList(gmn)

	case *ast.ListItem:
		return m.mapListItem(gmn)

	case *ast.Blockquote:
		return m.mapBlockquote(gmn)

	case *ast.FencedCodeBlock:
		return m.mapFencedCodeBlock(gmn)

	case *ast.CodeBlock:
		return m.mapIndentedCodeBlock(gmn)

	case *ast.ThematicBreak:
		return m.mapThematicBreak()

	case *ast.HTMLBlock:
		return m.mapHTMLBlock(gmn)

	// Inline-level nodes.
	case *InlineTag:
		return m.mapInlineTag(gmn)

	case *ast.Emphasis:
		return m.mapEmphasis(gmn)

	case *ast.CodeSpan:
		return m.mapCodeSpan(gmn)

	case *ast.Link:
		return m.mapLink(gmn)

	case *ast.Image:
		return m.mapImage(gmn)

	case *ast.AutoLink:
		return m.mapAutoLink(gmn)

	case *ast.RawHTML:
		return m.mapRawHTML(gmn)

	// GFM extension nodes.
	case *east.Strikethrough:
		return m.mapStrikethrough(gmn)

	default:
		return nil
	}
}

// isTextual reports whether n contributes to a merged text node.
func isTextual(n ast.Node) bool {
	switch n.(type) {
	case *ast.Text, *ast.String:
		return true
	default:
		return false
	}
}

// mapTextRun merges consecutive goldmark text nodes into one text node,
// keeping soft line breaks as "\n". A hard line break ends the run and
// yields a break node. It returns the mapped nodes and the next unmapped
// sibling.
func (m *Mapper) mapTextRun(first ast.Node) ([]*dast.Node, ast.Node) {
	var (
		value      strings.Builder
		start, end = -1, -1
		hardBreak  *dast.Node
		gmNode     = first
	)

	for ; gmNode != nil && isTextual(gmNode); gmNode = gmNode.NextSibling() {
		var segStart, segStop int

		switch t := gmNode.(type) {
		case *ast.String:
			value.Write(t.Value)
			continue
		case *ast.Text:
			segStart, segStop = t.Segment.Start, t.Segment.Stop
			value.Write(unescape(t.Segment.Value(m.src)))

			if start < 0 {
				start = segStart
			}
			end = segStop

			if t.HardLineBreak() {
				hardBreak = m.hardBreakAfter(segStop)
				gmNode = gmNode.NextSibling()
			} else if t.SoftLineBreak() {
				value.WriteByte('\n')
				end = m.afterLineEnding(segStop)
			}
		}

		if hardBreak != nil {
			break
		}
	}

	var nodes []*dast.Node

	if start >= 0 && (value.Len() > 0 || end > start) {
		nodes = append(nodes, dast.NewText(value.String(), m.Position(start, end)))
		m.cursor = max(m.cursor, end)
	}

	if hardBreak != nil {
		nodes = append(nodes, hardBreak)
		m.cursor = max(m.cursor, hardBreak.Position.End.Offset)
	}

	return nodes, gmNode
}

// hardBreakAfter builds the break node for a hard line break following text
// that ends at stop. The break starts at the backslash or at the trailing
// spaces and ends after the line ending.
func (m *Mapper) hardBreakAfter(stop int) *dast.Node {
	newline := stop
	for newline < len(m.src) && m.src[newline] != '\n' && m.src[newline] != '\r' {
		newline++
	}

	start := newline
	escape := start > stop && m.src[start-1] == '\\'
	if escape {
		start--
	} else {
		for start > stop && m.src[start-1] == ' ' {
			start--
		}
	}

	return dast.NewBreak(m.Position(start, m.afterLineEnding(newline)), escape, false)
}

// afterLineEnding returns the offset just past the line ending at or after
// off, skipping trailing spaces first.
func (m *Mapper) afterLineEnding(off int) int {
	for off < len(m.src) && (m.src[off] == ' ' || m.src[off] == '\t') {
		off++
	}

	if off < len(m.src) && m.src[off] == '\r' {
		off++
	}
	if off < len(m.src) && m.src[off] == '\n' {
		off++
	}

	return off
}

// unescape resolves backslash escapes and character references.
func unescape(b []byte) []byte {
	b = util.UnescapePunctuations(b)
	b = util.ResolveNumericReferences(b)
	return util.ResolveEntityNames(b)
}

func (m *Mapper) mapParagraph(gmNode ast.Node) *dast.Node {
	node := dast.NewNode(dast.NodeParagraph)
	lower := m.cursor
	dast.AppendChildren(node, m.mapChildren(gmNode, false))

	start, end := m.linesRange(gmNode.Lines())
	if start < 0 {
		if node.HasChildren() {
			dast.SpanChildren(node)
			return node
		}
		start, end = lower, lower
	}

	node.Position = m.Position(start, m.trimRight(end, start))
	return node
}

func (m *Mapper) mapList(list *ast.List) *dast.Node {
	node := dast.NewNode(dast.NodeList)
	node.List = &dast.ListAttrs{
		Ordered: list.IsOrdered(),
		Start:   list.Start,
		Spread:  !list.IsTight,
	}

	lower := m.cursor
	dast.AppendChildren(node, m.mapChildren(list, false))

	if node.HasChildren() {
		dast.SpanChildren(node)
	} else {
		node.Position = m.Position(lower, lower)
	}

	return node
}

func (m *Mapper) mapListItem(item *ast.ListItem) *dast.Node {
	node := dast.NewNode(dast.NodeListItem)

	if first := item.FirstChild(); first != nil {
		if box, ok := first.FirstChild().(*east.TaskCheckBox); ok {
			checked := box.IsChecked
			node.Checked = &checked
		}
	}

	lower := m.cursor
	dast.AppendChildren(node, m.mapChildren(item, true))

	if !node.HasChildren() {
		start := m.findMarker(lower, "-+*0123456789")
		node.Position = m.Position(start, m.trimRight(m.lineEndOf(start), start))
		return node
	}

	first := node.FirstChild.Position.Start.Offset
	node.Position = m.Position(m.listMarkerStart(first), node.LastChild.Position.End.Offset)

	return node
}

// listMarkerStart scans back from a list item's content to its marker.
func (m *Mapper) listMarkerStart(content int) int {
	i := content
	for i > 0 && (m.src[i-1] == ' ' || m.src[i-1] == '\t') {
		i--
	}

	if i > 0 && bytes.IndexByte([]byte("-+*"), m.src[i-1]) >= 0 {
		return i - 1
	}

	if i > 0 && (m.src[i-1] == '.' || m.src[i-1] == ')') {
		j := i - 1
		for j > 0 && m.src[j-1] >= '0' && m.src[j-1] <= '9' {
			j--
		}
		return j
	}

	return content
}

func (m *Mapper) mapBlockquote(quote *ast.Blockquote) *dast.Node {
	node := dast.NewNode(dast.NodeBlockquote)

	lower := m.cursor
	dast.AppendChildren(node, m.mapChildren(quote, true))

	if !node.HasChildren() {
		start := m.findMarker(lower, ">")
		node.Position = m.Position(start, m.trimRight(m.lineEndOf(start), start))
		return node
	}

	content := node.FirstChild.Position.Start.Offset
	start := content
	for start > 0 && (m.src[start-1] == ' ' || m.src[start-1] == '\t') {
		start--
	}
	if start > 0 && m.src[start-1] == '>' {
		start--
	} else {
		start = content
	}

	node.Position = m.Position(start, node.LastChild.Position.End.Offset)
	return node
}

func (m *Mapper) mapFencedCodeBlock(code *ast.FencedCodeBlock) *dast.Node {
	node := dast.NewNode(dast.NodeCode)
	node.Code = &dast.CodeAttrs{}

	if code.Info != nil {
		info := strings.TrimSpace(string(code.Info.Segment.Value(m.src)))
		lang, meta, _ := strings.Cut(info, " ")
		node.Code.Lang = lang
		node.Code.Meta = strings.TrimSpace(meta)
	}

	lines := code.Lines()
	node.Value = m.linesValue(lines)

	start, char, size := m.openingFence(code)

	after := m.lineEndOf(start)
	if lines.Len() > 0 {
		after = m.lineEndOf(max(lines.At(lines.Len()-1).Stop-1, start))
	}

	end := m.closingFence(after, char, size)
	if end < 0 {
		end = m.trimRight(after, start)
	}

	node.Position = m.Position(start, end)
	return node
}

// openingFence returns the start, character and length of a fenced code
// block's opening fence.
func (m *Mapper) openingFence(code *ast.FencedCodeBlock) (int, byte, int) {
	var end int

	switch lines := code.Lines(); {
	case code.Info != nil:
		end = code.Info.Segment.Start
		for end > 0 && (m.src[end-1] == ' ' || m.src[end-1] == '\t') {
			end--
		}
	case lines.Len() > 0:
		end = m.trimRight(m.lineStartOf(lines.At(0).Start), 0)
	default:
		start := m.findMarker(m.cursor, "`~")
		end = start
		for end < len(m.src) && m.src[end] == m.src[start] {
			end++
		}
	}

	start := end
	for start > 0 && (m.src[start-1] == '`' || m.src[start-1] == '~') {
		start--
	}

	if start == end {
		return start, '`', 3
	}

	return start, m.src[start], end - start
}

// closingFence looks for a closing fence on the line after the line ending
// at lineEnd. It returns the end offset of the fence, or -1.
func (m *Mapper) closingFence(lineEnd int, char byte, size int) int {
	i := m.afterLineEnding(lineEnd)
	if i >= len(m.src) || i == lineEnd {
		return -1
	}

	for i < len(m.src) && (m.src[i] == ' ' || m.src[i] == '\t' || m.src[i] == '>') {
		i++
	}

	n := 0
	for i+n < len(m.src) && m.src[i+n] == char {
		n++
	}
	if n < size {
		return -1
	}

	end := m.lineEndOf(i)
	if m.trimRight(end, i+n) != i+n {
		return -1
	}

	return i + n
}

func (m *Mapper) mapIndentedCodeBlock(code *ast.CodeBlock) *dast.Node {
	node := dast.NewNode(dast.NodeCode)
	node.Code = &dast.CodeAttrs{}
	node.Value = m.linesValue(code.Lines())

	start, end := m.linesRange(code.Lines())
	if start < 0 {
		start, end = m.cursor, m.cursor
	}

	node.Position = m.Position(m.lineStartOf(start), m.trimRight(end, start))
	return node
}

func (m *Mapper) mapThematicBreak() *dast.Node {
	node := dast.NewNode(dast.NodeThematicBreak)

	start := m.findMarker(m.cursor, "-*_")
	node.Position = m.Position(start, m.trimRight(m.lineEndOf(start), start))

	return node
}

func (m *Mapper) mapHTMLBlock(html *ast.HTMLBlock) *dast.Node {
	node := dast.NewNode(dast.NodeHTML)

	value := m.linesValue(html.Lines())
	start, end := m.linesRange(html.Lines())

	if html.HasClosure() {
		closure := html.ClosureLine
		value += string(closure.Value(m.src))
		if start < 0 {
			start = closure.Start
		}
		end = closure.Stop
	}

	if start < 0 {
		start, end = m.cursor, m.cursor
	}

	node.Value = strings.TrimRight(value, "\r\n")
	node.Position = m.Position(start, m.trimRight(end, start))

	return node
}

func (m *Mapper) mapInlineTag(tag *InlineTag) *dast.Node {
	node := dast.NewNode(dast.NodeInlineTag)
	node.Tag, node.Name, node.Value = splitInlineTag(string(tag.Segment.Value(m.src)))
	node.Position = m.Position(tag.Segment.Start, tag.Segment.Stop)

	return node
}

func (m *Mapper) mapEmphasis(emphasis *ast.Emphasis) *dast.Node {
	kind := dast.NodeEmphasis
	if emphasis.Level == 2 {
		kind = dast.NodeStrong
	}

	node := dast.NewNode(kind)
	m.wrapChildren(node, emphasis, emphasis.Level, emphasis.Level)

	return node
}

func (m *Mapper) mapStrikethrough(strike *east.Strikethrough) *dast.Node {
	node := dast.NewNode(dast.NodeDelete)

	lower := m.cursor
	dast.AppendChildren(node, m.mapChildren(strike, false))
	if !node.HasChildren() {
		node.Position = m.Position(lower, lower)
		return node
	}

	start := node.FirstChild.Position.Start.Offset
	end := node.LastChild.Position.End.Offset
	for start > 0 && m.src[start-1] == '~' {
		start--
	}
	for end < len(m.src) && m.src[end] == '~' {
		end++
	}

	node.Position = m.Position(start, end)
	return node
}

// wrapChildren maps children into node and spans them plus the given number
// of delimiter bytes on each side.
func (m *Mapper) wrapChildren(node *dast.Node, gmNode ast.Node, before, after int) {
	lower := m.cursor
	dast.AppendChildren(node, m.mapChildren(gmNode, false))

	if !node.HasChildren() {
		node.Position = m.Position(lower, lower+before+after)
		return
	}

	node.Position = m.Position(
		node.FirstChild.Position.Start.Offset-before,
		node.LastChild.Position.End.Offset+after,
	)
}

func (m *Mapper) mapCodeSpan(code *ast.CodeSpan) *dast.Node {
	node := dast.NewNode(dast.NodeInlineCode)

	var (
		value      []byte
		start, end = -1, -1
	)

	for child := code.FirstChild(); child != nil; child = child.NextSibling() {
		t, ok := child.(*ast.Text)
		if !ok {
			continue
		}
		value = append(value, t.Segment.Value(m.src)...)
		if start < 0 {
			start = t.Segment.Start
		}
		end = t.Segment.Stop
	}

	node.Value = strings.ReplaceAll(string(value), "\n", " ")

	if start < 0 {
		start = m.findMarker(m.cursor, "`")
		end = start
	}

	// Extend over the padding space and the backtick runs.
	if start > 0 && m.src[start-1] == ' ' && start > 1 && m.src[start-2] == '`' {
		start--
	}
	for start > 0 && m.src[start-1] == '`' {
		start--
	}
	if end < len(m.src) && m.src[end] == ' ' && end+1 < len(m.src) && m.src[end+1] == '`' {
		end++
	}
	for end < len(m.src) && m.src[end] == '`' {
		end++
	}

	node.Position = m.Position(start, end)
	return node
}

func (m *Mapper) mapLink(link *ast.Link) *dast.Node {
	node := dast.NewNode(dast.NodeLink)
	node.Link = &dast.LinkAttrs{
		URL:   string(link.Destination),
		Title: string(link.Title),
	}

	lower := m.cursor
	dast.AppendChildren(node, m.mapChildren(link, false))

	start, end := m.bracketRange(node, lower, 1)
	node.Position = m.Position(start, end)

	return node
}

func (m *Mapper) mapImage(img *ast.Image) *dast.Node {
	node := dast.NewNode(dast.NodeImage)
	node.Link = &dast.LinkAttrs{
		URL:   string(img.Destination),
		Title: string(img.Title),
	}

	lower := m.cursor
	dast.AppendChildren(node, m.mapChildren(img, false))

	start, end := m.bracketRange(node, lower, 2)
	node.Value = plainText(node)
	node.Position = m.Position(start, end)

	// Images keep their alt text as a value, not as children.
	for child := node.FirstChild; child != nil; child = node.FirstChild {
		dast.RemoveChild(node, child)
	}

	return node
}

// bracketRange returns the span of a link or image whose label children
// have been mapped into node. opener is the length of "[" or "![".
func (m *Mapper) bracketRange(node *dast.Node, lower, opener int) (int, int) {
	var labelStart, labelEnd int
	if node.HasChildren() {
		labelStart = node.FirstChild.Position.Start.Offset
		labelEnd = node.LastChild.Position.End.Offset
	} else {
		labelStart = m.findMarker(lower, "[") + 1
		labelEnd = labelStart
	}

	start := max(labelStart-opener, 0)

	end := labelEnd
	for end < len(m.src) && m.src[end] != ']' {
		end++
	}
	if end < len(m.src) {
		end++
	}

	if end < len(m.src) {
		switch m.src[end] {
		case '(':
			end = m.matchClose(end, '(', ')')
		case '[':
			end = m.matchClose(end, '[', ']')
		}
	}

	return start, end
}

// matchClose returns the offset just past the closer matching the opener
// at open, or open+1 when it is not closed.
func (m *Mapper) matchClose(open int, opener, closer byte) int {
	depth := 0
	for i := open; i < len(m.src); i++ {
		switch m.src[i] {
		case '\\':
			i++
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}

	return open + 1
}

func (m *Mapper) mapAutoLink(link *ast.AutoLink) *dast.Node {
	node := dast.NewNode(dast.NodeLink)

	label := link.Label(m.src)
	url := string(link.URL(m.src))
	node.Link = &dast.LinkAttrs{URL: url}

	start := m.cursor
	if idx := bytes.Index(m.src[m.cursor:], label); idx >= 0 {
		start = m.cursor + idx
	}
	end := start + len(label)

	text := dast.NewText(string(label), m.Position(start, end))
	dast.AppendChild(node, text)

	if start > 0 && m.src[start-1] == '<' && end < len(m.src) && m.src[end] == '>' {
		start--
		end++
	}

	node.Position = m.Position(start, end)
	return node
}

func (m *Mapper) mapRawHTML(html *ast.RawHTML) *dast.Node {
	node := dast.NewNode(dast.NodeHTML)

	var value []byte
	start, end := -1, -1
	for i := range html.Segments.Len() {
		seg := html.Segments.At(i)
		value = append(value, seg.Value(m.src)...)
		if start < 0 {
			start = seg.Start
		}
		end = seg.Stop
	}

	if start < 0 {
		start, end = m.cursor, m.cursor
	}

	node.Value = string(value)
	node.Position = m.Position(start, end)

	return node
}

// plainText concatenates the text values below n.
func plainText(n *dast.Node) string {
	var out strings.Builder

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	dast.Walk(n, func(child *dast.Node) error {
		switch child.Kind {
		case dast.NodeText, dast.NodeInlineCode:
			out.WriteString(child.Value)
		case dast.NodeImage:
			if child != n {
				out.WriteString(child.Value)
			}
		}
		return nil
	})

	return out.String()
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
