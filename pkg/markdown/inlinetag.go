package markdown

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindInlineTag is the goldmark node kind for "{@name value}" spans.
//
//nolint:gochecknoglobals // goldmark node kinds are registered once per process.
var KindInlineTag = ast.NewNodeKind("InlineTag")

// InlineTag is the goldmark node produced by the inline tag parser.
type InlineTag struct {
	ast.BaseInline

	// Segment covers the whole span, braces included.
	Segment text.Segment
}

// Kind implements ast.Node.
func (n *InlineTag) Kind() ast.NodeKind {
	return KindInlineTag
}

// Dump implements ast.Node.
func (n *InlineTag) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Value": string(n.Segment.Value(source)),
	}, nil)
}

// inlineTagPriority places the parser ahead of links and emphasis.
const inlineTagPriority = 150

type inlineTagParser struct{}

// Trigger implements parser.InlineParser.
func (p *inlineTagParser) Trigger() []byte {
	return []byte{'{'}
}

// Parse implements parser.InlineParser. The construct must open with "{@"
// and close with an unescaped "}", possibly on a later line of the same
// paragraph; anything else is left to the other parsers as plain text.
func (p *inlineTagParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, segment := block.PeekLine()
	if len(line) < 2 || line[0] != '{' || line[1] != '@' {
		return nil
	}

	start := segment.Start
	savedLine, savedSegment := block.Position()

	escaped := false
	skip := 2
	for line != nil {
		for i := skip; i < len(line); i++ {
			c := line[i]
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '}':
				block.Advance(i + 1)
				return &InlineTag{Segment: text.NewSegment(start, segment.Start+i+1)}
			}
		}

		block.AdvanceLine()
		line, segment = block.PeekLine()
		skip = 0
	}

	block.SetPosition(savedLine, savedSegment)
	return nil
}

type inlineTagExtension struct{}

// InlineTagExtension registers the "{@name value}" inline parser.
//
//nolint:gochecknoglobals // Stateless extender.
var InlineTagExtension goldmark.Extender = &inlineTagExtension{}

// Extend implements goldmark.Extender.
func (e *inlineTagExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&inlineTagParser{}, inlineTagPriority),
	))
}

//nolint:gochecknoglobals // Compiled once.
var inlineTagPattern = regexp.MustCompile(`^@(\S+)(?:\s+(\S+))?`)

// splitInlineTag returns the tag, name and value of raw "{@name value}"
// text. The name keeps its "@"; the value is the first word after it.
func splitInlineTag(raw string) (tag, name, value string) {
	inner := strings.TrimSuffix(strings.TrimPrefix(raw, "{"), "}")

	match := inlineTagPattern.FindStringSubmatch(strings.TrimSpace(inner))
	if match == nil {
		return "", "", strings.TrimSpace(inner)
	}

	return "@" + match[1], "@" + match[1], match[2]
}
