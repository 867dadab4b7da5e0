// Package markdown turns the free text of a docblock into positioned
// Markdown nodes.
//
// Text is stripped of comment decoration, parsed with goldmark, mapped onto
// dast nodes and moved back into the coordinates of the source it came
// from. Headings are not recognized: "#" and "===" lines stay prose.
package markdown

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/docblock/internal/assert"
	"github.com/yaklabco/docblock/pkg/dast"
)

// Flavor selects the Markdown dialect.
type Flavor string

const (
	// FlavorCommonMark is plain CommonMark plus inline tags.
	FlavorCommonMark Flavor = "commonmark"

	// FlavorGFM adds strikethrough, task lists and bare URL autolinks.
	FlavorGFM Flavor = "gfm"
)

// ErrUnknownFlavor is returned for a Flavor that is not supported.
var ErrUnknownFlavor = errors.New("unknown markdown flavor")

// ParseFlavor validates a flavor name. The empty string is CommonMark.
func ParseFlavor(name string) (Flavor, error) {
	switch Flavor(strings.ToLower(strings.TrimSpace(name))) {
	case "", FlavorCommonMark:
		return FlavorCommonMark, nil
	case FlavorGFM:
		return FlavorGFM, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFlavor, name)
	}
}

// Options configures a fragment parse.
type Options struct {
	// Codeblock renders the whole text as one code node.
	Codeblock bool

	// Flavor selects the dialect. Empty means CommonMark.
	Flavor Flavor

	// Extensions are added to the goldmark engine after the built-in ones.
	Extensions []goldmark.Extender

	// Mappers convert nodes contributed by Extensions. They run before the
	// built-in mapping.
	Mappers []NodeMapper

	// DetectLanguage fills in the language of code without an info string.
	DetectLanguage bool

	// Filename is the name of the source file, used as a language hint.
	Filename string
}

// codeFence is the prefix that keeps codeblock text from being wrapped.
const codeFence = "```"

// Parse parses raw, the content of a markdown token found at pos in the
// source, and returns its nodes in source coordinates.
//
// A broken internal invariant is returned as an error wrapping
// assert.ErrInvariant.
func Parse(raw string, pos dast.Position, opts Options) (nodes []*dast.Node, err error) {
	defer assert.Recover(&err)

	if !pos.Start.IsValid() {
		pos.Start = dast.Point{Line: 1, Column: 1, Offset: 0}
	}

	md, err := newEngine(opts)
	if err != nil {
		return nil, err
	}

	content := strip(raw, pos.Start.Column)

	src := content.text
	shift := 0
	wrapped := opts.Codeblock && !strings.HasPrefix(src, codeFence)
	if wrapped {
		src = fence(src)
		shift = 1
	}

	source := []byte(src)
	doc := md.Parser().Parse(text.NewReader(source))

	holder := dast.NewRoot()
	dast.AppendChildren(holder, NewMapper(source, opts.Mappers...).MapDocument(doc))

	remap := newRemapper(raw, pos.Start, content.cols, shift)
	remap.remapPositions(holder)

	if wrapped {
		pinCode(holder, pos)
	}

	remap.insertLineBreaks(holder)
	remap.normalizeText(holder)

	if opts.DetectLanguage {
		detectLanguages(holder, opts.Filename)
	}

	return detach(holder), nil
}

// pinCode gives the code node of a wrapped codeblock the token's position.
func pinCode(holder *dast.Node, pos dast.Position) {
	code := holder.FirstChild
	if code == nil || code.Kind != dast.NodeCode {
		return
	}

	code.Position.Start = pos.Start
	if pos.End.IsValid() {
		code.Position.End = pos.End
	}
}

// detach removes and returns the children of holder.
func detach(holder *dast.Node) []*dast.Node {
	nodes := holder.Children()
	for _, node := range nodes {
		dast.RemoveChild(holder, node)
	}
	return nodes
}

// newEngine builds a goldmark instance without heading parsers.
func newEngine(opts Options) (goldmark.Markdown, error) {
	flavor, err := ParseFlavor(string(opts.Flavor))
	if err != nil {
		return nil, err
	}

	extensions := []goldmark.Extender{InlineTagExtension}
	if flavor == FlavorGFM {
		extensions = append(extensions,
			extension.Strikethrough,
			extension.TaskList,
			extension.Linkify,
		)
	}
	extensions = append(extensions, opts.Extensions...)

	return goldmark.New(
		goldmark.WithParser(newParser()),
		goldmark.WithExtensions(extensions...),
	), nil
}

// newParser returns goldmark's default parser minus ATX and Setext
// headings.
func newParser() parser.Parser {
	return parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewThematicBreakParser(), 200),
			util.Prioritized(parser.NewListParser(), 300),
			util.Prioritized(parser.NewListItemParser(), 400),
			util.Prioritized(parser.NewCodeBlockParser(), 500),
			util.Prioritized(parser.NewFencedCodeBlockParser(), 700),
			util.Prioritized(parser.NewBlockquoteParser(), 800),
			util.Prioritized(parser.NewHTMLBlockParser(), 900),
			util.Prioritized(parser.NewParagraphParser(), 1000),
		),
		parser.WithInlineParsers(parser.DefaultInlineParsers()...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)
}
