package docblock

import (
	"context"
	"strings"

	"github.com/yaklabco/docblock/internal/assert"
	"github.com/yaklabco/docblock/internal/logging"
	"github.com/yaklabco/docblock/pkg/dast"
	"github.com/yaklabco/docblock/pkg/lexer"
	"github.com/yaklabco/docblock/pkg/location"
	"github.com/yaklabco/docblock/pkg/markdown"
)

// parser builds a tree from a token sequence. Tokens are consumed by index.
type parser struct {
	ctx    context.Context
	loc    *location.Location
	tokens []lexer.Token
	pos    int
	opts   Options

	filename string
}

func newParser(ctx context.Context, loc *location.Location, tokens []lexer.Token, opts Options) *parser {
	assert.That(len(tokens) > 0 && tokens[len(tokens)-1].Kind == lexer.KindEOF,
		"token sequence must end with %s", lexer.KindEOF)

	return &parser{ctx: ctx, loc: loc, tokens: tokens, opts: opts}
}

// peek returns the current token without consuming it.
func (p *parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

// next consumes and returns the current token. The EOF token is never
// consumed.
func (p *parser) next() lexer.Token {
	tok := p.tokens[p.pos]
	if tok.Kind != lexer.KindEOF {
		p.pos++
	}
	return tok
}

// accept consumes the current token if it has the given kind.
func (p *parser) accept(kind lexer.Kind) (lexer.Token, bool) {
	if p.peek().Kind != kind {
		return lexer.Token{}, false
	}
	return p.next(), true
}

func (p *parser) unexpected(tok lexer.Token, expected ...lexer.Kind) error {
	return &SyntaxError{
		Err:      ErrUnexpectedToken,
		Point:    tok.Start,
		Found:    tok.Kind,
		Expected: expected,
	}
}

// root := comment*
func (p *parser) root() (*dast.Node, error) {
	root := dast.NewRoot()
	root.Position = dast.Position{
		Start: p.loc.Point(0),
		End:   p.loc.Point(p.loc.Len()),
	}

	for p.peek().Kind != lexer.KindEOF {
		if err := p.ctx.Err(); err != nil {
			return nil, err
		}

		tok := p.peek()
		if tok.Kind != lexer.KindOpener {
			return nil, p.unexpected(tok, lexer.KindOpener)
		}

		comment, err := p.comment()
		if err != nil {
			return nil, err
		}

		dast.AppendChild(root, comment)
	}

	return root, nil
}

// comment := OPENER description? blockTag* CLOSER
func (p *parser) comment() (*dast.Node, error) {
	opener := p.next()

	comment := dast.NewNode(dast.NodeComment)

	if tok, ok := p.accept(lexer.KindMarkdown); ok {
		description, err := p.description(tok)
		if err != nil {
			return nil, err
		}
		dast.AppendChild(comment, description)
	}

	for p.peek().Kind == lexer.KindTag {
		tag, err := p.blockTag()
		if err != nil {
			return nil, err
		}
		dast.AppendChild(comment, tag)
	}

	closer, ok := p.accept(lexer.KindCloser)
	if !ok {
		tok := p.peek()
		if tok.Kind == lexer.KindEOF {
			return nil, &SyntaxError{
				Err:   ErrUnterminatedComment,
				Point: opener.Start,
				Found: tok.Kind,
			}
		}
		return nil, p.unexpected(tok, lexer.KindTag, lexer.KindCloser)
	}

	comment.Position = dast.Span(opener.Position(), closer.Position())

	p.opts.Logger.Debug("comment",
		logging.FieldPosition, comment.Position.String(),
		"children", comment.ChildCount(),
	)

	return comment, nil
}

// description := MARKDOWN
func (p *parser) description(tok lexer.Token) (*dast.Node, error) {
	description := dast.NewNode(dast.NodeDescription)
	description.Position = tok.Position()

	nodes, err := markdown.Parse(tok.Text, tok.Position(), p.markdownOptions(false))
	if err != nil {
		return nil, err
	}
	dast.AppendChildren(description, nodes)

	return description, nil
}

// blockTag := TAG typeExpression? MARKDOWN?
func (p *parser) blockTag() (*dast.Node, error) {
	tok := p.next()

	tag := dast.NewNode(dast.NodeBlockTag)
	tag.Tag = tok.Text
	tag.Name = strings.TrimPrefix(tok.Text, "@")

	last := tok

	if expr, ok := p.accept(lexer.KindTypeExpression); ok {
		node := dast.NewNode(dast.NodeTypeExpression)
		node.Value = typeExpressionValue(expr.Text)
		node.Position = expr.Position()
		dast.AppendChild(tag, node)
		last = expr
	}

	if text, ok := p.accept(lexer.KindMarkdown); ok {
		codeblock := isCodeblock(p.opts.Codeblocks, tag.Tag)

		nodes, err := markdown.Parse(text.Text, text.Position(), p.markdownOptions(codeblock))
		if err != nil {
			return nil, err
		}
		dast.AppendChildren(tag, nodes)
		last = text

		p.opts.Logger.Debug("block tag",
			logging.FieldTag, tag.Tag,
			"codeblock", codeblock,
		)
	}

	tag.Position = dast.Span(tok.Position(), last.Position())

	return tag, nil
}

func (p *parser) markdownOptions(codeblock bool) markdown.Options {
	return markdown.Options{
		Codeblock:      codeblock,
		Flavor:         p.opts.Flavor,
		Extensions:     p.opts.Extensions,
		Mappers:        p.opts.NodeMappers,
		DetectLanguage: p.opts.DetectLanguages,
		Filename:       p.filename,
	}
}

// typeExpressionValue returns the text between a type expression's braces
// with continuation decoration removed from every line after the first.
func typeExpressionValue(raw string) string {
	inner := strings.TrimSuffix(strings.TrimPrefix(raw, "{"), "}")

	var out strings.Builder
	for i, line := range splitLines(inner) {
		if i > 0 {
			out.WriteByte('\n')
			line = strings.TrimLeft(line, " \t")
			line = strings.TrimPrefix(line, "*")
			line = strings.TrimLeft(line, " \t")
		}
		out.WriteString(line)
	}

	return out.String()
}

// splitLines splits s at "\n", "\r" and "\r\n".
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}
