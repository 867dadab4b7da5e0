// Package lexer splits source text into docblock tokens.
//
// Outside a comment only the opener rule is active and every other byte is
// skipped. Inside a comment the rules are tried in a fixed order at each
// position (tag, type expression, closer, delimiter, whitespace, markdown)
// and the first match wins.
package lexer

import (
	"github.com/yaklabco/docblock/internal/assert"
	"github.com/yaklabco/docblock/pkg/dast"
	"github.com/yaklabco/docblock/pkg/location"
	"github.com/yaklabco/docblock/pkg/reader"
)

// Options controls lexing.
type Options struct {
	// Multiline also accepts "/*" as a comment opener.
	Multiline bool

	// From is the position of the first byte of the text inside an enclosing
	// document. The zero value means 1:1 at offset 0.
	From dast.Point
}

// pending is a token that has been entered but not yet exited.
type pending struct {
	kind  Kind
	start int
}

// Lexer produces a token sequence from a reader.
type Lexer struct {
	r    *reader.Reader
	opts Options

	tokens []Token
	open   *pending

	// inComment is set by an opener and cleared by a closer.
	inComment bool

	// lineLead is true while only whitespace and at most one delimiter have
	// been seen since the start of the line (or since the opener).
	lineLead bool

	// delimited is true once the current line's delimiter was consumed.
	delimited bool

	// afterTag is true when the last kept token is a tag and only
	// whitespace or delimiters followed it.
	afterTag bool
}

// Lex tokenizes doc and returns the kept tokens terminated by an EOF token.
// Token points count UTF-16 code units.
func Lex(doc string, opts Options) []Token {
	loc := location.NewFrom(doc, opts.From)
	tokens := New(loc, opts).Tokens()

	for i := range tokens {
		tokens[i].Start = loc.ToUTF16(tokens[i].Start)
		tokens[i].End = loc.ToUTF16(tokens[i].End)
	}

	return tokens
}

// New creates a lexer over an indexed document.
func New(loc *location.Location, opts Options) *Lexer {
	return &Lexer{
		r:    reader.NewWithLocation(loc),
		opts: opts,
	}
}

// Tokens runs the lexer to completion and returns the token sequence.
// Calling Tokens again returns the same sequence. Token points count bytes
// so they can slice the indexed text.
func (l *Lexer) Tokens() []Token {
	if l.tokens != nil {
		return l.tokens
	}

	l.tokens = make([]Token, 0, l.r.Location().Len()/8+1)
	l.run()

	return l.tokens
}

// InComment reports whether the input ended inside an unterminated comment.
func (l *Lexer) InComment() bool {
	return l.inComment
}

func (l *Lexer) run() {
	rules := []func() bool{
		l.tag,
		l.typeExpression,
		l.closer,
		l.delimiter,
		l.whitespace,
		l.markdown,
	}

	for !l.r.EOF() {
		if !l.inComment {
			if !l.opener() {
				l.r.Read()
			}
			continue
		}

		matched := false
		for _, rule := range rules {
			if rule() {
				matched = true
				break
			}
		}

		if !matched {
			l.r.Read()
		}
	}

	l.enter(KindEOF)
	l.exit(KindEOF)
}

// enter opens a token of the given kind at the cursor.
func (l *Lexer) enter(kind Kind) {
	assert.That(l.open == nil, "enter %s while %s is open", kind, l.openKind())
	l.open = &pending{kind: kind, start: l.r.Index()}
}

// exit closes the open token at the cursor, emitting it if it is kept.
func (l *Lexer) exit(kind Kind) {
	assert.That(l.open != nil, "exit %s with no open token", kind)
	assert.That(l.open.kind == kind, "exit %s while %s is open", kind, l.open.kind)

	start, end := l.open.start, l.r.Index()
	l.open = nil

	if !kind.Kept() {
		return
	}

	l.tokens = append(l.tokens, Token{
		Kind:  kind,
		Start: l.r.PointAt(start),
		End:   l.r.PointAt(end),
		Text:  l.r.Slice(start, end),
	})
}

func (l *Lexer) openKind() Kind {
	if l.open == nil {
		return KindEOF
	}
	return l.open.kind
}

// consume wraps n bytes at the cursor in a token of the given kind.
func (l *Lexer) consume(kind Kind, n int) {
	l.enter(kind)
	l.r.ReadN(n)
	l.exit(kind)
}
