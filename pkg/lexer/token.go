package lexer

import "github.com/yaklabco/docblock/pkg/dast"

// Kind classifies a token.
type Kind uint8

// Token kinds, in rule priority order after KindOpener.
const (
	KindOpener Kind = iota
	KindTag
	KindTypeExpression
	KindCloser
	KindDelimiter
	KindWhitespace
	KindMarkdown
	KindEOF
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindOpener:
		return "opener"
	case KindTag:
		return "tag"
	case KindTypeExpression:
		return "typeExpression"
	case KindCloser:
		return "closer"
	case KindDelimiter:
		return "delimiter"
	case KindWhitespace:
		return "whitespace"
	case KindMarkdown:
		return "markdown"
	case KindEOF:
		return "eof"
	default:
		return "unknown"
	}
}

// Kept returns true for kinds that are emitted into the token sequence.
// Delimiters and whitespace are consumed silently.
func (k Kind) Kept() bool {
	return k != KindDelimiter && k != KindWhitespace
}

// Token is a classified span of source text.
type Token struct {
	Kind  Kind
	Start dast.Point
	End   dast.Point

	// Text is the source text covered by the token.
	Text string
}

// Position returns the token's span.
func (t Token) Position() dast.Position {
	return dast.Position{Start: t.Start, End: t.End}
}

// Len returns the length of the token text in bytes.
func (t Token) Len() int {
	return len(t.Text)
}
