package lexer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docblock/pkg/dast"
	"github.com/yaklabco/docblock/pkg/lexer"
	"github.com/yaklabco/docblock/pkg/location"
)

type tok struct {
	kind lexer.Kind
	text string
}

func summarize(tokens []lexer.Token) []tok {
	out := make([]tok, 0, len(tokens))
	for _, token := range tokens {
		out = append(out, tok{token.Kind, token.Text})
	}
	return out
}

func TestLex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		opts lexer.Options
		want []tok
	}{
		{
			name: "empty",
			doc:  "",
			want: []tok{{lexer.KindEOF, ""}},
		},
		{
			name: "no comment",
			doc:  "const x = 1; // @param nope",
			want: []tok{{lexer.KindEOF, ""}},
		},
		{
			name: "description only",
			doc:  "/**\n * Hello world.\n */",
			want: []tok{
				{lexer.KindOpener, "/**"},
				{lexer.KindMarkdown, "Hello world."},
				{lexer.KindCloser, "*/"},
				{lexer.KindEOF, ""},
			},
		},
		{
			name: "single line",
			doc:  "/** Hello */",
			want: []tok{
				{lexer.KindOpener, "/**"},
				{lexer.KindMarkdown, "Hello"},
				{lexer.KindCloser, "*/"},
				{lexer.KindEOF, ""},
			},
		},
		{
			name: "tag with type and text",
			doc:  "/** @param {number} x - desc */",
			want: []tok{
				{lexer.KindOpener, "/**"},
				{lexer.KindTag, "@param"},
				{lexer.KindTypeExpression, "{number}"},
				{lexer.KindMarkdown, "x - desc"},
				{lexer.KindCloser, "*/"},
				{lexer.KindEOF, ""},
			},
		},
		{
			name: "multi line description stops before tag",
			doc:  "/**\n * One\n * two.\n *\n * @returns {string}\n */",
			want: []tok{
				{lexer.KindOpener, "/**"},
				{lexer.KindMarkdown, "One\n * two."},
				{lexer.KindTag, "@returns"},
				{lexer.KindTypeExpression, "{string}"},
				{lexer.KindCloser, "*/"},
				{lexer.KindEOF, ""},
			},
		},
		{
			name: "nested braces",
			doc:  "/** @type {{a: {b: number}}} */",
			want: []tok{
				{lexer.KindOpener, "/**"},
				{lexer.KindTag, "@type"},
				{lexer.KindTypeExpression, "{{a: {b: number}}}"},
				{lexer.KindCloser, "*/"},
				{lexer.KindEOF, ""},
			},
		},
		{
			name: "unterminated type expression is markdown",
			doc:  "/** @type {number */",
			want: []tok{
				{lexer.KindOpener, "/**"},
				{lexer.KindTag, "@type"},
				{lexer.KindMarkdown, "{number"},
				{lexer.KindCloser, "*/"},
				{lexer.KindEOF, ""},
			},
		},
		{
			name: "inline tag is not a type expression",
			doc:  "/** @see {@link Foo} */",
			want: []tok{
				{lexer.KindOpener, "/**"},
				{lexer.KindTag, "@see"},
				{lexer.KindMarkdown, "{@link Foo}"},
				{lexer.KindCloser, "*/"},
				{lexer.KindEOF, ""},
			},
		},
		{
			name: "at sign inside prose",
			doc:  "/** mail me@example.com */",
			want: []tok{
				{lexer.KindOpener, "/**"},
				{lexer.KindMarkdown, "mail me@example.com"},
				{lexer.KindCloser, "*/"},
				{lexer.KindEOF, ""},
			},
		},
		{
			name: "single star comment ignored",
			doc:  "/* not a docblock */",
			want: []tok{{lexer.KindEOF, ""}},
		},
		{
			name: "single star comment in multiline mode",
			doc:  "/* doc */",
			opts: lexer.Options{Multiline: true},
			want: []tok{
				{lexer.KindOpener, "/*"},
				{lexer.KindMarkdown, "doc"},
				{lexer.KindCloser, "*/"},
				{lexer.KindEOF, ""},
			},
		},
		{
			name: "empty comment",
			doc:  "/***/",
			want: []tok{
				{lexer.KindOpener, "/**"},
				{lexer.KindCloser, "*/"},
				{lexer.KindEOF, ""},
			},
		},
		{
			name: "unterminated",
			doc:  "/** dangling",
			want: []tok{
				{lexer.KindOpener, "/**"},
				{lexer.KindMarkdown, "dangling"},
				{lexer.KindEOF, ""},
			},
		},
		{
			name: "two comments",
			doc:  "/** a */\ncode();\n/** @b */",
			want: []tok{
				{lexer.KindOpener, "/**"},
				{lexer.KindMarkdown, "a"},
				{lexer.KindCloser, "*/"},
				{lexer.KindOpener, "/**"},
				{lexer.KindTag, "@b"},
				{lexer.KindCloser, "*/"},
				{lexer.KindEOF, ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, summarize(lexer.Lex(tt.doc, tt.opts)))
		})
	}
}

func TestTokenPositions(t *testing.T) {
	t.Parallel()

	tokens := lexer.Lex("/**\n * Hello world.\n */", lexer.Options{})
	require.Len(t, tokens, 4)

	text := tokens[1]
	assert.Equal(t, dast.Point{Line: 2, Column: 4, Offset: 7}, text.Start)
	assert.Equal(t, dast.Point{Line: 2, Column: 16, Offset: 19}, text.End)
	assert.Equal(t, 12, text.Len())

	eof := tokens[3]
	assert.Equal(t, eof.Start, eof.End)
	assert.Equal(t, 23, eof.Start.Offset)
}

func TestTokenPositionsFrom(t *testing.T) {
	t.Parallel()

	from := dast.Point{Line: 10, Column: 3, Offset: 100}
	tokens := lexer.Lex("/** x */", lexer.Options{From: from})
	require.Len(t, tokens, 4)

	assert.Equal(t, from, tokens[0].Start)
	assert.Equal(t, dast.Point{Line: 10, Column: 7, Offset: 104}, tokens[1].Start)
}

func TestTokenPositionsUTF16(t *testing.T) {
	t.Parallel()

	tokens := lexer.Lex("/** é x */", lexer.Options{})
	require.Len(t, tokens, 4)

	text := tokens[1]
	assert.Equal(t, "é x", text.Text)
	assert.Equal(t, dast.Point{Line: 1, Column: 5, Offset: 4}, text.Start)
	assert.Equal(t, dast.Point{Line: 1, Column: 8, Offset: 7}, text.End)
	assert.Equal(t, 4, text.Len())
	assert.Equal(t, 10, tokens[3].Start.Offset)
}

func TestLexerTokensMemoized(t *testing.T) {
	t.Parallel()

	lex := lexer.New(location.New("/** open"), lexer.Options{})

	first := lex.Tokens()
	second := lex.Tokens()

	require.Len(t, first, 3)
	assert.Equal(t, first, second)
	assert.True(t, lex.InComment())
}

func TestKindKept(t *testing.T) {
	t.Parallel()

	assert.False(t, lexer.KindDelimiter.Kept())
	assert.False(t, lexer.KindWhitespace.Kept())
	assert.True(t, lexer.KindMarkdown.Kept())
	assert.Equal(t, "typeExpression", lexer.KindTypeExpression.String())
}

func TestLexLongBlankRuns(t *testing.T) {
	t.Parallel()

	pad := strings.Repeat(" ", 200_000)

	tests := []struct {
		name string
		doc  string
		want []tok
	}{
		{
			name: "padding inside text",
			doc:  "/** a" + pad + "b */",
			want: []tok{
				{lexer.KindOpener, "/**"},
				{lexer.KindMarkdown, "a" + pad + "b"},
				{lexer.KindCloser, "*/"},
				{lexer.KindEOF, ""},
			},
		},
		{
			name: "padding before closer",
			doc:  "/** a" + pad + "*/",
			want: []tok{
				{lexer.KindOpener, "/**"},
				{lexer.KindMarkdown, "a"},
				{lexer.KindCloser, "*/"},
				{lexer.KindEOF, ""},
			},
		},
		{
			name: "padded lines before a tag",
			doc:  "/** a" + pad + "\n *" + pad + "\n * @x */",
			want: []tok{
				{lexer.KindOpener, "/**"},
				{lexer.KindMarkdown, "a"},
				{lexer.KindTag, "@x"},
				{lexer.KindCloser, "*/"},
				{lexer.KindEOF, ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, summarize(lexer.Lex(tt.doc, lexer.Options{})))
		})
	}
}

func BenchmarkLexPaddedLine(b *testing.B) {
	source := "/** a" + strings.Repeat(" ", 100_000) + "b */"

	b.ReportAllocs()
	b.SetBytes(int64(len(source)))

	b.ResetTimer()
	for range b.N {
		lexer.Lex(source, lexer.Options{})
	}
}

func BenchmarkLex(b *testing.B) {
	source := strings.Repeat("/**\n * Adds {@link a} to b.\n * @param {number} a\n * @returns {number}\n */\nfunction add(a, b) {}\n", 200)

	b.ReportAllocs()
	b.SetBytes(int64(len(source)))

	b.ResetTimer()
	for range b.N {
		lexer.Lex(source, lexer.Options{})
	}
}
