package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecorationLen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want int
	}{
		{"foo", 0},
		{" * foo", 3},
		{" *  foo", 4},
		{" *     code", 4},
		{" * \tfoo", 4},
		{"\t*\tfoo", 3},
		{" *", 2},
		{"   ", 3},
		{"*foo", 1},
		{"  - item", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, decorationLen(tt.line), "line %q", tt.line)
	}
}

func TestStrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		column int
		text   string
		cols   []int
	}{
		{
			name:   "single line",
			raw:    "Hello",
			column: 4,
			text:   "Hello",
			cols:   []int{3},
		},
		{
			name:   "continuation lines",
			raw:    "a\n * b\n *",
			column: 5,
			text:   "a\nb\n",
			cols:   []int{4, 3, 2},
		},
		{
			name:   "crlf kept",
			raw:    "a\r\n * b",
			column: 1,
			text:   "a\r\nb",
			cols:   []int{0, 3},
		},
		{
			name:   "trailing terminator",
			raw:    "a\n",
			column: 1,
			text:   "a\n",
			cols:   []int{0, 0},
		},
		{
			name:   "two blanks after the delimiter are decoration",
			raw:    "a\n *  b\n *     c",
			column: 4,
			text:   "a\nb\n   c",
			cols:   []int{3, 4, 4},
		},
		{
			name:   "nested list indentation survives",
			raw:    "- a\n *    - b",
			column: 4,
			text:   "- a\n  - b",
			cols:   []int{3, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := strip(tt.raw, tt.column)
			assert.Equal(t, tt.text, got.text)
			assert.Equal(t, tt.cols, got.cols)
		})
	}
}

func TestFence(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "```\nfoo()\n```", fence("foo()"))
	assert.Equal(t, "````\na ``` b\n````", fence("a ``` b"))
}

func TestSplitInlineTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw   string
		tag   string
		name  string
		value string
	}{
		{"{@link Foo}", "@link", "@link", "Foo"},
		{"{@link  Foo bar }", "@link", "@link", "Foo"},
		{"{@inheritDoc}", "@inheritDoc", "@inheritDoc", ""},
		{"{@link\tFoo|label}", "@link", "@link", "Foo|label"},
		{"{@link\n   Foo}", "@link", "@link", "Foo"},
	}

	for _, tt := range tests {
		tag, name, value := splitInlineTag(tt.raw)
		assert.Equal(t, tt.tag, tag, tt.raw)
		assert.Equal(t, tt.name, name, tt.raw)
		assert.Equal(t, tt.value, value, tt.raw)
	}
}
