package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"

	"github.com/yaklabco/docblock/pkg/dast"
	"github.com/yaklabco/docblock/pkg/markdown"
)

func TestExtension(t *testing.T) {
	t.Parallel()

	for _, name := range markdown.ExtensionNames() {
		ext, err := markdown.Extension(name)
		require.NoError(t, err, name)
		assert.NotNil(t, ext, name)
	}

	_, err := markdown.Extension(" Table ")
	require.NoError(t, err)

	_, err = markdown.Extension("typographer")
	require.ErrorIs(t, err, markdown.ErrUnknownExtension)
}

func TestExtensions(t *testing.T) {
	t.Parallel()

	exts, err := markdown.Extensions([]string{"strikethrough", "table"})
	require.NoError(t, err)
	assert.Len(t, exts, 2)

	_, err = markdown.Extensions([]string{"table", "nope"})
	require.ErrorIs(t, err, markdown.ErrUnknownExtension)
}

func TestParseWithNamedExtension(t *testing.T) {
	t.Parallel()

	strike, err := markdown.Extension("strikethrough")
	require.NoError(t, err)

	nodes, err := markdown.Parse("~~gone~~", dast.Position{Start: at(1, 1, 0)}, markdown.Options{
		Extensions: []goldmark.Extender{strike},
	})
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, dast.NodeDelete, nodes[0].FirstChild.Kind)
}
