package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/docblock/internal/ui/pretty"
	"github.com/yaklabco/docblock/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name     string
		stats    runner.Stats
		expected string
	}{
		{
			name:     "singular",
			stats:    runner.Stats{FilesParsed: 1, Comments: 1, BlockTags: 1},
			expected: "1 comment, 1 block tag in 1 file\n",
		},
		{
			name:     "plural",
			stats:    runner.Stats{FilesParsed: 6, Comments: 14, BlockTags: 31},
			expected: "14 comments, 31 block tags in 6 files\n",
		},
		{
			name:     "failures",
			stats:    runner.Stats{FilesParsed: 2, FilesErrored: 1, Comments: 3},
			expected: "3 comments, 0 block tags in 2 files (1 failed)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary_Success(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesParsed:       3,
		FilesWithComments: 2,
		Comments:          5,
		BlockTags:         7,
		InlineTags:        2,
		CodeBlocks:        1,
		TagCounts:         map[string]int{"@param": 4, "@returns": 2, "@example": 1},
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files parsed:      3")
	assert.Contains(t, result, "Files with docs:   2")
	assert.Contains(t, result, "Comments:          5")
	assert.Contains(t, result, "Block tags:        7")
	assert.Contains(t, result, "Inline tags:       2")
	assert.Contains(t, result, "Code blocks:       1")
	assert.Contains(t, result, "Parse succeeded")
	assert.NotContains(t, result, "Files failed")

	param := strings.Index(result, "@param")
	returns := strings.Index(result, "@returns")
	example := strings.Index(result, "@example")
	assert.Less(t, param, returns, "higher counts come first")
	assert.Less(t, returns, example, "higher counts come first")
}

func TestFormatSummary_Failure(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{FilesParsed: 2, FilesErrored: 1})

	assert.Contains(t, result, "Files failed:      1")
	assert.Contains(t, result, "Parse failed")
	assert.NotContains(t, result, "Tags")
}

func TestFormatSummary_TagTiesSortByName(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{
		TagCounts: map[string]int{"@see": 1, "@deprecated": 1},
	})

	assert.Less(t, strings.Index(result, "@deprecated"), strings.Index(result, "@see"))
}
