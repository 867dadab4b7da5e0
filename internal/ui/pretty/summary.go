package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/docblock/pkg/runner"
)

const (
	summaryDividerWidth = 40
	summaryTopTags      = 10
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "14 comments, 31 block tags in 6 files (1 failed)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	parts := []string{
		fmt.Sprintf("%d %s", stats.Comments, plural(stats.Comments, "comment", "comments")),
		fmt.Sprintf("%d %s", stats.BlockTags, plural(stats.BlockTags, "block tag", "block tags")),
	}

	msg := strings.Join(parts, ", ") +
		fmt.Sprintf(" in %d %s", stats.FilesParsed, plural(stats.FilesParsed, "file", "files"))

	if stats.FilesErrored > 0 {
		return msg + " " + s.Failure.Render(fmt.Sprintf("(%d failed)", stats.FilesErrored)) + "\n"
	}
	return s.Success.Render(msg) + "\n"
}

// FormatSummary formats run statistics as a summary block. The most used
// tags are listed by count, ties broken by name.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label string, value int) {
		builder.WriteString(fmt.Sprintf("  %-19s", label+":") + s.SummaryValue.Render(strconv.Itoa(value)) + "\n")
	}

	row("Files parsed", stats.FilesParsed)
	if stats.FilesErrored > 0 {
		builder.WriteString(fmt.Sprintf("  %-19s", "Files failed:") + s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	row("Files with docs", stats.FilesWithComments)

	builder.WriteString("\n")

	row("Comments", stats.Comments)
	row("Block tags", stats.BlockTags)
	row("Inline tags", stats.InlineTags)
	row("Code blocks", stats.CodeBlocks)

	if tags := topTags(stats.TagCounts, summaryTopTags); len(tags) > 0 {
		builder.WriteString("\n")
		builder.WriteString("  " + s.Bold.Render("Tags") + "\n")
		for _, tag := range tags {
			builder.WriteString(fmt.Sprintf("    %-17s", tag) + s.SummaryValue.Render(strconv.Itoa(stats.TagCounts[tag])) + "\n")
		}
	}

	builder.WriteString("\n")

	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Parse failed"))
	} else {
		builder.WriteString(s.Success.Render("Parse succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// topTags returns at most limit tags ordered by descending count.
func topTags(counts map[string]int, limit int) []string {
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}

	slices.SortFunc(tags, func(a, b string) int {
		if counts[a] != counts[b] {
			return counts[b] - counts[a]
		}
		return strings.Compare(a, b)
	})

	if len(tags) > limit {
		tags = tags[:limit]
	}
	return tags
}
