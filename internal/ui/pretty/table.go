package pretty

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yaklabco/docblock/pkg/dast"
	"github.com/yaklabco/docblock/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minFileWidth     = 20
	minCountWidth    = 8
	heavySeparator   = "="
	defaultTermWidth = 100
	statusOK         = "ok"
	statusFailed     = "failed"
)

// TableRow represents a single file row.
type TableRow struct {
	File      string
	Comments  int
	BlockTags int
	Failed    bool
}

// TableFormatter formats per-file results as a styled table.
type TableFormatter struct {
	styles     *Styles
	termWidth  int
	workingDir string
}

// NewTableFormatter creates a new table formatter. Paths are shown
// relative to workingDir when possible.
func NewTableFormatter(styles *Styles, termWidth int, workingDir string) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:     styles,
		termWidth:  termWidth,
		workingDir: workingDir,
	}
}

// FormatTable formats runner results as a table of files.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(result.Files))
	for _, outcome := range result.Files {
		rows = append(rows, t.row(outcome))
	}

	fileWidth := minFileWidth
	for _, row := range rows {
		fileWidth = max(fileWidth, len(row.File))
	}
	maxFileWidth := t.termWidth - 3*(minCountWidth+tablePadding)
	fileWidth = min(fileWidth, max(maxFileWidth, minFileWidth))

	total := fileWidth + 3*(minCountWidth+tablePadding)

	var builder strings.Builder

	header := pad("FILE", fileWidth+tablePadding) +
		pad("COMMENTS", minCountWidth+tablePadding) +
		pad("TAGS", minCountWidth+tablePadding) +
		"STATUS"
	builder.WriteString(t.styles.TableHeader.Render(header) + "\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)) + "\n")

	for _, row := range rows {
		status := statusOK
		if row.Failed {
			status = statusFailed
		}

		line := pad(truncateFilePath(row.File, fileWidth), fileWidth+tablePadding) +
			pad(strconv.Itoa(row.Comments), minCountWidth+tablePadding) +
			pad(strconv.Itoa(row.BlockTags), minCountWidth+tablePadding) +
			status

		if row.Failed {
			line = t.styles.TableErrorRow.Render(line)
		}
		builder.WriteString(line + "\n")
	}

	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)) + "\n")

	return builder.String()
}

func (t *TableFormatter) row(outcome runner.FileOutcome) TableRow {
	row := TableRow{File: t.displayPath(outcome.Path), Failed: outcome.Error != nil}
	if outcome.Root == nil {
		return row
	}

	row.Comments = len(dast.FindByKind(outcome.Root, dast.NodeComment))
	row.BlockTags = len(dast.FindByKind(outcome.Root, dast.NodeBlockTag))
	return row
}

func (t *TableFormatter) displayPath(path string) string {
	if t.workingDir == "" {
		return path
	}
	rel, err := filepath.Rel(t.workingDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func pad(str string, width int) string {
	if len(str) >= width {
		return str + " "
	}
	return str + strings.Repeat(" ", width-len(str))
}

// truncateFilePath shortens a path from the left, keeping the file name.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return fmt.Sprintf("...%s", path[len(path)-(maxLen-3):])
}
