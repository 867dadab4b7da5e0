package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/docblock/internal/ui/pretty"
	"github.com/yaklabco/docblock/pkg/dast"
	"github.com/yaklabco/docblock/pkg/runner"
)

// jsonVersion is the version of the JSON envelope.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path  string     `json:"path"`
	Tree  *dast.Node `json:"tree,omitempty"`
	Error string     `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesParsed  int            `json:"filesParsed"`
	FilesErrored int            `json:"filesErrored"`
	Comments     int            `json:"comments"`
	BlockTags    int            `json:"blockTags"`
	InlineTags   int            `json:"inlineTags"`
	CodeBlocks   int            `json:"codeBlocks"`
	Tags         map[string]int `json:"tags"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter. Errors are also written to
// the error writer so that they are visible when stdout is piped.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.ErrorWriter)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	failed := reportErrors(r.opts.ErrorWriter, r.styles, result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if r.opts.Bare {
		if result == nil || len(result.Files) == 0 || result.Files[0].Root == nil {
			return failed, nil
		}
		if err := encoder.Encode(result.Files[0].Root); err != nil {
			return failed, fmt.Errorf("encode JSON: %w", err)
		}
		return failed, nil
	}

	if err := encoder.Encode(buildOutput(result)); err != nil {
		return failed, fmt.Errorf("encode JSON: %w", err)
	}
	return failed, nil
}

func buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{Tags: make(map[string]int)},
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		fileResult := JSONFileResult{Path: file.Path, Tree: file.Root}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesParsed:  stats.FilesParsed,
		FilesErrored: stats.FilesErrored,
		Comments:     stats.Comments,
		BlockTags:    stats.BlockTags,
		InlineTags:   stats.InlineTags,
		CodeBlocks:   stats.CodeBlocks,
		Tags:         stats.TagCounts,
	}
	if output.Summary.Tags == nil {
		output.Summary.Tags = make(map[string]int)
	}

	return output
}
