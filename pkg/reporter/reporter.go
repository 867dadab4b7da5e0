// Package reporter writes parse results in the supported output formats.
package reporter

import (
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/docblock/internal/ui/pretty"
	"github.com/yaklabco/docblock/pkg/config"
	"github.com/yaklabco/docblock/pkg/runner"
)

// Reporter formats and writes parse results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of files that failed and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}

	format := opts.Format
	if format == "" {
		format = config.FormatJSON
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case config.FormatTree:
		return NewTreeReporter(opts), nil
	case config.FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return NewJSONReporter(opts), nil
	}
}

// reportErrors writes each per-file failure to w and returns the count.
func reportErrors(w io.Writer, styles *pretty.Styles, result *runner.Result) int {
	if result == nil {
		return 0
	}

	failed := 0
	for _, file := range result.Files {
		if file.Error == nil {
			continue
		}
		fmt.Fprint(w, styles.FormatError(file.Path, file.Error))
		failed++
	}
	return failed
}
