package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/docblock/internal/ui/pretty"
	"github.com/yaklabco/docblock/pkg/runner"
)

// SummaryReporter prints a per-file table followed by aggregate counts.
type SummaryReporter struct {
	opts      Options
	styles    *pretty.Styles
	errStyles *pretty.Styles
	bw        *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{
		opts:      opts,
		styles:    pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		errStyles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.ErrorWriter)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	failed := reportErrors(r.opts.ErrorWriter, r.errStyles, result)

	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No files to parse."))
		return failed, nil
	}

	table := pretty.NewTableFormatter(r.styles, r.opts.TermWidth, r.opts.WorkingDir)
	fmt.Fprint(r.bw, table.FormatTable(result))
	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))

	return failed, nil
}
