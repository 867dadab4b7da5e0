package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/docblock/internal/ui/pretty"
	"github.com/yaklabco/docblock/pkg/runner"
)

// TreeReporter prints each parsed file as an indented tree.
type TreeReporter struct {
	opts      Options
	styles    *pretty.Styles
	errStyles *pretty.Styles
	bw        *bufio.Writer
}

// NewTreeReporter creates a new tree reporter.
func NewTreeReporter(opts Options) *TreeReporter {
	return &TreeReporter{
		opts:      opts,
		styles:    pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		errStyles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.ErrorWriter)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TreeReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	failed := reportErrors(r.opts.ErrorWriter, r.errStyles, result)
	if result == nil {
		return failed, nil
	}

	wrote := false
	for _, file := range result.Files {
		if file.Root == nil {
			continue
		}

		// Blank line between files
		if wrote {
			fmt.Fprintln(r.bw)
		}
		wrote = true

		if !r.opts.Bare {
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.Path, file.Root.ChildCount()))
		}
		fmt.Fprint(r.bw, r.styles.FormatTree(file.Root))
	}

	return failed, nil
}
