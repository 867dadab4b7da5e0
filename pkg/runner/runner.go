package runner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/docblock/internal/logging"
	"github.com/yaklabco/docblock/pkg/docblock"
	"github.com/yaklabco/docblock/pkg/fsutil"
)

// ReadFileFunc reads a discovered file.
type ReadFileFunc func(path string) ([]byte, error)

// Runner orchestrates multi-file parsing.
type Runner struct {
	// ReadFile loads file contents. Defaults to fsutil.ReadSource.
	ReadFile ReadFileFunc
}

// New creates a Runner reading from the local filesystem.
func New() *Runner {
	return &Runner{ReadFile: fsutil.ReadSource}
}

// Run discovers files under opts.Paths and parses them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Parses at most opts.Jobs files at once
//   - Records per-file errors without stopping other files
//   - Respects context cancellation
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	return r.RunFiles(ctx, files, opts)
}

// RunFiles parses an explicit list of files, skipping discovery.
func (r *Runner) RunFiles(ctx context.Context, files []string, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	readFile := r.ReadFile
	if readFile == nil {
		readFile = fsutil.ReadSource
	}

	start := time.Now()

	// Each goroutine owns one slot, so outcomes stay in discovery order.
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			outcomes[i] = parseOne(groupCtx, readFile, path, opts.ParseOptions)
			done[i] = true

			if outcomes[i].Error != nil {
				logger.Debug("parse failed",
					logging.FieldPath, path,
					logging.FieldError, outcomes[i].Error)
			}
			return nil
		})
	}

	waitErr := group.Wait()

	for i := range files {
		if done[i] {
			result.accumulate(outcomes[i])
		}
	}

	logger.Debug("run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldJobs, jobs,
		logging.FieldDuration, time.Since(start))

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	if waitErr != nil {
		return result, fmt.Errorf("run cancelled: %w", waitErr)
	}

	return result, nil
}

// parseOne reads and parses a single file. Errors are recorded on the
// outcome rather than returned so one bad file does not cancel the rest.
func parseOne(ctx context.Context, readFile ReadFileFunc, path string, opts []docblock.Option) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, err := readFile(path)
	if err != nil {
		outcome.Error = fmt.Errorf("read %s: %w", path, err)
		return outcome
	}

	root, err := docblock.ParseFileContext(ctx, docblock.SourceFile{Name: path, Content: string(content)}, opts...)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	outcome.Root = root
	return outcome
}
