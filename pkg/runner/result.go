package runner

import "github.com/yaklabco/docblock/pkg/dast"

// FileOutcome holds the parse result for one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Root is the parsed tree. Nil when Error is set.
	Root *dast.Node

	// Error is set if the file could not be read or parsed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of files parsed without error.
	FilesParsed int

	// FilesErrored is the number of files that failed to read or parse.
	FilesErrored int

	// FilesWithComments is the number of parsed files holding at least one docblock.
	FilesWithComments int

	// Comments is the total number of docblock comments.
	Comments int

	// BlockTags is the total number of block tags.
	BlockTags int

	// InlineTags is the total number of inline tags.
	InlineTags int

	// CodeBlocks is the total number of code nodes.
	CodeBlocks int

	// TagCounts maps block tags (as written, e.g. "@param") to occurrences.
	TagCounts map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to parse.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// Errors returns the per-file errors in file order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}

	var errs []error
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			errs = append(errs, outcome.Error)
		}
	}
	return errs
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		TagCounts: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Root == nil {
		return
	}

	r.Stats.FilesParsed++

	comments := 0
	_ = dast.Walk(outcome.Root, func(n *dast.Node) error {
		switch n.Kind {
		case dast.NodeComment:
			comments++
		case dast.NodeBlockTag:
			r.Stats.BlockTags++
			r.Stats.TagCounts[n.Tag]++
		case dast.NodeInlineTag:
			r.Stats.InlineTags++
		case dast.NodeCode:
			r.Stats.CodeBlocks++
		}
		return nil
	})

	r.Stats.Comments += comments
	if comments > 0 {
		r.Stats.FilesWithComments++
	}
}

// Collect builds a Result with statistics from outcomes produced outside
// a Run, such as a document read from stdin.
func Collect(outcomes ...FileOutcome) *Result {
	result := &Result{
		Files: make([]FileOutcome, 0, len(outcomes)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(outcomes)

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}
