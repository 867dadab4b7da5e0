// Package runner provides multi-file docblock parsing. Each file is an
// independent parse; the runner only discovers, schedules and collects.
package runner

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/docblock/pkg/docblock"
)

// Options controls multi-file parsing behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// that may hold docblocks. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are gitignore-style patterns, relative to WorkingDir,
	// used to skip files or directories. These merge ignore rules from
	// config and CLI (e.g. --ignore).
	ExcludeGlobs []string

	// NoGitignore disables .gitignore handling during directory walks.
	NoGitignore bool

	// Jobs controls the maximum number of concurrent parses.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// ParseOptions are passed to every docblock.ParseFileContext call.
	ParseOptions []docblock.Option

	// Logger receives per-file debug events. Nil discards them.
	Logger *log.Logger
}

// DefaultExtensions returns the default set of source file extensions.
func DefaultExtensions() []string {
	return []string{
		".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs", ".mts", ".cts",
		".java", ".php", ".go", ".css", ".scss",
	}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
