package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// Discover finds source files under opts.Paths and returns their absolute
// paths, sorted and deduplicated.
//
// Directories are walked recursively. Hidden entries, paths matched by
// opts.ExcludeGlobs and paths matched by WorkingDir/.gitignore are skipped.
// Symlinked files are parsed; symlinked directories are not entered.
// Files named explicitly only need a source extension and must not be
// excluded.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	f := newFilter(workDir, opts)

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if f.source(absPath) && !f.excluded(absPath, false) {
				add(absPath)
			}
			continue
		}

		if err := f.walk(ctx, absPath, add); err != nil {
			return nil, err
		}
	}

	sort.Strings(files)

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}

	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// filter decides which paths under the working directory are parsed.
type filter struct {
	workDir    string
	extensions map[string]bool

	// exclude holds the --ignore and config globs, gitignore the
	// working directory's .gitignore. Either may be nil.
	exclude   *gitignore.GitIgnore
	gitignore *gitignore.GitIgnore
}

func newFilter(workDir string, opts Options) *filter {
	f := &filter{
		workDir:    workDir,
		extensions: make(map[string]bool),
	}

	for _, ext := range opts.effectiveExtensions() {
		f.extensions[strings.ToLower(ext)] = true
	}

	if len(opts.ExcludeGlobs) > 0 {
		f.exclude = gitignore.CompileIgnoreLines(opts.ExcludeGlobs...)
	}
	if !opts.NoGitignore {
		f.gitignore = loadGitignore(workDir)
	}

	return f
}

// loadGitignore compiles workDir/.gitignore. A missing or unreadable file
// means nothing is ignored.
func loadGitignore(workDir string) *gitignore.GitIgnore {
	path := filepath.Join(workDir, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	ignore, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return ignore
}

// source reports whether path has a source extension.
func (f *filter) source(path string) bool {
	return f.extensions[strings.ToLower(filepath.Ext(path))]
}

// excluded reports whether an exclude glob matches path.
func (f *filter) excluded(path string, isDir bool) bool {
	return matches(f.exclude, f.rel(path), isDir)
}

// ignored reports whether .gitignore matches path.
func (f *filter) ignored(path string, isDir bool) bool {
	return matches(f.gitignore, f.rel(path), isDir)
}

// rel returns path relative to the working directory with forward slashes.
// Paths outside the working directory come back starting with "..".
func (f *filter) rel(path string) string {
	rel, err := filepath.Rel(f.workDir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func matches(ignore *gitignore.GitIgnore, rel string, isDir bool) bool {
	if ignore == nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}
	if ignore.MatchesPath(rel) {
		return true
	}
	return isDir && ignore.MatchesPath(rel+"/")
}

// walk adds every parseable file under root.
func (f *filter) walk(ctx context.Context, root string, add func(string)) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if path == root {
			return nil
		}

		hidden := strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || f.excluded(path, true) || f.ignored(path, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if hidden || !f.source(path) || !regularFile(path, entry) {
			return nil
		}
		if f.excluded(path, false) || f.ignored(path, false) {
			return nil
		}

		add(path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}

	return nil
}

// regularFile reports whether entry is a regular file or a symlink to one.
func regularFile(path string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}

	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
