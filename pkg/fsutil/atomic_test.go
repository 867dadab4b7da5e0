package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/docblock/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing string
		content  string
		mode     os.FileMode
		wantMode os.FileMode
	}{
		{name: "writes new file", content: "flavor: gfm\n", mode: 0o644, wantMode: 0o644},
		{name: "overwrites existing file", existing: "flavor: commonmark\n", content: "flavor: gfm\n", mode: 0o644, wantMode: 0o644},
		{name: "preserves specified mode", content: "x", mode: 0o600, wantMode: 0o600},
		{name: "uses default mode when zero", content: "x", mode: 0, wantMode: fsutil.DefaultFileMode},
		{name: "writes empty content", content: "", mode: 0o644, wantMode: 0o644},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), ".docblock.yml")
			if tt.existing != "" {
				if err := os.WriteFile(path, []byte(tt.existing), 0o644); err != nil {
					t.Fatalf("setup: %v", err)
				}
			}

			if err := fsutil.WriteAtomic(context.Background(), path, []byte(tt.content), tt.mode); err != nil {
				t.Fatalf("WriteAtomic() error = %v", err)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read back: %v", err)
			}
			if string(got) != tt.content {
				t.Errorf("content = %q, want %q", got, tt.content)
			}

			stat, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stat: %v", err)
			}
			if gotMode := stat.Mode().Perm(); gotMode != tt.wantMode {
				t.Errorf("mode = %o, want %o", gotMode, tt.wantMode)
			}
		})
	}
}

func TestWriteAtomic_Cancelled(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.yml")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := fsutil.WriteAtomic(ctx, path, []byte("content"), 0o644); err == nil {
		t.Fatal("expected error for cancelled context")
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file should not have been created")
	}
}

func TestWriteAtomic_NoTempFileLeftOnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	// The target is an existing directory, so the final rename fails.
	target := filepath.Join(dir, "taken")
	if err := os.MkdirAll(filepath.Join(target, "child"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := fsutil.WriteAtomic(context.Background(), target, []byte("content"), 0o644); err == nil {
		t.Fatal("expected error when the target is a non-empty directory")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp.") {
			t.Errorf("temp file left behind: %s", entry.Name())
		}
	}
}
