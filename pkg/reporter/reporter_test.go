package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docblock/pkg/config"
	"github.com/yaklabco/docblock/pkg/dast"
	"github.com/yaklabco/docblock/pkg/docblock"
	"github.com/yaklabco/docblock/pkg/reporter"
	"github.com/yaklabco/docblock/pkg/runner"
)

const source = "/**\n * Adds numbers.\n * @param {number} a\n * @returns {number}\n */"

func testResult(t *testing.T) *runner.Result {
	t.Helper()

	root, err := docblock.Parse(source)
	require.NoError(t, err)

	syntaxErr := &docblock.SyntaxError{
		Err:   docblock.ErrUnterminatedComment,
		Point: dast.Point{Line: 1, Column: 1},
	}

	return runner.Collect(
		runner.FileOutcome{Path: "a.js", Root: root},
		runner.FileOutcome{Path: "b.js", Error: fmt.Errorf("b.js: %w", syntaxErr)},
	)
}

func newReporter(t *testing.T, opts reporter.Options) (reporter.Reporter, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	opts.Writer = &stdout
	opts.ErrorWriter = &stderr
	opts.Color = "never"

	rep, err := reporter.New(opts)
	require.NoError(t, err)
	return rep, &stdout, &stderr
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    config.OutputFormat
		wantErr bool
	}{
		{input: "", want: config.FormatJSON},
		{input: "json", want: config.FormatJSON},
		{input: "tree", want: config.FormatTree},
		{input: "summary", want: config.FormatSummary},
		{input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)
}

func TestJSONReporter_Envelope(t *testing.T) {
	t.Parallel()

	rep, stdout, stderr := newReporter(t, reporter.Options{Format: config.FormatJSON})

	failed, err := rep.Report(context.Background(), testResult(t))
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	var output struct {
		Version string               `json:"version"`
		Summary reporter.JSONSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &output))

	assert.Equal(t, "1.0.0", output.Version)
	assert.Equal(t, 1, output.Summary.FilesParsed)
	assert.Equal(t, 1, output.Summary.FilesErrored)
	assert.Equal(t, 2, output.Summary.BlockTags)
	assert.Equal(t, map[string]int{"@param": 1, "@returns": 1}, output.Summary.Tags)

	var files struct {
		Files []struct {
			Path  string         `json:"path"`
			Tree  map[string]any `json:"tree"`
			Error string         `json:"error"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &files))
	require.Len(t, files.Files, 2)
	assert.Equal(t, "root", files.Files[0].Tree["type"])
	assert.Nil(t, files.Files[1].Tree)
	assert.Contains(t, files.Files[1].Error, "unterminated comment")

	assert.Equal(t, "  b.js:1:1  error  unterminated comment\n", stderr.String())
}

func TestJSONReporter_Bare(t *testing.T) {
	t.Parallel()

	rep, stdout, _ := newReporter(t, reporter.Options{Format: config.FormatJSON, Bare: true, Compact: true})

	_, err := rep.Report(context.Background(), testResult(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout.String(), `{"type":"root"`))
	assert.Equal(t, 1, strings.Count(stdout.String(), "\n"), "compact output is one line")
}

func TestJSONReporter_NilResult(t *testing.T) {
	t.Parallel()

	rep, stdout, _ := newReporter(t, reporter.Options{Format: config.FormatJSON})

	failed, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, failed)
	assert.Contains(t, stdout.String(), `"files": []`)
}

func TestTreeReporter(t *testing.T) {
	t.Parallel()

	rep, stdout, stderr := newReporter(t, reporter.Options{Format: config.FormatTree})

	failed, err := rep.Report(context.Background(), testResult(t))
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	assert.True(t, strings.HasPrefix(stdout.String(), "a.js (1 comment)\nroot "))
	assert.Contains(t, stdout.String(), "blockTag")
	assert.NotContains(t, stdout.String(), "b.js")
	assert.Contains(t, stderr.String(), "b.js:1:1")
}

func TestTreeReporter_Bare(t *testing.T) {
	t.Parallel()

	rep, stdout, _ := newReporter(t, reporter.Options{Format: config.FormatTree, Bare: true})

	_, err := rep.Report(context.Background(), testResult(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout.String(), "root "))
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	rep, stdout, _ := newReporter(t, reporter.Options{Format: config.FormatSummary})

	failed, err := rep.Report(context.Background(), testResult(t))
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	output := stdout.String()
	assert.Contains(t, output, "FILE")
	assert.Contains(t, output, "failed")
	assert.Contains(t, output, "Block tags:        2")
	assert.Contains(t, output, "Parse failed")
}

func TestSummaryReporter_NoFiles(t *testing.T) {
	t.Parallel()

	rep, stdout, _ := newReporter(t, reporter.Options{Format: config.FormatSummary})

	_, err := rep.Report(context.Background(), runner.Collect())
	require.NoError(t, err)
	assert.Equal(t, "No files to parse.\n", stdout.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestReporter_WriteError(t *testing.T) {
	t.Parallel()

	rep, err := reporter.New(reporter.Options{
		Writer:      failingWriter{},
		ErrorWriter: &bytes.Buffer{},
		Format:      config.FormatTree,
		Color:       "never",
	})
	require.NoError(t, err)

	_, err = rep.Report(context.Background(), testResult(t))
	require.Error(t, err)
}
