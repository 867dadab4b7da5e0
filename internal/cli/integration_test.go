package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docblock/internal/cli"
	"github.com/yaklabco/docblock/pkg/config"
)

// testSource holds one docblock with a description, a typed param and an example.
const testSource = "/**\n * Adds numbers.\n * @param {number} a\n * @example\n * add(1)\n */\nfunction add(a) {}\n"

// execute runs the root command and returns stdout, stderr and the error.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeConfig writes a config file so that each test has an explicit layer.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".docblock.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// findNode returns the first node of the given type in a decoded JSON tree.
func findNode(node map[string]any, nodeType string) map[string]any {
	if node["type"] == nodeType {
		return node
	}
	children, _ := node["children"].([]any)
	for _, child := range children {
		childMap, ok := child.(map[string]any)
		if !ok {
			continue
		}
		if found := findNode(childMap, nodeType); found != nil {
			return found
		}
	}
	return nil
}

func TestIntegration_ParseStdinJSON(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "flavor: commonmark\n")
	stdout, _, err := execute(t, testSource, "parse", "--config", cfg, "--stdin")
	require.NoError(t, err)

	var root map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &root))

	assert.Equal(t, "root", root["type"])

	tag := findNode(root, "blockTag")
	require.NotNil(t, tag)
	assert.Equal(t, "@param", tag["tag"])
	assert.Equal(t, "param", tag["name"])

	typeExpr := findNode(root, "typeExpression")
	require.NotNil(t, typeExpr)
	assert.Equal(t, "number", typeExpr["value"])

	code := findNode(root, "code")
	require.NotNil(t, code)
	assert.Equal(t, "add(1)", code["value"])
}

func TestIntegration_ParseFilesJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.js"), []byte(testSource), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"), []byte("/** Only text. */\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("/** skipped */"), 0o644))

	cfg := writeConfig(t, "flavor: gfm\n")
	stdout, _, err := execute(t, "", "parse", "--config", cfg, dir)
	require.NoError(t, err)

	var output struct {
		Files []struct {
			Path  string         `json:"path"`
			Tree  map[string]any `json:"tree"`
			Error string         `json:"error"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))

	files := output.Files
	require.Len(t, files, 2)

	assert.Equal(t, "a.ts", filepath.Base(files[0].Path))
	assert.Equal(t, "b.js", filepath.Base(files[1].Path))
	assert.Empty(t, files[0].Error)
	assert.Equal(t, "root", files[0].Tree["type"])
	assert.NotNil(t, findNode(files[1].Tree, "blockTag"))
}

func TestIntegration_TreeFormat(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "flavor: commonmark\n")
	stdout, _, err := execute(t, testSource, "parse", "--config", cfg, "--stdin", "--format", "tree")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "root 1:1-"), "stdin trees have no file header")
	assert.Contains(t, stdout, "  comment 1:1-")
	assert.Contains(t, stdout, " @param\n")
	assert.Contains(t, stdout, "\"number\"")
	assert.Contains(t, stdout, "\"add(1)\"")
}

func TestIntegration_SummaryFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.js"), []byte(testSource), 0o644))

	cfg := writeConfig(t, "flavor: commonmark\n")
	stdout, _, err := execute(t, "", "parse", "--config", cfg, "--format", "summary", dir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "FILE")
	assert.Contains(t, stdout, "Summary")
	assert.Contains(t, stdout, "Comments:          1")
	assert.Contains(t, stdout, "Block tags:        2")
	assert.Contains(t, stdout, "Code blocks:       1")
	assert.Contains(t, stdout, "Parse succeeded")
}

func TestIntegration_ParseErrorsAreReported(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.js"), []byte(testSource), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.js"), []byte("/** never closed\n"), 0o644))

	cfg := writeConfig(t, "flavor: commonmark\n")
	stdout, stderr, err := execute(t, "", "parse", "--config", cfg, dir)

	require.ErrorIs(t, err, cli.ErrParseFailed)
	assert.Equal(t, cli.ExitParseErrors, cli.ExitCode(err))
	assert.Contains(t, stderr, "bad.js:")
	assert.Contains(t, stderr, "unterminated comment")
	assert.Contains(t, stdout, "good.js", "other files are still reported")
}

func TestIntegration_CodeblockFlag(t *testing.T) {
	t.Parallel()

	source := "/**\n * @snippet\n * let x = 1\n */"

	tests := []struct {
		name     string
		args     []string
		wantCode bool
	}{
		{name: "default", args: nil, wantCode: false},
		{name: "name", args: []string{"--codeblock", "snippet"}, wantCode: true},
		{name: "pattern", args: []string{"--codeblock", "/^@SNIP/i"}, wantCode: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := writeConfig(t, "flavor: commonmark\n")
			args := append([]string{"parse", "--config", cfg, "--stdin"}, tt.args...)
			stdout, _, err := execute(t, source, args...)
			require.NoError(t, err)

			var root map[string]any
			require.NoError(t, json.Unmarshal([]byte(stdout), &root))

			code := findNode(root, "code")
			if !tt.wantCode {
				assert.Nil(t, code)
				return
			}
			require.NotNil(t, code)
			assert.Equal(t, "let x = 1", code["value"])
		})
	}
}

func TestIntegration_ConfigCodeblocks(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "codeblocks:\n  - snippet\n")
	stdout, _, err := execute(t, "/**\n * @snippet\n * a *b*\n */", "parse", "--config", cfg, "--stdin")
	require.NoError(t, err)

	var root map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &root))

	code := findNode(root, "code")
	require.NotNil(t, code)
	assert.Equal(t, "a *b*", code["value"])
}

func TestIntegration_MultilineFlag(t *testing.T) {
	t.Parallel()

	source := "/* plain */\n/** doc */\n"

	for _, tt := range []struct {
		name string
		args []string
		want int
	}{
		{name: "off", want: 1},
		{name: "on", args: []string{"--multiline"}, want: 2},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := writeConfig(t, "flavor: commonmark\n")
			args := append([]string{"parse", "--config", cfg, "--stdin"}, tt.args...)
			stdout, _, err := execute(t, source, args...)
			require.NoError(t, err)

			var root map[string]any
			require.NoError(t, json.Unmarshal([]byte(stdout), &root))

			children, _ := root["children"].([]any)
			assert.Len(t, children, tt.want)
		})
	}
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "flavor: markdown\ncodeblocks:\n  - \"/[/\"\n")
	_, _, err := execute(t, testSource, "parse", "--config", cfg, "--stdin")

	require.ErrorIs(t, err, cli.ErrConfig)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
	assert.Contains(t, err.Error(), "flavor")
	assert.Contains(t, err.Error(), "codeblocks")
}

func TestIntegration_InvalidFormatFlag(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "flavor: commonmark\n")
	_, _, err := execute(t, testSource, "parse", "--config", cfg, "--stdin", "--format", "xml")

	require.ErrorIs(t, err, cli.ErrConfig)
}

func TestIntegration_TokensCommand(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "a.js")
	require.NoError(t, os.WriteFile(file, []byte(testSource), 0o644))

	stdout, _, err := execute(t, "", "tokens", file)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.NotEmpty(t, lines)

	assert.Contains(t, lines[0], "opener")
	assert.Contains(t, lines[0], "\"/**\"")
	assert.Contains(t, stdout, "\"@param\"")
	assert.Contains(t, stdout, "\"{number}\"")
	assert.Contains(t, stdout, "closer")
}

func TestIntegration_TokensJSON(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "/** @see x */", "tokens", "--json")
	require.NoError(t, err)

	var tokens []struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &tokens))
	require.NotEmpty(t, tokens)

	kinds := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Contains(t, kinds, "opener")
	assert.Contains(t, kinds, "tag")
	assert.Contains(t, kinds, "closer")
}

func TestIntegration_InitCommand(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".docblock.yml")

	_, _, err := execute(t, "", "init", "--output", path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	cfg, err := config.FromYAML(content)
	require.NoError(t, err)
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)

	_, _, err = execute(t, "", "init", "--output", path)
	require.Error(t, err, "existing file without --force")

	_, _, err = execute(t, "", "init", "--output", path, "--force")
	require.NoError(t, err)
}

func TestIntegration_InitJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "docblock.json")

	_, _, err := execute(t, "", "init", "--format", "json", "--output", path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(content))

	_, _, err = execute(t, "", "init", "--format", "toml")
	require.Error(t, err)
}
