package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/yaklabco/docblock/internal/cli"
	"github.com/yaklabco/docblock/pkg/runner"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "docblock" {
		t.Errorf("expected Use to be 'docblock', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"parse", "tokens", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestParseCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	parseCmd, _, err := cmd.Find([]string{"parse"})
	if err != nil {
		t.Fatalf("parse command not found: %v", err)
	}

	expectedFlags := []string{
		"format",
		"flavor",
		"codeblock",
		"extension",
		"ignore",
		"multiline",
		"detect-languages",
		"no-gitignore",
		"stdin",
		"jobs",
	}

	for _, flagName := range expectedFlags {
		if parseCmd.Flags().Lookup(flagName) == nil {
			t.Errorf("expected flag %q to exist on parse command", flagName)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, flagName := range []string{"debug", "config", "color"} {
		if cmd.PersistentFlags().Lookup(flagName) == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	}

	cmd := cli.NewRootCommand(info)
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	if !bytes.Contains(out.Bytes(), []byte("1.2.3")) {
		t.Errorf("expected version in output, got %q", out.String())
	}
}

func TestParseCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	parseCmd, _, err := cmd.Find([]string{"parse"})
	if err != nil {
		t.Fatalf("parse command not found: %v", err)
	}

	if err := parseCmd.Args(parseCmd, []string{"a.js", "b.ts", "src/"}); err != nil {
		t.Errorf("parse command should accept arbitrary args, got error: %v", err)
	}
}

func TestTokensCommandTakesOneFile(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	tokensCmd, _, err := cmd.Find([]string{"tokens"})
	if err != nil {
		t.Fatalf("tokens command not found: %v", err)
	}

	if err := tokensCmd.Args(tokensCmd, []string{"a.js", "b.js"}); err == nil {
		t.Error("tokens command should reject two files")
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "parse failed", err: cli.ErrParseFailed, want: cli.ExitParseErrors},
		{name: "config", err: fmt.Errorf("%w: bad flavor", cli.ErrConfig), want: cli.ExitConfigError},
		{name: "io", err: fmt.Errorf("%w: read stdin", cli.ErrIO), want: cli.ExitIOError},
		{name: "internal", err: fmt.Errorf("%w: cancelled", cli.ErrInternal), want: cli.ExitInternalError},
		{name: "usage", err: errors.New("unknown flag: --nope"), want: cli.ExitInvalidUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := cli.ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	if got := cli.ExitCodeFromResult(nil); got != cli.ExitSuccess {
		t.Errorf("nil result: got %d, want %d", got, cli.ExitSuccess)
	}

	failed := runner.Collect(runner.FileOutcome{Path: "a.js", Error: errors.New("boom")})
	if got := cli.ExitCodeFromResult(failed); got != cli.ExitParseErrors {
		t.Errorf("failed result: got %d, want %d", got, cli.ExitParseErrors)
	}
}
