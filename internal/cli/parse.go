package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/docblock/internal/configloader"
	"github.com/yaklabco/docblock/internal/logging"
	"github.com/yaklabco/docblock/pkg/config"
	"github.com/yaklabco/docblock/pkg/docblock"
	"github.com/yaklabco/docblock/pkg/reporter"
	"github.com/yaklabco/docblock/pkg/runner"
)

// stdinName is the path reported for input read from stdin.
const stdinName = "<stdin>"

type parseFlags struct {
	format          string
	flavor          string
	codeblocks      []string
	extensions      []string
	ignore          []string
	multiline       bool
	detectLanguages bool
	noGitignore     bool
	stdin           bool
	jobs            int
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [paths...]",
		Short: "Parse doc comments into a syntax tree",
		Long:  parseLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags)
		},
	}

	addParseFlags(cmd, flags)

	return cmd
}

const parseLongDescription = `Parse doc comments in source files into a syntax tree.

With no paths, parses stdin when it is piped, otherwise every source file
under the current directory. Directories are walked recursively, skipping
hidden entries and anything matched by .gitignore.

Examples:
  docblock parse src/                       # Parse a directory as JSON
  docblock parse --format tree lib/util.js  # Print an indented tree
  docblock parse --format summary .         # Count comments and tags
  cat a.js | docblock parse                 # Parse stdin
  docblock parse --codeblock example --codeblock '/^@snip/' src/`

func addParseFlags(cmd *cobra.Command, flags *parseFlags) {
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatJSON), "output format: json, tree, summary")
	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorCommonMark), "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringArrayVar(&flags.codeblocks, "codeblock", nil,
		"tag whose text is code, by name or /pattern/flags (repeatable)")
	cmd.Flags().StringSliceVar(&flags.extensions, "extension", nil, "goldmark extensions to enable")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "gitignore-style patterns to ignore")
	cmd.Flags().BoolVar(&flags.multiline, "multiline", false, `also parse "/*" comments`)
	cmd.Flags().BoolVar(&flags.detectLanguages, "detect-languages", false, "guess the language of unlabeled code")
	cmd.Flags().BoolVar(&flags.noGitignore, "no-gitignore", false, "do not skip files matched by .gitignore")
	cmd.Flags().BoolVar(&flags.stdin, "stdin", false, "read a single document from stdin")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
}

// cliConfig builds the configuration layer for flags that were set.
func cliConfig(cmd *cobra.Command, flags *parseFlags) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("flavor") {
		cfg.Flavor = config.Flavor(flags.flavor)
	}
	if changed("codeblock") {
		cfg.Codeblocks = flags.codeblocks
	}
	if changed("extension") {
		cfg.Extensions = flags.extensions
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("multiline") {
		cfg.Multiline = config.Bool(flags.multiline)
	}
	if changed("detect-languages") {
		cfg.DetectLanguages = config.Bool(flags.detectLanguages)
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}

	return cfg
}

func runParse(cmd *cobra.Command, args []string, flags *parseFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("%w: get working directory: %w", ErrIO, err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliConfig(cmd, flags),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	cfg := loadResult.Config
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	parseOpts, err := configloader.ParserOptions(cfg, logger)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	var result *runner.Result
	fromStdin := flags.stdin || (len(args) == 0 && !stdinIsTerminal())
	if fromStdin {
		result, err = parseStdin(ctx, cmd.InOrStdin(), parseOpts)
		if err != nil {
			return err
		}
	} else {
		result, err = runner.New().Run(ctx, runner.Options{
			Paths:        args,
			WorkingDir:   workDir,
			ExcludeGlobs: cfg.Ignore,
			NoGitignore:  flags.noGitignore,
			Jobs:         cfg.Jobs,
			ParseOptions: parseOpts,
			Logger:       logger,
		})
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	out := cmd.OutOrStdout()
	rep, err := reporter.New(reporter.Options{
		Writer:      out,
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      cfg.Format,
		Color:       colorMode,
		Bare:        fromStdin,
		TermWidth:   terminalWidth(out),
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("%w: write output: %w", ErrIO, err)
	}

	logger.Debug("parse complete",
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldBlockTags, result.Stats.BlockTags,
	)

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrParseFailed
	}
	return nil
}

// parseStdin parses a single document read from r.
func parseStdin(ctx context.Context, r io.Reader, opts []docblock.Option) (*runner.Result, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read stdin: %w", ErrIO, err)
	}

	root, err := docblock.ParseFileContext(ctx, docblock.SourceFile{Name: stdinName, Content: string(content)}, opts...)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return runner.Collect(runner.FileOutcome{Path: stdinName, Root: root, Error: err}), nil
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
