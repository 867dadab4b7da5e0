package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docblock/internal/configloader"
	"github.com/yaklabco/docblock/internal/logging"
	"github.com/yaklabco/docblock/pkg/config"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new docblock configuration file",
		Long: `Create a new .docblock.yml configuration file in the current directory
with the default settings documented.

Examples:
  docblock init                      Create .docblock.yml
  docblock init --format json        Create docblock.json instead
  docblock init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: .docblock.yml or docblock.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.FromContext(cmd.Context())

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("invalid format %q: must be yaml or json", flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "json" {
			outputPath = "docblock.json"
		} else {
			outputPath = configloader.ProjectConfigFiles[0]
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("%w: resolve path: %w", ErrIO, err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	opts := config.TemplateOptions{Format: flags.format}
	if err := configloader.WriteConfig(cmd.Context(), absPath, opts, true); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	return nil
}
