package configloader

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/docblock/pkg/config"
	"github.com/yaklabco/docblock/pkg/docblock"
	"github.com/yaklabco/docblock/pkg/markdown"
)

// ParserOptions translates a resolved configuration into parser options.
func ParserOptions(cfg *config.Config, logger *log.Logger) ([]docblock.Option, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	opts := []docblock.Option{
		docblock.WithFlavor(markdown.Flavor(cfg.Flavor)),
		docblock.WithMultiline(cfg.MultilineEnabled()),
		docblock.WithLanguageDetection(cfg.DetectLanguagesEnabled()),
	}

	if cfg.Codeblocks != nil {
		matchers, err := docblock.ParseCodeblockPatterns(cfg.Codeblocks)
		if err != nil {
			return nil, fmt.Errorf("codeblocks: %w", err)
		}
		opts = append(opts, docblock.WithCodeblocks(matchers...))
	}

	if len(cfg.Extensions) > 0 {
		extensions, err := markdown.Extensions(cfg.Extensions)
		if err != nil {
			return nil, fmt.Errorf("extensions: %w", err)
		}
		opts = append(opts, docblock.WithExtensions(extensions...))
	}

	if logger != nil {
		opts = append(opts, docblock.WithLogger(logger))
	}

	return opts, nil
}
