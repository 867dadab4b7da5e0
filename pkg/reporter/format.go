package reporter

import (
	"fmt"

	"github.com/yaklabco/docblock/pkg/config"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (config.OutputFormat, error) {
	switch formatStr {
	case "json", "":
		return config.FormatJSON, nil
	case "tree":
		return config.FormatTree, nil
	case "summary":
		return config.FormatSummary, nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: json, tree, summary", formatStr)
	}
}
