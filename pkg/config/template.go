package config

import (
	"encoding/json"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	return []byte(DefaultTemplate()), nil
}

// DefaultTemplate returns the commented YAML written by "docblock init".
func DefaultTemplate() string {
	return DefaultTemplateHeader() + `

# Markdown flavor for comment text: commonmark or gfm
flavor: commonmark

# Tags whose text is parsed as code. Use a tag name ("example" or
# "@example") or an ECMAScript pattern such as "/^@(example|snippet)$/i".
codeblocks:
  - example

# Also treat plain /* ... */ comments as docblocks
# multiline: false

# Guess the language of code blocks that have no info string
# detect_languages: false

# Extra goldmark extensions: table, strikethrough, tasklist, linkify,
# footnote, definitionlist
# extensions:
#   - table

# File patterns to skip (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`
}

// templateToJSON renders the default settings as JSON.
func templateToJSON() ([]byte, error) {
	cfg := map[string]any{
		"flavor":           string(FlavorCommonMark),
		"codeblocks":       []string{DefaultCodeblock},
		"multiline":        false,
		"detect_languages": false,
		"extensions":       []string{},
		"ignore":           []string{"vendor/**", "node_modules/**"},
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# docblock configuration
# See: https://github.com/yaklabco/docblock`
}
