// Package config defines core configuration types for docblock.
// These types are pure data structures with no dependency on the loader.
package config

// OutputFormat specifies how parsed trees are printed.
type OutputFormat string

const (
	FormatJSON    OutputFormat = "json"
	FormatTree    OutputFormat = "tree"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatJSON, FormatTree, FormatSummary:
		return true
	default:
		return false
	}
}

// Flavor specifies the Markdown flavor used for comment text.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// DefaultCodeblock is the tag whose text is parsed as code when no
// codeblocks are configured.
const DefaultCodeblock = "example"

// Config is the root configuration structure for docblock.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor"`

	// Codeblocks lists the tags whose text is code. Entries are tag names
	// ("example", "@example") or ECMAScript patterns ("/^@snippet/i").
	Codeblocks []string `mapstructure:"codeblocks" yaml:"codeblocks"`

	// Multiline also treats "/*" comments as docblocks.
	Multiline *bool `mapstructure:"multiline" yaml:"multiline,omitempty"`

	// DetectLanguages fills in the lang of code nodes that have none.
	DetectLanguages *bool `mapstructure:"detect_languages" yaml:"detect_languages,omitempty"`

	// Extensions names extra goldmark extensions to enable.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:     FlavorCommonMark,
		Codeblocks: []string{DefaultCodeblock},
		Format:     FormatJSON,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}

// MultilineEnabled reports the effective multiline setting.
func (c *Config) MultilineEnabled() bool {
	return c != nil && c.Multiline != nil && *c.Multiline
}

// DetectLanguagesEnabled reports the effective language detection setting.
func (c *Config) DetectLanguagesEnabled() bool {
	return c != nil && c.DetectLanguages != nil && *c.DetectLanguages
}

// Bool returns a pointer to b, for the optional boolean fields.
func Bool(b bool) *bool {
	return &b
}
