package docblock

import (
	"github.com/charmbracelet/log"
	"github.com/yuin/goldmark"

	"github.com/yaklabco/docblock/internal/logging"
	"github.com/yaklabco/docblock/pkg/dast"
	"github.com/yaklabco/docblock/pkg/markdown"
)

// Transform mutates a completed tree in place. A non-nil error aborts the
// parse.
type Transform func(root *dast.Node) error

// Options configures a parse. The zero value is usable; Parse fills in
// defaults for unset fields.
type Options struct {
	// Codeblocks select block tags whose content is code. Nil means the
	// "example" tag; an empty non-nil slice means none.
	Codeblocks []CodeblockMatcher

	// From is where the source starts inside an enclosing document.
	From dast.Point

	// Multiline also accepts "/*" comments.
	Multiline bool

	// Flavor is the Markdown dialect.
	Flavor markdown.Flavor

	// Extensions are extra goldmark extensions.
	Extensions []goldmark.Extender

	// NodeMappers convert nodes contributed by Extensions.
	NodeMappers []markdown.NodeMapper

	// Transforms run in order after the built-in ones.
	Transforms []Transform

	// DetectLanguages fills in the language of code without one.
	DetectLanguages bool

	// Logger receives debug events. Nil discards them.
	Logger *log.Logger
}

// Option configures Options.
type Option func(*Options)

// Apply applies opts to a copy of o and returns it with defaults filled in.
func (o Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(&o)
	}

	if o.Codeblocks == nil {
		o.Codeblocks = []CodeblockMatcher{MatchName(DefaultCodeblock)}
	}
	if !o.From.IsValid() {
		o.From = dast.Point{Line: 1, Column: 1, Offset: 0}
	}
	if o.Flavor == "" {
		o.Flavor = markdown.FlavorCommonMark
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}

	return o
}

// WithOptions replaces all options with o. Later options still apply.
func WithOptions(o Options) Option {
	return func(opts *Options) {
		*opts = o
	}
}

// WithCodeblocks sets the codeblock matchers. Calling it with no matchers
// disables codeblock rendering.
func WithCodeblocks(matchers ...CodeblockMatcher) Option {
	return func(o *Options) {
		o.Codeblocks = append([]CodeblockMatcher{}, matchers...)
	}
}

// WithFrom sets the start point of the source in an enclosing document.
func WithFrom(from dast.Point) Option {
	return func(o *Options) {
		o.From = from
	}
}

// WithMultiline toggles "/*" openers.
func WithMultiline(enabled bool) Option {
	return func(o *Options) {
		o.Multiline = enabled
	}
}

// WithFlavor sets the Markdown dialect.
func WithFlavor(flavor markdown.Flavor) Option {
	return func(o *Options) {
		o.Flavor = flavor
	}
}

// WithExtensions adds goldmark extensions.
func WithExtensions(extensions ...goldmark.Extender) Option {
	return func(o *Options) {
		o.Extensions = append(o.Extensions, extensions...)
	}
}

// WithNodeMappers adds mappers for nodes produced by extensions.
func WithNodeMappers(mappers ...markdown.NodeMapper) Option {
	return func(o *Options) {
		o.NodeMappers = append(o.NodeMappers, mappers...)
	}
}

// WithTransforms appends transforms.
func WithTransforms(transforms ...Transform) Option {
	return func(o *Options) {
		o.Transforms = append(o.Transforms, transforms...)
	}
}

// WithLanguageDetection toggles language detection for code.
func WithLanguageDetection(enabled bool) Option {
	return func(o *Options) {
		o.DetectLanguages = enabled
	}
}

// WithLogger sets the logger for debug events.
func WithLogger(logger *log.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
