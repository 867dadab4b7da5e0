package markdown

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ErrUnknownExtension is returned for an extension name that is not
// registered.
var ErrUnknownExtension = errors.New("unknown markdown extension")

// namedExtensions are the goldmark extensions that can be enabled by name
// from configuration. Nodes they add without a dedicated mapping are
// flattened into their children.
//
//nolint:gochecknoglobals // Read-only lookup table.
var namedExtensions = map[string]goldmark.Extender{
	"table":          extension.Table,
	"strikethrough":  extension.Strikethrough,
	"tasklist":       extension.TaskList,
	"linkify":        extension.Linkify,
	"footnote":       extension.Footnote,
	"definitionlist": extension.DefinitionList,
}

// Extension returns the goldmark extension registered under name.
func Extension(name string) (goldmark.Extender, error) {
	ext, ok := namedExtensions[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, name)
	}
	return ext, nil
}

// Extensions resolves a list of extension names.
func Extensions(names []string) ([]goldmark.Extender, error) {
	result := make([]goldmark.Extender, 0, len(names))
	for _, name := range names {
		ext, err := Extension(name)
		if err != nil {
			return nil, err
		}
		result = append(result, ext)
	}
	return result, nil
}

// ExtensionNames returns the registered names in sorted order.
func ExtensionNames() []string {
	names := make([]string, 0, len(namedExtensions))
	for name := range namedExtensions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
