package pretty

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/docblock/pkg/docblock"
)

// FormatError formats a per-file parse failure for terminal output.
// Syntax errors are reported at their source position.
func (s *Styles) FormatError(path string, err error) string {
	if err == nil {
		return ""
	}

	var syntaxErr *docblock.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return fmt.Sprintf("  %s  %s  %s\n",
			s.FilePath.Render(path),
			s.Error.Render("error"),
			s.Message.Render(err.Error()),
		)
	}

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		syntaxErr.Point.Line,
		syntaxErr.Point.Column,
	)

	message := syntaxErr.Err.Error()
	if len(syntaxErr.Expected) > 0 {
		expected := make([]string, 0, len(syntaxErr.Expected))
		for _, kind := range syntaxErr.Expected {
			expected = append(expected, kind.String())
		}
		message += fmt.Sprintf(" (found %s, expected %s)", syntaxErr.Found, strings.Join(expected, " or "))
	}

	return fmt.Sprintf("  %s  %s  %s\n", location, s.Error.Render("error"), s.Message.Render(message))
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, comments int) string {
	header := s.FilePath.Render(path)
	if comments > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", comments, plural(comments, "comment", "comments")))
	}
	return header
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
