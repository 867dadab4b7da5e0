package markdown

import "strings"

// stripped is Markdown text with comment decoration removed.
type stripped struct {
	text string

	// cols[i] is the number of source columns in front of local line i+1.
	// For the first line that is the column the text starts at, minus one.
	cols []int
}

// strip removes each continuation line's leading decoration: optional
// whitespace, an optional "*", and up to two spaces or tabs after it.
// Line terminators are kept so line numbers do not change.
func strip(raw string, startColumn int) stripped {
	var (
		out  strings.Builder
		cols []int
	)

	out.Grow(len(raw))

	first := true
	for len(raw) > 0 || first {
		line, terminator, rest := cutLine(raw)
		raw = rest

		if first {
			cols = append(cols, max(startColumn-1, 0))
			out.WriteString(line)
		} else {
			n := decorationLen(line)
			cols = append(cols, n)
			out.WriteString(line[n:])
		}

		out.WriteString(terminator)
		first = false

		if terminator == "" {
			break
		}
		if raw == "" {
			// Text ending in a terminator has a final empty line.
			cols = append(cols, 0)
			break
		}
	}

	return stripped{text: out.String(), cols: cols}
}

// maxDecorationPad is how many blanks after a line's "*" belong to the
// decoration. Further indentation is Markdown.
const maxDecorationPad = 2

// decorationLen returns how many leading bytes of line are decoration.
func decorationLen(line string) int {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}

	if i < len(line) && line[i] == '*' {
		i++
		for pad := 0; pad < maxDecorationPad && i < len(line) && (line[i] == ' ' || line[i] == '\t'); pad++ {
			i++
		}
	}

	return i
}

// cutLine splits s at its first line terminator ("\n", "\r" or "\r\n").
func cutLine(s string) (line, terminator, rest string) {
	i := strings.IndexAny(s, "\r\n")
	if i < 0 {
		return s, "", ""
	}

	if s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n' {
		return s[:i], s[i : i+2], s[i+2:]
	}

	return s[:i], s[i : i+1], s[i+1:]
}

// fence wraps text in a backtick fence longer than any backtick run it
// contains, so the whole text parses as one code block.
func fence(text string) string {
	longest, run := 0, 0
	for i := 0; i < len(text); i++ {
		if text[i] == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}

	marker := strings.Repeat("`", max(3, longest+1))

	return marker + "\n" + text + "\n" + marker
}
