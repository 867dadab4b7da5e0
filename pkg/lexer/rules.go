package lexer

import "github.com/yaklabco/docblock/pkg/reader"

// opener matches "/**" (not "/**/"), or "/*" in multiline mode.
func (l *Lexer) opener() bool {
	size := 0
	switch {
	case l.r.PeekString("/**") && l.r.Peek(3) != '/':
		size = 3
	case l.opts.Multiline && l.r.PeekString("/*") && l.r.Peek(2) != '/':
		size = 2
	default:
		return false
	}

	l.consume(KindOpener, size)

	l.inComment = true
	l.lineLead = true
	l.delimited = false
	l.afterTag = false

	return true
}

// tag matches "@" followed by non-whitespace at the lead of a line.
// A tag never swallows a closer.
func (l *Lexer) tag() bool {
	if !l.lineLead || l.r.Char() != '@' {
		return false
	}

	next := l.r.Peek(1)
	if next == reader.EOF || isSpace(next) || l.closerAt(1) {
		return false
	}

	size := 1
	for {
		c := l.r.Peek(size)
		if c == reader.EOF || isSpace(c) || l.closerAt(size) {
			break
		}
		size++
	}

	l.consume(KindTag, size)

	l.lineLead = false
	l.afterTag = true

	return true
}

// typeExpression matches a brace-balanced "{...}" directly after a tag.
// The text may span lines; it must close before the comment does.
func (l *Lexer) typeExpression() bool {
	if !l.afterTag || l.r.Char() != '{' {
		return false
	}

	if next := l.r.Peek(1); next == '@' || next == reader.EOF {
		return false
	}

	depth := 0
	size := 0
	for {
		c := l.r.Peek(size)
		if c == reader.EOF || l.closerAt(size) {
			return false
		}

		size++

		if c == '{' {
			depth++
		} else if c == '}' {
			depth--
			if depth == 0 {
				break
			}
		}
	}

	l.consume(KindTypeExpression, size)

	l.lineLead = false
	l.afterTag = false

	return true
}

// closer matches "*/".
func (l *Lexer) closer() bool {
	if !l.closerAt(0) {
		return false
	}

	l.consume(KindCloser, 2)

	l.inComment = false
	l.lineLead = false
	l.afterTag = false

	return true
}

// delimiter matches the first "*" on a line.
func (l *Lexer) delimiter() bool {
	if !l.lineLead || l.delimited || l.r.Char() != '*' {
		return false
	}

	l.consume(KindDelimiter, 1)
	l.delimited = true

	return true
}

// whitespace matches a single whitespace byte.
func (l *Lexer) whitespace() bool {
	c := l.r.Char()
	if !isSpace(c) {
		return false
	}

	l.consume(KindWhitespace, 1)

	if c == '\n' || c == '\r' {
		l.lineLead = true
		l.delimited = false
	}

	return true
}

// markdown matches a run of free text. The run stops before trailing
// whitespace that leads into the closer, and before the line break that
// leads (through blank decorated lines) into a block tag.
func (l *Lexer) markdown() bool {
	if l.r.EOF() {
		return false
	}
	if ends, _ := l.contentEndsAt(0); ends {
		return false
	}

	// A scan that fails at stop also fails from every position up to stop,
	// so each byte is scanned once.
	size := 1
	for l.r.Peek(size) != reader.EOF {
		ends, stop := l.contentEndsAt(size)
		if ends {
			break
		}
		size = stop + 1
	}

	l.consume(KindMarkdown, size)

	l.lineLead = false
	l.afterTag = false

	return true
}

// contentEndsAt reports whether the text at cursor+k holds nothing but
// whitespace and line decoration before a closer, a block tag on a later
// line, or the end of input. When it does not, stop is the offset from the
// cursor of the byte that decided it.
func (l *Lexer) contentEndsAt(k int) (ends bool, stop int) {
	crossed := false

	for {
		for isBlank(l.r.Peek(k)) {
			k++
		}

		c := l.r.Peek(k)
		switch {
		case c == reader.EOF:
			return true, k
		case l.closerAt(k):
			return true, k
		case c == '\n' || c == '\r':
			if c == '\r' && l.r.Peek(k+1) == '\n' {
				k++
			}
			k++
			crossed = true

			for isBlank(l.r.Peek(k)) {
				k++
			}
			if l.r.Peek(k) == '*' && l.r.Peek(k+1) != '/' {
				k++
			}
		case crossed && c == '@':
			next := l.r.Peek(k + 1)
			return next != reader.EOF && !isSpace(next) && !l.closerAt(k+1), k
		default:
			return false, k
		}
	}
}

// closerAt reports whether "*/" starts at cursor+k.
func (l *Lexer) closerAt(k int) bool {
	return l.r.Peek(k) == '*' && l.r.Peek(k+1) == '/'
}

// isBlank reports whether c is horizontal whitespace.
func isBlank(c rune) bool {
	return c == ' ' || c == '\t' || c == '\f' || c == '\v'
}

// isSpace reports whether c is any whitespace byte.
func isSpace(c rune) bool {
	return isBlank(c) || c == '\n' || c == '\r'
}
