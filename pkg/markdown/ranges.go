package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/text"
)

// linesRange returns the byte range covered by a block's lines, or -1, -1
// when the block has none.
func (m *Mapper) linesRange(lines *text.Segments) (int, int) {
	if lines == nil || lines.Len() == 0 {
		return -1, -1
	}

	return lines.At(0).Start, lines.At(lines.Len() - 1).Stop
}

// linesValue concatenates a block's lines without the final line ending.
func (m *Mapper) linesValue(lines *text.Segments) string {
	if lines == nil {
		return ""
	}

	var buf bytes.Buffer
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.WriteString(strings.Repeat(" ", seg.Padding))
		buf.Write(seg.Value(m.src))
	}

	value := buf.String()
	value = strings.TrimSuffix(value, "\n")
	value = strings.TrimSuffix(value, "\r")

	return value
}

// trimRight moves end back over trailing whitespace and line endings, but
// never before floor.
func (m *Mapper) trimRight(end, floor int) int {
	end = clamp(end, 0, len(m.src))
	for end > floor && isSpaceByte(m.src[end-1]) {
		end--
	}
	return end
}

// lineStartOf returns the offset of the first byte of the line holding off.
func (m *Mapper) lineStartOf(off int) int {
	off = clamp(off, 0, len(m.src))
	for off > 0 && m.src[off-1] != '\n' && m.src[off-1] != '\r' {
		off--
	}
	return off
}

// lineEndOf returns the offset of the line ending after off, or len(src).
func (m *Mapper) lineEndOf(off int) int {
	off = clamp(off, 0, len(m.src))
	if i := bytes.IndexAny(m.src[off:], "\r\n"); i >= 0 {
		return off + i
	}
	return len(m.src)
}

// findMarker returns the offset of the first byte at or after from that is
// one of chars, or from when there is none.
func (m *Mapper) findMarker(from int, chars string) int {
	from = clamp(from, 0, len(m.src))
	if i := bytes.IndexAny(m.src[from:], chars); i >= 0 {
		return from + i
	}
	return from
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
