// Package location converts between byte offsets and line/column points for
// a fixed text buffer.
//
// Point, PointAt and Offset work in bytes so results can slice the indexed
// string directly. UTF16Point, ToUTF16 and UTF16Offset report the same
// locations in UTF-16 code units, the unit used by every published tree.
//
// A Location may be relative to a starting point inside a larger document:
// points it returns are shifted by that base and points it accepts are
// interpreted in the enclosing document's coordinates.
package location

import (
	"sort"
	"unicode/utf8"

	"github.com/yaklabco/docblock/pkg/dast"
)

// Location indexes the line structure of a document.
type Location struct {
	doc  string
	from dast.Point

	// starts[i] is the offset of the first byte of line i+1.
	starts []int

	// ends[i] is the offset just past line i+1's terminator
	// (or len(doc) for the last line).
	ends []int

	// ascii is set when every byte is below 0x80, so bytes and UTF-16 code
	// units coincide.
	ascii bool

	// units[i] is the UTF-16 offset of the first byte of line i+1.
	// Nil when ascii is set.
	units []int
}

// New indexes doc with the default base point 1:1 at offset 0.
func New(doc string) *Location {
	return NewFrom(doc, dast.Point{Line: 1, Column: 1, Offset: 0})
}

// NewFrom indexes doc as if it started at from inside an enclosing document.
// An invalid from falls back to 1:1 at offset 0.
func NewFrom(doc string, from dast.Point) *Location {
	if !from.IsValid() {
		from = dast.Point{Line: 1, Column: 1, Offset: 0}
	}

	loc := &Location{doc: doc, from: from}
	loc.index()

	return loc
}

// index builds the line tables. "\n", "\r" and "\r\n" each end a line.
func (l *Location) index() {
	l.starts = append(l.starts, 0)
	l.ascii = true

	for i := 0; i < len(l.doc); i++ {
		if l.doc[i] >= utf8.RuneSelf {
			l.ascii = false
		}

		switch l.doc[i] {
		case '\r':
			if i+1 < len(l.doc) && l.doc[i+1] == '\n' {
				i++
			}
		case '\n':
		default:
			continue
		}

		l.ends = append(l.ends, i+1)
		l.starts = append(l.starts, i+1)
	}

	l.ends = append(l.ends, len(l.doc))

	if !l.ascii {
		l.indexUnits()
	}
}

// Doc returns the indexed text.
func (l *Location) Doc() string {
	return l.doc
}

// From returns the base point.
func (l *Location) From() dast.Point {
	return l.from
}

// Len returns the length of the indexed text in bytes.
func (l *Location) Len() int {
	return len(l.doc)
}

// Lines returns the number of lines. An empty document has one line.
func (l *Location) Lines() int {
	return len(l.starts)
}

// Point returns the point for a local offset in [0, Len()], shifted by the
// base point. Out-of-range offsets yield dast.InvalidPoint(offset).
func (l *Location) Point(offset int) dast.Point {
	if offset < 0 || offset > len(l.doc) {
		return dast.InvalidPoint(offset)
	}

	// Last line whose start is <= offset.
	idx := sort.Search(len(l.starts), func(i int) bool {
		return l.starts[i] > offset
	}) - 1

	column := offset - l.starts[idx] + 1
	if idx == 0 {
		column += l.from.Column - 1
	}

	return dast.Point{
		Line:   idx + l.from.Line,
		Column: column,
		Offset: offset + l.from.Offset,
	}
}

// PointAt is like Point but takes an offset in the enclosing document's
// coordinates.
func (l *Location) PointAt(offset int) dast.Point {
	point := l.Point(offset - l.from.Offset)
	if !point.IsValid() {
		return dast.InvalidPoint(offset)
	}
	return point
}

// Offset returns the offset, in the enclosing document's coordinates, of the
// character at p. It returns -1 if p is not addressable: non-positive
// line or column, a line outside the document, or a column past the end of
// its line. The end-of-document point is addressable.
func (l *Location) Offset(p dast.Point) int {
	local := l.LocalOffset(p)
	if local < 0 {
		return -1
	}
	return local + l.from.Offset
}

// LocalOffset is like Offset but returns an index into the indexed text.
func (l *Location) LocalOffset(p dast.Point) int {
	if p.Line < 1 || p.Column < 1 {
		return -1
	}

	line := p.Line - l.from.Line + 1
	column := p.Column
	if line == 1 {
		column -= l.from.Column - 1
	}

	if line < 1 || line > len(l.starts) || column < 1 {
		return -1
	}

	offset := l.starts[line-1] + column - 1
	if offset < l.ends[line-1] || (offset == len(l.doc) && line == len(l.starts)) {
		return offset
	}

	return -1
}

// LineStart returns the local offset of the first byte of a local 1-based
// line, or -1 when out of range.
func (l *Location) LineStart(line int) int {
	if line < 1 || line > len(l.starts) {
		return -1
	}
	return l.starts[line-1]
}

// LineEnd returns the local offset just before the terminator of a local
// 1-based line, or -1 when out of range.
func (l *Location) LineEnd(line int) int {
	if line < 1 || line > len(l.starts) {
		return -1
	}

	end := l.ends[line-1]
	if line < len(l.starts) {
		end--
		if end > l.starts[line-1] && l.doc[end] == '\n' && l.doc[end-1] == '\r' {
			end--
		}
	}

	return end
}
