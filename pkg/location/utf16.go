package location

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/yaklabco/docblock/pkg/dast"
)

// indexUnits records the UTF-16 offset of every line start.
func (l *Location) indexUnits() {
	l.units = make([]int, len(l.starts))
	for i := 1; i < len(l.starts); i++ {
		l.units[i] = l.units[i-1] + unitLen(l.doc[l.starts[i-1]:l.ends[i-1]])
	}
}

// unitLen returns the length of s in UTF-16 code units. Each byte of an
// invalid UTF-8 sequence counts as one unit.
func unitLen(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// UTF16Point is like Point but counts columns and offsets in UTF-16 code
// units. offset is still a local byte offset.
func (l *Location) UTF16Point(offset int) dast.Point {
	point := l.Point(offset)
	if l.ascii || !point.IsValid() {
		return point
	}

	idx := point.Line - l.from.Line
	units := unitLen(l.doc[l.starts[idx]:offset])

	column := units + 1
	if idx == 0 {
		column += l.from.Column - 1
	}

	return dast.Point{
		Line:   point.Line,
		Column: column,
		Offset: l.from.Offset + l.units[idx] + units,
	}
}

// ToUTF16 converts a point produced by Point or PointAt to UTF-16 code
// units. Invalid points are returned unchanged.
func (l *Location) ToUTF16(p dast.Point) dast.Point {
	if l.ascii || !p.IsValid() {
		return p
	}

	point := l.UTF16Point(p.Offset - l.from.Offset)
	if !point.IsValid() {
		return dast.InvalidPoint(p.Offset)
	}
	return point
}

// UTF16Offset is like Offset for a point whose column counts UTF-16 code
// units. The result is a UTF-16 offset in the enclosing document's
// coordinates, or -1 when p is not addressable or falls inside a surrogate
// pair.
func (l *Location) UTF16Offset(p dast.Point) int {
	if l.ascii {
		return l.Offset(p)
	}
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

	want := column - 1
	units := 0
	i := l.starts[line-1]
	end := l.ends[line-1]
	for units < want && i < end {
		r, size := utf8.DecodeRuneInString(l.doc[i:])
		units += utf16.RuneLen(r)
		i += size
	}

	if units != want {
		return -1
	}
	if i < end || (i == len(l.doc) && line == len(l.starts)) {
		return l.from.Offset + l.units[line-1] + units
	}

	return -1
}
