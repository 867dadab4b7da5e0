package dast

import "fmt"

// Point is a location in source text.
// Line and Column are 1-based; Offset is 0-based. Published trees count
// columns and offsets in UTF-16 code units; the parser works in bytes
// internally and converts once the tree is built.
type Point struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

// InvalidPoint returns the sentinel point reported when an offset cannot be
// converted. Line and Column are -1; Offset keeps the given value.
func InvalidPoint(offset int) Point {
	return Point{Line: -1, Column: -1, Offset: offset}
}

// IsValid returns true if this point has positive line and column values.
func (p Point) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

// String returns the point as "line:column".
func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Position is a half-open span [Start, End) in source text.
type Position struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// IsValid returns true if both points are valid and End does not precede Start.
func (p Position) IsValid() bool {
	return p.Start.IsValid() && p.End.IsValid() && p.Start.Offset <= p.End.Offset
}

// IsSingleLine returns true if start and end are on the same line.
func (p Position) IsSingleLine() bool {
	return p.Start.Line == p.End.Line
}

// Len returns the length of the span in bytes.
func (p Position) Len() int {
	return p.End.Offset - p.Start.Offset
}

// Contains returns true if the given offset is within this span.
func (p Position) Contains(offset int) bool {
	return offset >= p.Start.Offset && offset < p.End.Offset
}

// String returns the position as "line:column-line:column".
func (p Position) String() string {
	return p.Start.String() + "-" + p.End.String()
}

// Span returns the position covering both a and b.
func Span(a, b Position) Position {
	out := a
	if b.Start.Offset < out.Start.Offset {
		out.Start = b.Start
	}
	if b.End.Offset > out.End.Offset {
		out.End = b.End
	}
	return out
}
