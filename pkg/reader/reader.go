// Package reader provides a forward cursor with lookahead over a text buffer.
//
// Characters are bytes: multi-byte UTF-8 sequences are returned one byte at a
// time, which is sufficient because every docblock delimiter is ASCII.
package reader

import (
	"regexp"

	"github.com/yaklabco/docblock/internal/assert"
	"github.com/yaklabco/docblock/pkg/dast"
	"github.com/yaklabco/docblock/pkg/location"
)

// EOF is returned in place of a character past the end of the document.
const EOF rune = -1

// Reader is a stateful cursor over a document.
type Reader struct {
	loc   *location.Location
	doc   string
	index int
}

// New creates a reader positioned at the start of doc.
func New(doc string) *Reader {
	return NewWithLocation(location.New(doc))
}

// NewWithLocation creates a reader over an existing index.
func NewWithLocation(loc *location.Location) *Reader {
	return &Reader{loc: loc, doc: loc.Doc()}
}

// Location returns the position index backing the reader.
func (r *Reader) Location() *location.Location {
	return r.loc
}

// Index returns the current local offset.
func (r *Reader) Index() int {
	return r.index
}

// EOF returns true when the cursor is at or past the end of the document.
func (r *Reader) EOF() bool {
	return r.index >= len(r.doc)
}

// Char returns the character at the cursor, or EOF.
func (r *Reader) Char() rune {
	return r.Peek(0)
}

// Peek returns the character k positions from the cursor without moving.
// Any k is accepted; positions outside the document yield EOF.
func (r *Reader) Peek(k int) rune {
	i := r.index + k
	if i < 0 || i >= len(r.doc) {
		return EOF
	}
	return rune(r.doc[i])
}

// PeekString reports whether s occurs at the cursor.
func (r *Reader) PeekString(s string) bool {
	end := r.index + len(s)
	return end <= len(r.doc) && r.doc[r.index:end] == s
}

// PeekMatch matches re anchored at the cursor and returns the matched text,
// or "" when re does not match there. The cursor does not move.
func (r *Reader) PeekMatch(re *regexp.Regexp) string {
	match, _ := r.PeekMatchOK(re)
	return match
}

// PeekMatchOK is like PeekMatch but also reports whether a (possibly empty)
// match was found.
func (r *Reader) PeekMatchOK(re *regexp.Regexp) (string, bool) {
	if r.index > len(r.doc) {
		return "", false
	}

	loc := re.FindStringIndex(r.doc[r.index:])
	if loc == nil || loc[0] != 0 {
		return "", false
	}

	return r.doc[r.index : r.index+loc[1]], true
}

// Read advances the cursor by one character and returns the new current
// character. It is an invariant violation to read at end of document.
func (r *Reader) Read() rune {
	return r.ReadN(1)
}

// ReadN advances the cursor by k characters, clamped to [0, len], and returns
// the new current character or EOF.
func (r *Reader) ReadN(k int) rune {
	assert.That(!r.EOF(), "read past end of document at offset %d", r.index)

	r.index += k
	if r.index < 0 {
		r.index = 0
	}
	if r.index > len(r.doc) {
		r.index = len(r.doc)
	}

	return r.Char()
}

// Point returns the point at the cursor.
func (r *Reader) Point() dast.Point {
	return r.loc.Point(r.index)
}

// PointAt returns the point at a local offset.
func (r *Reader) PointAt(offset int) dast.Point {
	return r.loc.Point(offset)
}

// Slice returns the text between two local offsets.
func (r *Reader) Slice(start, end int) string {
	return r.doc[start:end]
}

// Rest returns the text from the cursor to the end of the document.
func (r *Reader) Rest() string {
	if r.index >= len(r.doc) {
		return ""
	}
	return r.doc[r.index:]
}
