package markdown

import (
	"strings"

	"github.com/yaklabco/docblock/internal/assert"
	"github.com/yaklabco/docblock/pkg/dast"
	"github.com/yaklabco/docblock/pkg/langdetect"
	"github.com/yaklabco/docblock/pkg/location"
)

// remapper converts points in the parsed Markdown text into points in the
// source the token was cut from.
type remapper struct {
	raw  *location.Location
	from dast.Point
	cols []int

	// shift is the number of lines placed in front of the stripped text.
	shift int
}

func newRemapper(raw string, from dast.Point, cols []int, shift int) *remapper {
	return &remapper{
		raw:   location.NewFrom(raw, from),
		from:  from,
		cols:  cols,
		shift: shift,
	}
}

// point maps a markdown-local point to source coordinates.
func (r *remapper) point(p dast.Point) dast.Point {
	line := p.Line - r.shift
	if r.shift > 0 {
		line = clamp(line, 1, len(r.cols))
	}

	assert.That(line >= 1 && line <= len(r.cols),
		"markdown line %d outside %d stripped lines", line, len(r.cols))

	out := dast.Point{
		Line:   line + r.from.Line - 1,
		Column: p.Column + r.cols[line-1],
	}
	out.Offset = r.offset(out)

	return out
}

// at builds the source point for a source line and column.
func (r *remapper) at(line, column int) dast.Point {
	p := dast.Point{Line: line, Column: column}
	p.Offset = r.offset(p)
	return p
}

// offset returns the source offset of p. A column past the end of its line
// is clamped to the line end.
func (r *remapper) offset(p dast.Point) int {
	if off := r.raw.Offset(p); off >= 0 {
		return off
	}

	end := r.raw.LineEnd(p.Line - r.from.Line + 1)
	assert.That(end >= 0, "no offset for remapped point %s", p)

	return end + r.from.Offset
}

// remapPositions moves every node below holder into source coordinates.
// Break ends are normalized to the first column of their line, the second
// for escaped hard breaks.
func (r *remapper) remapPositions(holder *dast.Node) {
	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	dast.Walk(holder, func(n *dast.Node) error {
		if n == holder {
			return nil
		}

		assert.That(n.Position.IsValid(), "%s node without a position", n.Kind)

		n.Position = dast.Position{
			Start: r.point(n.Position.Start),
			End:   r.point(n.Position.End),
		}

		if n.Kind == dast.NodeBreak {
			column := 1
			if n.IsHard() {
				column = 2
			}
			n.Position.End = r.at(n.Position.End.Line, column)
		}

		return nil
	})
}

// insertLineBreaks puts a break in front of every blank-line break that
// spans from the end of the previous sibling to the start of the blank
// line.
func (r *remapper) insertLineBreaks(holder *dast.Node) {
	blanks := dast.FindAll(holder, (*dast.Node).IsBlank)

	for _, blank := range blanks {
		start := blank.Position.Start
		if blank.Prev != nil {
			start = blank.Prev.Position.End
		}

		end := r.at(blank.Position.Start.Line, 1)
		if end.Offset < start.Offset {
			end = start
		}

		dast.InsertBefore(blank, dast.NewBreak(dast.Position{Start: start, End: end}, false, false))
	}
}

// normalizeText folds the line endings left inside text nodes. A text that
// follows a line break loses its leading line ending; any other line ending
// becomes a space.
func (r *remapper) normalizeText(holder *dast.Node) {
	texts := dast.FindByKind(holder, dast.NodeText)

	for _, text := range texts {
		if text.Prev != nil && text.Prev.Kind == dast.NodeBreak && !text.Prev.IsBlank() {
			if trimmed := trimLeadingLineEnding(text.Value); len(trimmed) != len(text.Value) {
				dropped := len(text.Value) - len(trimmed)
				text.Value = trimmed
				if p := r.raw.PointAt(text.Position.Start.Offset + dropped); p.IsValid() {
					text.Position.Start = p
				}
			}
		}

		if !strings.ContainsAny(text.Value, "\r\n") {
			continue
		}

		if strings.HasSuffix(text.Value, "\n") && text.Position.End.Line > text.Position.Start.Line {
			text.Position.End = r.afterLineEnd(text.Position.End.Line - 1)
		}

		text.Value = newlineReplacer.Replace(text.Value)
	}
}

// afterLineEnd returns the point one column past the end of a source line.
func (r *remapper) afterLineEnd(line int) dast.Point {
	end := r.raw.LineEnd(line - r.from.Line + 1)
	assert.That(end >= 0, "source line %d outside markdown text", line)

	p := r.raw.Point(end)
	return dast.Point{Line: p.Line, Column: p.Column + 1, Offset: p.Offset + 1}
}

//nolint:gochecknoglobals // Immutable replacer.
var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func trimLeadingLineEnding(s string) string {
	switch {
	case strings.HasPrefix(s, "\r\n"):
		return s[2:]
	case strings.HasPrefix(s, "\n"), strings.HasPrefix(s, "\r"):
		return s[1:]
	default:
		return s
	}
}

// detectLanguages fills in the language of code nodes that have none.
func detectLanguages(holder *dast.Node, filename string) {
	for _, code := range dast.FindByKind(holder, dast.NodeCode) {
		if code.Code == nil {
			code.Code = &dast.CodeAttrs{}
		}
		if code.Code.Lang != "" || code.Value == "" {
			continue
		}
		if lang := langdetect.DetectFor(filename, []byte(code.Value)); lang != langdetect.Text {
			code.Code.Lang = lang
		}
	}
}
