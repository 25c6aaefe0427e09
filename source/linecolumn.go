package source

import (
	"fmt"

	"github.com/clipperhouse/uax29/v2/graphemes"
)

// LineColumn is a 1-based line/column pair. Column counts grapheme
// clusters (per Unicode UAX #29), not bytes or code points, and a "\r\n"
// pair counts as a single column step.
type LineColumn struct {
	Line   int
	Column int
}

// FromIndex computes the LineColumn of byte offset i within src's body.
func FromIndex(src *Source, i uint32) LineColumn {
	li := For(src)
	line, lineStart := li.LineOf(i)

	col := countGraphemeClusters(src.Body[lineStart:i]) + 1

	// CRLF special case: when i itself points at the '\n' of a "\r\n"
	// pair, the pair must count as a single column step rather than two.
	if i > 0 && int(i) < len(src.Body) && src.Body[i] == '\n' && src.Body[i-1] == '\r' {
		col--
	}

	return LineColumn{Line: line, Column: col}
}

// countGraphemeClusters returns the number of extended grapheme clusters
// in s, per Unicode UAX #29.
func countGraphemeClusters(s string) int {
	if s == "" {
		return 0
	}
	n := 0
	seg := graphemes.FromString(s)
	for seg.Next() {
		n++
	}
	return n
}

// LineColumnRange is a pair of LineColumns describing a span, with a
// compact textual form used by diagnostics.
type LineColumnRange struct {
	Start, End LineColumn
}

// RangeOf computes the LineColumnRange covering loc within src.
func RangeOf(src *Source, loc Loc) LineColumnRange {
	start := FromIndex(src, loc.Start)
	end := FromIndex(src, loc.End())
	return LineColumnRange{Start: start, End: end}
}

// String renders the range per the front-end's diagnostic convention:
//   - "L:C" when the range is a single-column point (end == start col+1
//     on the same line),
//   - "L:C1-C2" when it spans one line,
//   - "L1:C1-L2:C2" otherwise.
func (r LineColumnRange) String() string {
	if r.Start.Line == r.End.Line {
		if r.End.Column == r.Start.Column+1 {
			return fmt.Sprintf("%d:%d", r.Start.Line, r.Start.Column)
		}
		return fmt.Sprintf("%d:%d-%d", r.Start.Line, r.Start.Column, r.End.Column)
	}
	return fmt.Sprintf("%d:%d-%d:%d", r.Start.Line, r.Start.Column, r.End.Line, r.End.Column)
}
