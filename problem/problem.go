// Package problem implements the front end's diagnostic data carrier: an
// append-only list of {id, message, loc} records shared by the lexer and
// the parser.
//
// This is a data carrier only. Rendering a Problem against its source
// context for a terminal — syntax-highlighted excerpts, caret
// underlines — is out of scope for this package; FormatForConsole here
// produces one plain line, nothing more.
//
// Recast as an append-only buffer rather than a returned error, since
// both the lexer and the parser must keep going after reporting.
package problem

import (
	"fmt"

	"github.com/weald-lang/weald/source"
)

// Desc names a diagnostic category. Id is a stable, slash-delimited
// string used for machine consumption; the first segment is the
// category (e.g. "syntax"). Message is the human-readable text.
type Desc struct {
	Id      string
	Message string
}

// Problem is a single diagnostic, always pinned to a valid Loc within the
// source it was produced from.
type Problem struct {
	Desc Desc
	Loc  source.Loc
}

// Problems is an append-only, order-preserving diagnostic buffer. The
// zero value is ready to use. Duplicates at the same Loc are permitted —
// nothing here deduplicates, by design.
type Problems struct {
	items []Problem
}

// Add appends a problem with the given id, formatted message, and
// location.
func (p *Problems) Add(id string, loc source.Loc, format string, args ...any) {
	p.items = append(p.items, Problem{
		Desc: Desc{Id: id, Message: fmt.Sprintf(format, args...)},
		Loc:  loc,
	})
}

// All returns the accumulated problems in insertion order. The returned
// slice must not be mutated by the caller.
func (p *Problems) All() []Problem {
	return p.items
}

// Len reports how many problems have been recorded.
func (p *Problems) Len() int {
	return len(p.items)
}

// FormatForConsole renders pr as a single line: "name:RANGE: message
// [id]", where RANGE is the source.LineColumnRange form ("L:C",
// "L:C1-C2" or "L1:C1-L2:C2"). It never quotes source context or
// colorizes anything — that belongs to a separate tool, not this front
// end.
func FormatForConsole(src *source.Source, pr Problem) string {
	rng := source.RangeOf(src, pr.Loc)
	return fmt.Sprintf("%s:%s: %s [%s]", src.Name, rng.String(), pr.Desc.Message, pr.Desc.Id)
}
