// Package source holds the front-end's notion of an input file: an
// immutable name + body pair, plus the location primitives (Loc,
// LineIndices, LineColumn) that every token, AST node and diagnostic is
// anchored to.
//
// Nothing in this package reads from disk. A Source is always constructed
// in memory by the caller; loading files from disk is the caller's job,
// not this front end's.
package source

// Source is the immutable input to the lexer: a name (used only for
// diagnostics — it need not be a real file path) and the UTF-8 source
// text itself.
//
// Offsets into Body are code-unit offsets and must fall on rune
// boundaries; every Loc produced by the lexer and parser satisfies this.
type Source struct {
	Name string
	Body string
}

// New constructs a Source. It performs no validation: an empty body is a
// legal, empty source.
func New(name, body string) *Source {
	return &Source{Name: name, Body: body}
}

// Len returns the length of Body in bytes (the front end treats UTF-8
// bytes as the native code unit for offset arithmetic).
func (s *Source) Len() int {
	return len(s.Body)
}

// Slice returns the substring of Body covered by loc. The caller is
// responsible for loc being a valid, in-bounds Loc for this Source.
func (s *Source) Slice(loc Loc) string {
	return s.Body[loc.Start : loc.Start+loc.Length]
}
