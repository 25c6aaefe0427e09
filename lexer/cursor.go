package lexer

import (
	"unicode/utf8"

	"github.com/weald-lang/weald/source"
)

// cursor is a position-tracking view over a source body. It borrows the
// body and never copies it; a mark is simply a saved byte offset. It
// walks runes rather than bytes, since Weald's grammar is Unicode-aware.
//
// An offset that lands mid-encoding, or any invalid UTF-8 byte (Go
// strings cannot carry an unpaired surrogate directly; its encoded
// bytes are invalid UTF-8), decodes to utf8.RuneError with size 1.
// runeclass.IsForbidden does not include utf8.RuneError, so such a byte
// is reported only where it would start a token (as an Invalid
// "unexpected character U+FFFD"); inside a string or a comment it is
// accepted like any other rune.
type cursor struct {
	src *source.Source
	pos uint32
}

func newCursor(src *source.Source) *cursor {
	return &cursor{src: src}
}

func (c *cursor) isEmpty() bool { return int(c.pos) >= len(c.src.Body) }

// peekRuneAt decodes the rune starting at byte offset off, returning its
// size in bytes. A size of 0 means off is at or past the end.
func (c *cursor) peekRuneAt(off uint32) (rune, int) {
	if int(off) >= len(c.src.Body) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(c.src.Body[off:])
}

// peek returns the rune at the current position without consuming it.
// Returns 0 at end of input.
func (c *cursor) peek() rune {
	r, _ := c.peekRuneAt(c.pos)
	return r
}

// peekAhead returns the rune n positions ahead (peekAhead(0) == peek()).
func (c *cursor) peekAhead(n int) rune {
	off := c.pos
	var r rune
	var size int
	for i := 0; i <= n; i++ {
		r, size = c.peekRuneAt(off)
		if size == 0 {
			return 0
		}
		off += uint32(size)
	}
	return r
}

// next consumes and returns the rune at the current position, advancing
// by its code-unit length. Returns 0 and does not advance at end of
// input.
func (c *cursor) next() rune {
	r, size := c.peekRuneAt(c.pos)
	if size == 0 {
		return 0
	}
	c.pos += uint32(size)
	return r
}

func (c *cursor) check(pred func(rune) bool) bool {
	return !c.isEmpty() && pred(c.peek())
}

func (c *cursor) checkRune(want rune) bool {
	return !c.isEmpty() && c.peek() == want
}

func (c *cursor) checkString(s string) bool {
	end := int(c.pos) + len(s)
	if end > len(c.src.Body) {
		return false
	}
	return c.src.Body[c.pos:end] == s
}

// match consumes and returns true if pred holds at the current
// position; otherwise leaves the cursor unmoved and returns false.
func (c *cursor) match(pred func(rune) bool) bool {
	if c.check(pred) {
		c.next()
		return true
	}
	return false
}

func (c *cursor) matchRune(want rune) bool {
	if c.checkRune(want) {
		c.next()
		return true
	}
	return false
}

func (c *cursor) matchString(s string) bool {
	if c.checkString(s) {
		c.pos += uint32(len(s))
		return true
	}
	return false
}

// nextWhile consumes runes while pred holds, returning the count
// consumed.
func (c *cursor) nextWhile(pred func(rune) bool) int {
	n := 0
	for c.check(pred) {
		c.next()
		n++
	}
	return n
}

// mark saves the current byte offset for a later locSince/textSince.
func (c *cursor) mark() uint32 { return c.pos }

// here returns a zero-length Loc anchored at the current position.
func (c *cursor) here() source.Loc { return source.Here(c.pos) }

// locSince returns the Loc spanning from mark to the current position.
func (c *cursor) locSince(mark uint32) source.Loc { return source.FromRange(mark, c.pos) }

// textSince returns the raw source text spanning from mark to the
// current position.
func (c *cursor) textSince(mark uint32) string { return c.src.Body[mark:c.pos] }
