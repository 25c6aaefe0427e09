package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weald-lang/weald/source"
)

func TestCursor_PeekAndNextAdvanceByRune(t *testing.T) {
	c := newCursor(source.New("t", "aé中"))
	assert.Equal(t, 'a', c.peek())
	assert.Equal(t, rune('a'), c.next())
	assert.Equal(t, 'é', c.peek())
	assert.Equal(t, rune('é'), c.next())
	assert.Equal(t, '中', c.peek())
	assert.Equal(t, rune('中'), c.next())
	assert.True(t, c.isEmpty())
	assert.Equal(t, rune(0), c.next())
}

func TestCursor_PeekAheadLooksPastMultibyteRunes(t *testing.T) {
	c := newCursor(source.New("t", "é x"))
	assert.Equal(t, 'é', c.peekAhead(0))
	assert.Equal(t, ' ', c.peekAhead(1))
	assert.Equal(t, 'x', c.peekAhead(2))
	assert.Equal(t, rune(0), c.peekAhead(10))
}

func TestCursor_CheckStringAndMatchString(t *testing.T) {
	c := newCursor(source.New("t", `"""body`))
	assert.True(t, c.checkString(`"""`))
	assert.False(t, c.checkString("````"))
	require.True(t, c.matchString(`"""`))
	assert.Equal(t, uint32(3), c.pos)
	assert.False(t, c.matchString(`"""`))
}

func TestCursor_MatchRuneConsumesOnlyOnMatch(t *testing.T) {
	c := newCursor(source.New("t", "=="))
	assert.False(t, c.matchRune('!'))
	assert.True(t, c.matchRune('='))
	assert.True(t, c.matchRune('='))
	assert.True(t, c.isEmpty())
}

func TestCursor_NextWhileCountsConsumedRunes(t *testing.T) {
	c := newCursor(source.New("t", "123abc"))
	n := c.nextWhile(func(r rune) bool { return r >= '0' && r <= '9' })
	assert.Equal(t, 3, n)
	assert.Equal(t, "abc", c.src.Body[c.pos:])
}

func TestCursor_MarkLocSinceAndTextSince(t *testing.T) {
	c := newCursor(source.New("t", "let x"))
	start := c.mark()
	c.nextWhile(func(r rune) bool { return r != ' ' })
	assert.Equal(t, "let", c.textSince(start))
	assert.Equal(t, source.FromRange(0, 3), c.locSince(start))
}

func TestCursor_HereIsZeroLengthAtCurrentPosition(t *testing.T) {
	c := newCursor(source.New("t", "abc"))
	c.next()
	assert.Equal(t, source.Here(1), c.here())
}
