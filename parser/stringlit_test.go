package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFlavor(t *testing.T) {
	cases := []struct {
		text  string
		want  stringFlavor
		width int
	}{
		{`"hi"`, flavorStdLine, 1},
		{"`hi`", flavorRawLine, 1},
		{`"""` + "\nhi\n" + `"""`, flavorStdBlock, 3},
		{"```\nhi\n```", flavorRawBlock, 3},
	}
	for _, c := range cases {
		flavor, width := detectFlavor(c.text)
		assert.Equal(t, c.want, flavor, c.text)
		assert.Equal(t, c.width, width, c.text)
	}
}

func TestInterpretString_StdLineUnescapesAndSplitsSpans(t *testing.T) {
	opening, content, closing, interpreted := interpretString(`"a\nb"`, 10)
	assert.Equal(t, "a\nb", interpreted)
	assert.Equal(t, uint32(10), opening.Start)
	assert.Equal(t, uint32(1), opening.Length)
	assert.Equal(t, uint32(11), content.Start)
	assert.Equal(t, uint32(4), content.Length)
	assert.Equal(t, uint32(15), closing.Start)
	assert.Equal(t, uint32(1), closing.Length)
}

func TestInterpretString_RawLinePassesThroughVerbatim(t *testing.T) {
	_, _, _, interpreted := interpretString("`a\\nb`", 0)
	assert.Equal(t, `a\nb`, interpreted)
}

func TestInterpretString_StdBlockDedentsAndUnescapes(t *testing.T) {
	_, _, _, interpreted := interpretString("\"\"\"\n  a\\tb\n  c\n  \"\"\"", 0)
	assert.Equal(t, "a\tb\nc", interpreted)
}

func TestDedentBlock_StripsLongestCommonLiteralPrefix(t *testing.T) {
	got := dedentBlock("\n  hello\n    world\n  ")
	assert.Equal(t, "hello\n  world", got)
}

func TestDedentBlock_IgnoresBlankLinesWhenComputingPrefix(t *testing.T) {
	got := dedentBlock("\n  a\n\n  b\n  ")
	assert.Equal(t, "a\n\nb", got)
}

func TestDedentBlock_EmptyBodyYieldsEmptyString(t *testing.T) {
	assert.Equal(t, "", dedentBlock("\n  "))
}

func TestDedentBlock_OpeningLineTextIsDropped(t *testing.T) {
	got := dedentBlock("hello\n  world\n")
	assert.Equal(t, "world", got)
}

func TestUnescape_HandlesEveryRecognizedEscape(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`\"`, `"`},
		{`\\`, `\`},
		{`\e`, "\x1b"},
		{`\n`, "\n"},
		{`\r`, "\r"},
		{`\t`, "\t"},
		{`\x41`, "A"},
		{`\u{48}`, "H"},
		{`A`, "A"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, unescape(c.in), c.in)
	}
}

func TestUnescape_LineContinuationSwallowsFollowingWhitespace(t *testing.T) {
	got := unescape("a\\\n   \nb")
	assert.Equal(t, "ab", got)
}

func TestUnescape_MalformedEscapePassesThroughLiterally(t *testing.T) {
	// The lexer already reported syntax/invalid-escape for shapes like
	// these; unescape must not panic or silently drop the backslash.
	assert.Equal(t, `\q`, unescape(`\q`))
	assert.Equal(t, `\x4`, unescape(`\x4`))
	assert.Equal(t, `\u{}`, unescape(`\u{}`))
	assert.Equal(t, `\u12`, unescape(`\u12`))
}

func TestParseUnicodeEscape_BracedForm(t *testing.T) {
	consumed, r, ok := parseUnicodeEscape("{1F600}rest")
	require.True(t, ok)
	assert.Equal(t, rune(0x1F600), r)
	assert.Equal(t, len("{1F600}"), consumed)
}

func TestParseUnicodeEscape_FixedFourDigitForm(t *testing.T) {
	consumed, r, ok := parseUnicodeEscape("0041rest")
	require.True(t, ok)
	assert.Equal(t, rune('A'), r)
	assert.Equal(t, 4, consumed)
}

func TestParseUnicodeEscape_RejectsShortOrUnclosedForms(t *testing.T) {
	_, _, ok := parseUnicodeEscape("{41")
	assert.False(t, ok)
	_, _, ok = parseUnicodeEscape("12")
	assert.False(t, ok)
}
