package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weald-lang/weald/lexer"
	"github.com/weald-lang/weald/source"
	"github.com/weald-lang/weald/token"
)

func tags(toks []token.Token) []token.Tag {
	out := make([]token.Tag, len(toks))
	for i, t := range toks {
		out[i] = t.Tag
	}
	return out
}

func TestTokenize_Empty(t *testing.T) {
	toks, probs := lexer.New(source.New("t", "")).Tokenize()
	require.Equal(t, 0, probs.Len())
	require.Equal(t, []token.Tag{token.End}, tags(toks))
	assert.Equal(t, source.Here(0), toks[0].Loc)
}

func TestTokenize_LetBinding(t *testing.T) {
	toks, probs := lexer.New(source.New("t", "let x = 1 + 2")).Tokenize()
	require.Equal(t, 0, probs.Len())
	require.Equal(t, []token.Tag{
		token.KwLet, token.Name, token.PEqual, token.Integer, token.PPlus, token.Integer, token.End,
	}, tags(toks))
	assert.Equal(t, "x", toks[1].Text)
	assert.Equal(t, "1", toks[3].Text)
	assert.Equal(t, "2", toks[5].Text)
}

func TestTokenize_SingleNewlineCollapsed(t *testing.T) {
	toks, _ := lexer.New(source.New("t", "let x = 1\n\n\nlet y = 2")).Tokenize()
	count := 0
	for _, tag := range tags(toks) {
		if tag == token.Newline {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestTokenize_Comment(t *testing.T) {
	toks, probs := lexer.New(source.New("t", "let x = 1 -- trailing comment\n")).Tokenize()
	require.Equal(t, 0, probs.Len())
	require.Equal(t, []token.Tag{token.KwLet, token.Name, token.PEqual, token.Integer, token.Newline, token.End}, tags(toks))
}

func TestTokenize_HexAndBinaryIntegers(t *testing.T) {
	toks, probs := lexer.New(source.New("t", "0xFFF_FF + 0b10_01")).Tokenize()
	require.Equal(t, 0, probs.Len())
	require.Equal(t, []token.Tag{token.Integer, token.PPlus, token.Integer, token.End}, tags(toks))
	assert.Equal(t, "0xFFF_FF", toks[0].Text)
	assert.Equal(t, "0b10_01", toks[2].Text)
}

func TestTokenize_Float(t *testing.T) {
	toks, probs := lexer.New(source.New("t", "3.14e-2")).Tokenize()
	require.Equal(t, 0, probs.Len())
	require.Len(t, toks, 2)
	assert.Equal(t, token.Float, toks[0].Tag)
	assert.Equal(t, "3.14e-2", toks[0].Text)
}

func TestTokenize_AmbiguousComparisonChain(t *testing.T) {
	toks, probs := lexer.New(source.New("t", "1 == 2 != 3")).Tokenize()
	require.Equal(t, 0, probs.Len()) // ambiguity is a parser-level concern, not lexical
	require.Equal(t, []token.Tag{
		token.Integer, token.PEqualEqual, token.Integer, token.PBangEqual, token.Integer, token.End,
	}, tags(toks))
}

func TestTokenize_UnterminatedStringAfterBackslash(t *testing.T) {
	toks, probs := lexer.New(source.New("t", `"foo\`)).Tokenize()
	require.Equal(t, 1, probs.Len())
	assert.Equal(t, "syntax/invalid-token", probs.All()[0].Desc.Id)
	require.Equal(t, []token.Tag{token.Invalid, token.End}, tags(toks))
	assert.Equal(t, "unclosed string literal", toks[0].Text)
}

func TestTokenize_StandaloneAmpersandIsInvalid(t *testing.T) {
	toks, probs := lexer.New(source.New("t", "a & b")).Tokenize()
	require.Equal(t, 1, probs.Len())
	require.Equal(t, []token.Tag{token.Name, token.Invalid, token.Name, token.End}, tags(toks))
}

func TestTokenize_DoubleAmpersandAndDoublePipe(t *testing.T) {
	toks, probs := lexer.New(source.New("t", "a && b || c")).Tokenize()
	require.Equal(t, 0, probs.Len())
	require.Equal(t, []token.Tag{
		token.Name, token.PAndAnd, token.Name, token.POrOr, token.Name, token.End,
	}, tags(toks))
}

func TestTokenize_NameKeywordsAndDiscard(t *testing.T) {
	toks, _ := lexer.New(source.New("t", "if else true false let _")).Tokenize()
	require.Equal(t, []token.Tag{
		token.KwIf, token.KwElse, token.KwTrue, token.KwFalse, token.KwLet, token.KwDiscard, token.End,
	}, tags(toks))
}

func TestTokenize_NameWithMedialAndFinal(t *testing.T) {
	toks, probs := lexer.New(source.New("t", "list-empty?")).Tokenize()
	require.Equal(t, 0, probs.Len())
	require.Equal(t, []token.Tag{token.Name, token.End}, tags(toks))
	assert.Equal(t, "list-empty?", toks[0].Text)
}

func TestTokenize_BlockStringAllowsNewlines(t *testing.T) {
	toks, probs := lexer.New(source.New("t", "\"\"\"\nhello\nworld\n\"\"\"")).Tokenize()
	require.Equal(t, 0, probs.Len())
	require.Equal(t, []token.Tag{token.String, token.End}, tags(toks))
}

func TestTokenize_RawStringHasNoEscapes(t *testing.T) {
	toks, probs := lexer.New(source.New("t", "`a\\nb`")).Tokenize()
	require.Equal(t, 0, probs.Len())
	assert.Equal(t, "`a\\nb`", toks[0].Text)
}

func TestTokenize_InvalidEscape(t *testing.T) {
	toks, probs := lexer.New(source.New("t", `"a\qb"`)).Tokenize()
	require.Equal(t, 1, probs.Len())
	assert.Equal(t, "syntax/invalid-escape", probs.All()[0].Desc.Id)
	assert.Equal(t, token.String, toks[0].Tag)
}

func TestTokenize_ForbiddenControlCharacter(t *testing.T) {
	toks, probs := lexer.New(source.New("t", "a\x00b")).Tokenize()
	require.Equal(t, 1, probs.Len())
	require.Equal(t, []token.Tag{token.Name, token.Invalid, token.Name, token.End}, tags(toks))
}

func TestTokenize_ShebangAndBOMAreSkipped(t *testing.T) {
	toks, probs := lexer.New(source.New("t", "\uFEFF#!/usr/bin/env weald\nlet x = 1")).Tokenize()
	require.Equal(t, 0, probs.Len())
	require.Equal(t, []token.Tag{token.KwLet, token.Name, token.PEqual, token.Integer, token.End}, tags(toks))
}

func TestTokenize_LeadingNewlineNeverStartsTheStream(t *testing.T) {
	toks, _ := lexer.New(source.New("t", "\nlet x = 1")).Tokenize()
	require.Equal(t, []token.Tag{token.KwLet, token.Name, token.PEqual, token.Integer, token.End}, tags(toks))
}

func TestTokenize_OverflowingIntegerStillLexesAsInteger(t *testing.T) {
	toks, probs := lexer.New(source.New("t", "170141183460469231731687303715884105728")).Tokenize()
	require.Equal(t, 0, probs.Len()) // overflow is detected by the parser, not the lexer
	require.Equal(t, []token.Tag{token.Integer, token.End}, tags(toks))
}
