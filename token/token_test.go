package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weald-lang/weald/token"
)

func TestLookupKeyword(t *testing.T) {
	cases := map[string]token.Tag{
		"_": token.KwDiscard, "else": token.KwElse, "false": token.KwFalse,
		"if": token.KwIf, "let": token.KwLet, "true": token.KwTrue,
	}
	for text, want := range cases {
		got, ok := token.LookupKeyword(text)
		assert.True(t, ok, text)
		assert.Equal(t, want, got, text)
	}

	_, ok := token.LookupKeyword("discard")
	assert.False(t, ok)
}

func TestToken_IsPunctuationAndKeyword(t *testing.T) {
	tok := token.Token{Tag: token.PPlus}
	assert.True(t, tok.IsPunctuation())
	assert.False(t, tok.IsKeyword())

	kw := token.Token{Tag: token.KwIf}
	assert.True(t, kw.IsKeyword())
	assert.False(t, kw.IsPunctuation())

	name := token.Token{Tag: token.Name}
	assert.False(t, name.IsPunctuation())
	assert.False(t, name.IsKeyword())
}

func TestTag_String(t *testing.T) {
	assert.Equal(t, "if", token.KwIf.String())
	assert.Equal(t, "+", token.PPlus.String())
	assert.Equal(t, "End", token.End.String())
}
