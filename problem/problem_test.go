package problem_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weald-lang/weald/problem"
	"github.com/weald-lang/weald/source"
)

func TestProblems_AddPreservesOrderAndDuplicates(t *testing.T) {
	var probs problem.Problems
	loc := source.FromRange(0, 1)
	probs.Add("syntax/expected-expr", loc, "expected an expression")
	probs.Add("syntax/expected-expr", loc, "expected an expression") // duplicate at same Loc
	probs.Add("syntax/unclosed-group", source.FromRange(2, 3), "unclosed group")

	require.Equal(t, 3, probs.Len())
	all := probs.All()
	assert.Equal(t, "syntax/expected-expr", all[0].Desc.Id)
	assert.Equal(t, "syntax/expected-expr", all[1].Desc.Id)
	assert.Equal(t, "syntax/unclosed-group", all[2].Desc.Id)
	assert.Equal(t, loc, all[0].Loc)
	assert.Equal(t, loc, all[1].Loc)
}

func TestFormatForConsole(t *testing.T) {
	src := source.New("main.weald", "let x = 1")
	var probs problem.Problems
	probs.Add("syntax/expected-let-eq", source.FromRange(4, 5), "expected '='")

	got := problem.FormatForConsole(src, probs.All()[0])
	assert.Equal(t, "main.weald:1:5: expected '=' [syntax/expected-let-eq]", got)
}
