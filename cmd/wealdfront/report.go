package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/weald-lang/weald/problem"
	"github.com/weald-lang/weald/source"
)

// styles holds the color formatters used for status lines. Diagnostic
// text itself is never colorized here — problem.FormatForConsole already
// produces the full line; styles only decorate the summary printed
// after it.
type styles struct {
	ok   *color.Color
	fail *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		ok:   color.New(color.FgGreen),
		fail: color.New(color.Bold, color.FgRed),
	}
	if !enabled {
		s.ok.DisableColor()
		s.fail.DisableColor()
	}
	return s
}

// printProblems writes every recorded problem as one line each, then a
// colored pass/fail summary.
func printProblems(w io.Writer, src *source.Source, probs *problem.Problems, colorEnabled bool) {
	s := newStyles(colorEnabled)
	for _, p := range probs.All() {
		fmt.Fprintln(w, problem.FormatForConsole(src, p))
	}
	if probs.Len() == 0 {
		s.ok.Fprintln(w, "ok: no problems found")
		return
	}
	s.fail.Fprintf(w, "found %d problem(s)\n", probs.Len())
}
