package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weald-lang/weald/lexer"
	"github.com/weald-lang/weald/source"
)

var lexNoColor bool

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a Weald source file and print its tokens as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func init() {
	lexCmd.Flags().BoolVar(&lexNoColor, "no-color", false, "disable colored status output")
}

// tokenJSON is the wire shape printed for each token; it exists
// separately from token.Token because a token's Loc is only meaningful
// paired with the source it was lexed from, and a CLI consumer wants the
// resolved line:column range, not a raw byte offset.
type tokenJSON struct {
	Tag  string `json:"tag"`
	Text string `json:"text,omitempty"`
	Span string `json:"span"`
}

func runLex(cmd *cobra.Command, args []string) error {
	path := args[0]
	body, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	src := source.New(path, string(body))
	logger.Debug("tokenizing", "path", path, "bytes", len(body))
	toks, probs := lexer.New(src).Tokenize()

	out := make([]tokenJSON, len(toks))
	for i, t := range toks {
		out[i] = tokenJSON{
			Tag:  t.Tag.String(),
			Text: t.Text,
			Span: source.RangeOf(src, t.Loc).String(),
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding tokens: %w", err)
	}

	printProblems(cmd.ErrOrStderr(), src, probs, !lexNoColor)
	if probs.Len() > 0 {
		return fmt.Errorf("%d lexical problem(s) in %s", probs.Len(), path)
	}
	return nil
}
