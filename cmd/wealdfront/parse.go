package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weald-lang/weald/lexer"
	"github.com/weald-lang/weald/parser"
	"github.com/weald-lang/weald/source"
)

var parseNoColor bool

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a Weald source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseNoColor, "no-color", false, "disable colored status output")
}

type scriptJSON struct {
	Tree string `json:"tree"`
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	body, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	src := source.New(path, string(body))
	toks, lexProbs := lexer.New(src).Tokenize()
	logger.Debug("parsing", "path", path, "tokens", len(toks))
	script, parseProbs := parser.Parse(toks)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(scriptJSON{Tree: script.String()}); err != nil {
		return fmt.Errorf("encoding syntax tree: %w", err)
	}

	all := lexProbs
	for _, p := range parseProbs.All() {
		all.Add(p.Desc.Id, p.Loc, "%s", p.Desc.Message)
	}
	printProblems(cmd.ErrOrStderr(), src, all, !parseNoColor)
	if all.Len() > 0 {
		return fmt.Errorf("%d problem(s) in %s", all.Len(), path)
	}
	return nil
}
