package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool

	logLevel = new(slog.LevelVar)
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wealdfront",
	Short: "Lex and parse Weald source files",
	Long: `wealdfront drives the Weald language front end (lexer + parser)
from the command line, for inspecting tokens and syntax trees without
embedding the front end in a larger program.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch {
		case quiet:
			logLevel.Set(slog.LevelError)
		case verbose:
			logLevel.Set(slog.LevelDebug)
		default:
			logLevel.Set(slog.LevelInfo)
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug detail to stderr")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "log errors only")

	rootCmd.AddCommand(lexCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
