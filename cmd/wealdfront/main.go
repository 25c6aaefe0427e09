// Command wealdfront is a thin CLI wrapper around the Weald front end:
// it lexes or parses a single file and prints the result. One file per
// subcommand, with a shared root.go wiring persistent flags and logging.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
