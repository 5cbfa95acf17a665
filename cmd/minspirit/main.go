// Command minspirit is the local MinSpirit client. It keeps the data of one
// device in a SQLite file and runs countdowns in the terminal.
package main

import (
	"fmt"
	"os"
)

func main() {
	cli := newCLI(openEnv)
	if err := cli.root().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
