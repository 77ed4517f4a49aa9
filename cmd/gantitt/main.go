package main

import (
	"fmt"
	"os"

	"github.com/pablasso/gantitt/internal/cli"
)

func main() {
	// If no args, launch the editor; otherwise route to the CLI
	if len(os.Args) == 1 {
		if err := cli.RunEditor(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := cli.Execute(); err != nil {
			os.Exit(1)
		}
	}
}
