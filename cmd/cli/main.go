package main

import (
	"fmt"
	"os"

	"github.com/de-tools/analytix/pkg/runtime/terminal"
)

func main() {
	cli, err := terminal.NewCLI(terminal.Options{
		Output: os.Stdout,
		Input:  os.Stdin,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
