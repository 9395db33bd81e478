package main

import (
	"fmt"
	"os"

	"github.com/nace/klet/internal/cli"
	"github.com/nace/klet/internal/exitcode"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitcode.Usage)
	}
	os.Exit(cli.Status())
}
