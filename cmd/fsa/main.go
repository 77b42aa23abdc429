package main

import (
	"os"

	"github.com/geange/fsa/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
