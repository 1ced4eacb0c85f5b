package main

import (
	"os"

	"github.com/monoctl/monoctl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
