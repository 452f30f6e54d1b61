package main

import (
	"os"

	"github.com/archestra-labs/memcore/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
