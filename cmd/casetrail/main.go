package main

import (
	"os"

	"github.com/casetrail/casetrail/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
