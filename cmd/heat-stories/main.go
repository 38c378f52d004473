package main

import (
	"os"

	"github.com/mrmchughes/home-energy-analysis-tool/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
