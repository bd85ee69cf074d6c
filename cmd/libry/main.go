package main

import (
	"os"

	"github.com/MrJamesThe3rd/libry/cmd/libry/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
