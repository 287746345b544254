package main

import (
	"os"

	"github.com/nivesh-dev/nivesh/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
