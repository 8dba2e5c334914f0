package main

import (
	"os"

	"github.com/bailrook/logview/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
