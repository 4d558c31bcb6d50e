package main

import (
	"os"

	"github.com/rustyeddy/perpbot/cmd/perpbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
