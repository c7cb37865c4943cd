package main

import (
	"os"

	"github.com/rustyeddy/futureslog/cmd/futureslog/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
