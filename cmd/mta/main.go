package main

import (
	"os"

	"github.com/msto63/mTA/cmd/mta/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
