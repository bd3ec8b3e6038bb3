package main

import (
	"os"

	"github.com/ivmanto/site/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
