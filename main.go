package main

import (
	"os"

	"github.com/skycast-io/skycast/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
