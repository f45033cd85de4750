package main

import (
	"os"

	"github.com/averin/ytm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
