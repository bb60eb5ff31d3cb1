package main

import (
	"os"

	"github.com/alphazella/zella/cmd/zella/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
