package main

import (
	"os"

	"github.com/shellgate/shellgate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
