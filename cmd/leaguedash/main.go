package main

import (
	"os"

	"github.com/hrutik5321/leaguedash/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
