package main

import (
	"os"

	"github.com/schoolboyqueue/eslint-watch/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
