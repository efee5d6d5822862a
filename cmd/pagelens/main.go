package main

import (
	"github.com/meridian-labs/pagelens-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
