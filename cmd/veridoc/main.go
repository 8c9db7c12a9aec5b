package main

import (
	"github.com/custodia-labs/veridoc-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
