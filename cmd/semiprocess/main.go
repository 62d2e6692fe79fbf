package main

import (
	"os"

	"github.com/jkwjkw1020-bot/semiprocess-mcp/cmd/semiprocess/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
