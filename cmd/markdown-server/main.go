// Package main provides the entry point for the markdown server.
package main

import (
	"fmt"
	"os"

	"github.com/mrepper/markdown-server/cmd/markdown-server/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
