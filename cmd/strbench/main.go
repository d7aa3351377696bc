// Package main provides the entry point for the strbench CLI.
package main

import (
	"os"

	"github.com/Anish-Chanda/substring-search/cmd/strbench/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
