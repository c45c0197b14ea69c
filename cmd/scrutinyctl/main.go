// Package main provides scrutinyctl, an offline tool for browsing the
// classification taxonomy and scoring scrutiny inputs without a server.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
