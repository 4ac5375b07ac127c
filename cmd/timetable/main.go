package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newCLI().rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
