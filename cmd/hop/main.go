// Package main is the entry point for the hop CLI.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	err := newRootCmd().Execute()
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "hop: %v\n", err)
	if errors.Is(err, errNoMatch) || errors.Is(err, errNoSelection) {
		os.Exit(1)
	}
	os.Exit(2)
}
