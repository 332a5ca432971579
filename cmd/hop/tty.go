package main

import (
	"os"

	"github.com/mattn/go-isatty"
)

// stdoutIsTTY reports whether stdout is a terminal. The interactive picker
// draws on stderr, but its selection goes to stdout; when stdout is a pipe
// the caller is a script and the picker would deadlock it.
func stdoutIsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
