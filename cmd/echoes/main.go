// Package main provides the entry point for the echoes focus timer.
//
// Echoes runs a countdown over looping ambient area media, driven by a
// Bubbletea TUI. Session plans, history, and streaks are kept locally;
// an optional backend mirrors them.
package main

import "github.com/pharloom/echoes/internal/cli"

func main() {
	cli.Execute()
}
