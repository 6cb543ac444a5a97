package main

import (
	"os"

	"github.com/i3tracker/i3tracker/internal/fault"
)

var version = "0.1.0"

func main() {
	rootCmd.SetOut(os.Stdout)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(fault.ExitCode(err))
	}
}
