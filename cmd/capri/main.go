// Package main is the entry point for the capri CLI.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/rotorz/capri/internal/cmd"
	"github.com/rotorz/capri/internal/version"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	// fang reports errors itself; an ExitError only contributes its code.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.Get().Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *cmd.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(cmd.ExitCodeFromError(err))
	}
}
