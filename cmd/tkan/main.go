// Package main implements the tkan CLI tool.
package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tkanlabs/tkan/internal/listflags"
)

const debugEnvVar = "TKAN_DEBUG"

func main() {
	initLogging()

	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tkan",
	Short: "tkan - a personal kanban board for your terminal",
	Args:  cobra.NoArgs,
	RunE:  runRoot,
}

var rootJSON bool

func init() {
	listflags.AddJSONFlag(rootCmd, &rootJSON)
}

// runRoot opens the board when attached to a terminal and falls back to a
// plain listing otherwise, so `tkan | head` and `tkan --json` stay usable
// in pipelines.
func runRoot(cmd *cobra.Command, args []string) error {
	if rootJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
		taskListJSON = rootJSON
		return runTaskList(cmd, args)
	}
	return runBoard(cmd, args)
}

func initLogging() {
	level := slog.LevelWarn
	if os.Getenv(debugEnvVar) != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
