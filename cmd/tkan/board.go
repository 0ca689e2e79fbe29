package main

import (
	"github.com/spf13/cobra"

	"github.com/tkanlabs/tkan/internal/boardtui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the kanban board",
	Args:  cobra.NoArgs,
	RunE:  runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
	manager, cfg, err := openTaskManager()
	if err != nil {
		return err
	}

	return boardtui.Run(cmd.Context(), manager, cfg.Board.DeadlineWarningDays)
}
