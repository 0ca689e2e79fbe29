// Package listflags wires the flags shared by every list-shaped command.
package listflags

import "github.com/spf13/cobra"

// AddAllFlag adds a shared --all flag to list commands.
func AddAllFlag(cmd *cobra.Command, target *bool) {
	if target == nil {
		cmd.Flags().Bool("all", false, "Include done tasks")
		return
	}

	cmd.Flags().BoolVar(target, "all", false, "Include done tasks")
}

// AddJSONFlag adds a shared --json output flag.
func AddJSONFlag(cmd *cobra.Command, target *bool) {
	if target == nil {
		cmd.Flags().Bool("json", false, "Output as JSON")
		return
	}

	cmd.Flags().BoolVar(target, "json", false, "Output as JSON")
}

// AddSortFlag adds a shared --sort flag to list commands.
func AddSortFlag(cmd *cobra.Command, target *string) {
	if target == nil {
		cmd.Flags().String("sort", "", "Sort order (priority, date, deadline)")
		return
	}

	cmd.Flags().StringVar(target, "sort", "", "Sort order (priority, date, deadline)")
}
