package main

import (
	"fmt"
	"strings"
)

func taskEmptyListMessage(total int, status string, includeAll bool, hasDone bool) string {
	if total == 0 {
		return "No tasks found."
	}

	status = strings.TrimSpace(status)
	if status != "" {
		return fmt.Sprintf("No tasks found with status %s.", strings.ToLower(status))
	}

	if !includeAll && hasDone {
		return "No tasks found. Use --all to include done tasks."
	}

	return "No tasks found."
}
