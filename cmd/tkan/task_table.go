package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"

	"github.com/tkanlabs/tkan/internal/ui"
	"github.com/tkanlabs/tkan/task"
)

const taskTableTitleWidth = 60

// printTaskTable prints tasks in a table format.
func printTaskTable(tasks []task.Task, prefixLengths map[string]int, warnDays int, now time.Time) {
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return
	}

	fmt.Println(formatTaskTable(tasks, prefixLengths, ui.HighlightID, warnDays, now))
}

func formatTaskTable(tasks []task.Task, prefixLengths map[string]int, highlight func(string, int) string, warnDays int, now time.Time) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Options.SeparateRows = false

	tw.AppendHeader(table.Row{"ID", "Title", "Status", "Priority", "Deadline", "Age"})

	if prefixLengths == nil {
		prefixLengths = taskIDPrefixLengths(tasks)
	}

	ansi := ui.ANSIEnabled()
	for _, t := range tasks {
		title := truncateTitle(t.Title, taskTableTitleWidth)
		prefixLen := prefixLengths[strings.ToLower(t.ID)]
		highlighted := highlight(t.ID, prefixLen)
		deadline := formatDeadlineCell(t, warnDays, now, ansi)
		age := ui.FormatDurationShort(now.Sub(t.CreatedAt))
		tw.AppendRow(table.Row{
			highlighted,
			title,
			string(t.Status),
			t.Priority.Label(),
			deadline,
			age,
		})
	}

	return tw.Render()
}

func taskIDPrefixLengths(tasks []task.Task) map[string]int {
	index := task.NewIDIndex(tasks)
	return index.PrefixLengths()
}

// formatDeadlineCell renders the deadline column. Overdue deadlines carry a
// trailing "!" so the signal survives colorless output.
func formatDeadlineCell(t task.Task, warnDays int, now time.Time, ansi bool) string {
	value := ui.FormatDeadline(t.Deadline)
	switch ui.ClassifyDeadline(t, warnDays, now) {
	case ui.DeadlineOverdue:
		value += "!"
		if ansi {
			value = text.FgHiRed.Sprint(value)
		}
	case ui.DeadlineSoon:
		if ansi {
			value = text.FgHiYellow.Sprint(value)
		}
	}
	return value
}

func truncateTitle(value string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(value, width, "...")
}
