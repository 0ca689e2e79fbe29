package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/muesli/reflow/wordwrap"

	"github.com/tkanlabs/tkan/internal/ui"
	"github.com/tkanlabs/tkan/task"
)

const taskDetailLineWidth = 80

var (
	overdueAccent = color.New(color.FgRed, color.Bold)
	dueSoonAccent = color.New(color.FgYellow)
)

// printTaskDetail prints detailed information about a task.
func printTaskDetail(t task.Task, highlight func(string) string, warnDays int, now time.Time) {
	fmt.Printf("ID:       %s\n", highlight(t.ID))
	fmt.Println(wrapDetailValue("Title:    ", t.Title))
	fmt.Printf("Status:   %s\n", t.Status)
	fmt.Printf("Priority: %s (%s)\n", t.Priority.Label(), t.Priority)
	fmt.Printf("Deadline: %s\n", formatDetailDeadline(t, warnDays, now))
	fmt.Printf("Created:  %s\n", t.CreatedAt.Local().Format("2006-01-02 15:04:05"))

	if t.Description != "" {
		fmt.Printf("\nDescription:\n%s\n", formatTaskDescription(t.Description))
	}
}

func formatDetailDeadline(t task.Task, warnDays int, now time.Time) string {
	value := ui.FormatDeadline(t.Deadline)
	switch ui.ClassifyDeadline(t, warnDays, now) {
	case ui.DeadlineOverdue:
		return fmt.Sprintf("%s %s", value, overdueAccent.Sprint("(overdue)"))
	case ui.DeadlineSoon:
		return fmt.Sprintf("%s %s", value, dueSoonAccent.Sprint("(due soon)"))
	default:
		return value
	}
}

func formatTaskDescription(value string) string {
	return renderMarkdownOrDash(value, taskDetailLineWidth)
}

// wrapDetailValue wraps a field value at the detail line width, indenting
// continuation lines under the first.
func wrapDetailValue(prefix, value string) string {
	wrapWidth := taskDetailLineWidth - len(prefix)
	if wrapWidth < 1 {
		wrapWidth = 1
	}
	wrapped := wordwrap.String(value, wrapWidth)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		if i == 0 {
			lines[i] = prefix + line
			continue
		}
		lines[i] = strings.Repeat(" ", len(prefix)) + line
	}
	return strings.Join(lines, "\n")
}
