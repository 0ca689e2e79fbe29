package ui

import (
	"time"

	"github.com/tkanlabs/tkan/task"
)

// DeadlineState classifies how pressing a task's deadline is.
type DeadlineState int

const (
	// DeadlineNone means the task has no deadline.
	DeadlineNone DeadlineState = iota

	// DeadlineAhead means the deadline is comfortably in the future.
	DeadlineAhead

	// DeadlineSoon means the deadline falls within the warning window.
	DeadlineSoon

	// DeadlineOverdue means the deadline has passed.
	DeadlineOverdue
)

// ClassifyDeadline reports the deadline state of a task as of now.
// warnDays is how many days ahead a deadline counts as due soon.
func ClassifyDeadline(t task.Task, warnDays int, now time.Time) DeadlineState {
	switch {
	case t.Deadline == nil:
		return DeadlineNone
	case t.Overdue(now):
		return DeadlineOverdue
	case t.DueWithin(warnDays, now):
		return DeadlineSoon
	default:
		return DeadlineAhead
	}
}

// FormatDeadline returns the full YYYY-MM-DD form, or "-" without one.
func FormatDeadline(deadline *task.Date) string {
	if deadline == nil {
		return "-"
	}
	return deadline.String()
}

// FormatDeadlineShort returns the compact MM/DD form used on board cards.
func FormatDeadlineShort(deadline *task.Date) string {
	if deadline == nil {
		return ""
	}
	return deadline.Format("01/02")
}
