package task

import "time"

// Task represents one unit of work on the board.
type Task struct {
	// ID is a unique identifier (8-char alphanumeric, derived from initial title + timestamp).
	ID string `json:"id"`

	// Title is the short summary of the task. Never empty.
	Title string `json:"title"`

	// Description provides additional context about the task.
	Description string `json:"description"`

	// Priority is the Eisenhower-matrix quadrant.
	Priority Priority `json:"priority"`

	// Status is the board column the task occupies.
	Status Status `json:"status"`

	// Deadline is the due date (nil when the task has none).
	Deadline *Date `json:"deadline,omitempty"`

	// CreatedAt is when the task was created. Immutable; preserves creation
	// order regardless of later edits.
	CreatedAt time.Time `json:"created_at"`
}

// Equal reports whether two tasks identify the same task.
func (t Task) Equal(other Task) bool {
	return t.ID == other.ID
}

// Clone returns a copy of the task that shares no pointers with the original.
func (t Task) Clone() Task {
	clone := t
	if t.Deadline != nil {
		deadline := *t.Deadline
		clone.Deadline = &deadline
	}
	return clone
}

// Overdue reports whether the task's deadline has passed as of now.
// Tasks without a deadline are never overdue.
func (t Task) Overdue(now time.Time) bool {
	if t.Deadline == nil {
		return false
	}
	return t.Deadline.Before(DateOf(now).Time)
}

// DueWithin reports whether the task's deadline falls inside the next
// days days, today included. Overdue tasks and tasks without a deadline
// are excluded.
func (t Task) DueWithin(days int, now time.Time) bool {
	if t.Deadline == nil || t.Overdue(now) {
		return false
	}
	cutoff := DateOf(now).AddDate(0, 0, days)
	return !t.Deadline.After(cutoff)
}
