// Package task implements the data model and engine behind a personal
// kanban board.
//
// Tasks occupy one of three columns (todo, doing, done) and carry an
// Eisenhower-matrix priority plus an optional deadline. A Manager owns the
// authoritative collection: it loads the board from a single file at
// construction, applies every mutation through Create/Update/Delete, and
// writes the whole collection back after each successful change.
//
// The public API mirrors what a board front end needs:
//   - Create, Update, Delete for the task lifecycle
//   - Get, List, TasksByStatus for querying
//   - SortByPriority, SortByDate, SortByDeadline for display ordering
//   - Save, ForceSave for the persistence lifecycle
package task

// Status is the board column a task occupies.
type Status string

const (
	// StatusTodo indicates the task has not been started.
	StatusTodo Status = "todo"

	// StatusDoing indicates the task is in progress.
	StatusDoing Status = "doing"

	// StatusDone indicates the task is finished.
	StatusDone Status = "done"
)

// ValidStatuses returns all valid status values in column order.
func ValidStatuses() []Status {
	return []Status{StatusTodo, StatusDoing, StatusDone}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Priority is the Eisenhower-matrix quadrant of a task.
type Priority string

const (
	// PriorityUrgentImportant is the "do first" quadrant.
	PriorityUrgentImportant Priority = "urgent_important"

	// PriorityNotUrgentImportant is the "schedule" quadrant.
	PriorityNotUrgentImportant Priority = "not_urgent_important"

	// PriorityUrgentNotImportant is the "delegate" quadrant.
	PriorityUrgentNotImportant Priority = "urgent_not_important"

	// PriorityNotUrgentNotImportant is the "eliminate" quadrant.
	PriorityNotUrgentNotImportant Priority = "not_urgent_not_important"
)

// DefaultPriority is assigned when a task is created without a priority.
const DefaultPriority = PriorityNotUrgentNotImportant

// ValidPriorities returns all valid priority values, most urgent first.
func ValidPriorities() []Priority {
	return []Priority{
		PriorityUrgentImportant,
		PriorityNotUrgentImportant,
		PriorityUrgentNotImportant,
		PriorityNotUrgentNotImportant,
	}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	_, ok := priorityTable[p]
	return ok
}

// priorityMeta holds the ordering and display attributes attached to a
// priority value. Display concerns stay out of the tag definition itself.
type priorityMeta struct {
	rank  int
	label string
	color string
}

var priorityTable = map[Priority]priorityMeta{
	PriorityUrgentImportant:       {rank: 0, label: "do first", color: "1"},
	PriorityNotUrgentImportant:    {rank: 1, label: "schedule", color: "3"},
	PriorityUrgentNotImportant:    {rank: 2, label: "delegate", color: "4"},
	PriorityNotUrgentNotImportant: {rank: 3, label: "eliminate", color: "244"},
}

// Rank returns the sort rank for a priority. Lower ranks are more urgent;
// unknown priorities rank after every known one.
func (p Priority) Rank() int {
	meta, ok := priorityTable[p]
	if !ok {
		return len(priorityTable)
	}
	return meta.rank
}

// Label returns the human-readable action for a priority.
func (p Priority) Label() string {
	meta, ok := priorityTable[p]
	if !ok {
		return "unknown"
	}
	return meta.label
}

// Color returns the ANSI 256-color code used to display a priority.
func (p Priority) Color() string {
	meta, ok := priorityTable[p]
	if !ok {
		return "7"
	}
	return meta.color
}

// StatusPtr returns a pointer to the provided status.
func StatusPtr(status Status) *Status {
	return &status
}

// PriorityPtr returns a pointer to the provided priority.
func PriorityPtr(priority Priority) *Priority {
	return &priority
}
