package task

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Manager owns the authoritative task collection and its persistence
// lifecycle. It is built for a single caller at a time (one CLI invocation
// or one board event loop) and performs no internal locking.
//
// Every successful mutation writes the whole collection through to disk
// before returning. A failed write is reported to the caller while the
// in-memory change stands, so the board keeps working and the caller
// decides how to surface the data-loss risk.
type Manager struct {
	store *Store
	tasks []Task
}

// NewManager opens the tasks file at path and loads the collection.
// A missing file starts an empty board; an unreadable or corrupt file also
// starts empty, with a warning, so construction never fails. The next save
// rewrites a valid file.
func NewManager(path string) *Manager {
	m := &Manager{store: NewStore(path)}
	tasks, err := m.store.Load()
	if err != nil {
		slog.Warn("could not load tasks, starting with an empty board", "path", path, "error", err)
		tasks = nil
	}
	m.tasks = tasks
	return m
}

// Path returns the file backing the manager.
func (m *Manager) Path() string {
	return m.store.Path()
}

// Len returns the number of tasks on the board.
func (m *Manager) Len() int {
	return len(m.tasks)
}

// CreateOptions configures a new task. The zero value creates a todo task
// with the default priority and no deadline.
type CreateOptions struct {
	// Description provides additional context.
	Description string

	// Priority is the Eisenhower quadrant. Unknown or empty values fall
	// back to DefaultPriority.
	Priority Priority

	// Status is the starting column. Unknown or empty values fall back
	// to StatusTodo.
	Status Status

	// Deadline is the due date as YYYY-MM-DD text. Text that does not
	// parse leaves the task without a deadline.
	Deadline string
}

// Create adds a task to the board and writes the collection through.
//
// The title is trimmed of surrounding whitespace first; a title that trims
// to nothing is rejected silently, returning (nil, nil) with the board
// untouched. On success the created task is returned; when the
// write-through fails, the task is still returned alongside the error
// because it remains on the in-memory board.
func (m *Manager) Create(title string, opts CreateOptions) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, nil
	}

	priority := opts.Priority
	if !priority.IsValid() {
		priority = DefaultPriority
	}
	status := opts.Status
	if !status.IsValid() {
		status = StatusTodo
	}

	var deadline *Date
	if parsed, err := ParseDate(opts.Deadline); err == nil {
		deadline = &parsed
	}

	now := time.Now()
	created := Task{
		ID:          m.freshID(title, now),
		Title:       title,
		Description: opts.Description,
		Priority:    priority,
		Status:      status,
		Deadline:    deadline,
		CreatedAt:   now,
	}
	m.tasks = append(m.tasks, created)

	if err := m.save(); err != nil {
		return &created, err
	}
	return &created, nil
}

// freshID generates an ID no task on the board already uses. The salt loop
// only matters when two same-titled tasks land on the same nanosecond.
func (m *Manager) freshID(title string, timestamp time.Time) string {
	id := GenerateID(title, timestamp)
	for salt := 1; m.indexOf(id) >= 0; salt++ {
		id = GenerateID(fmt.Sprintf("%s#%d", title, salt), timestamp)
	}
	return id
}

// UpdateOptions configures fields to update on a task.
// Nil pointers mean "don't update this field".
type UpdateOptions struct {
	// Title replaces the title, unless it trims to nothing; then the old
	// title is kept while the rest of the update still applies.
	Title *string

	// Description replaces the description.
	Description *string

	// Priority replaces the priority. Unknown values are ignored.
	Priority *Priority

	// Status moves the task to another column. Unknown values are
	// ignored. Any column change is allowed, including done back to todo.
	Status *Status

	// Deadline is due-date text: a valid YYYY-MM-DD date replaces the
	// deadline, an empty string clears it, and anything unparseable keeps
	// the previous value.
	Deadline *string
}

// Update applies opts to the task with the given id and writes the
// collection through. It reports whether a task matched; updating an
// unknown id is a no-op returning false. A failed write-through is
// returned alongside true with the in-memory change kept.
func (m *Manager) Update(id string, opts UpdateOptions) (bool, error) {
	idx := m.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	t := &m.tasks[idx]

	if opts.Title != nil {
		if title := strings.TrimSpace(*opts.Title); title != "" {
			t.Title = title
		}
	}
	if opts.Description != nil {
		t.Description = *opts.Description
	}
	if opts.Priority != nil && opts.Priority.IsValid() {
		t.Priority = *opts.Priority
	}
	if opts.Status != nil && opts.Status.IsValid() {
		t.Status = *opts.Status
	}
	if opts.Deadline != nil {
		if deadline, err := ParseDate(*opts.Deadline); err == nil {
			t.Deadline = &deadline
		} else if strings.TrimSpace(*opts.Deadline) == "" {
			t.Deadline = nil
		}
	}

	return true, m.save()
}

// Delete removes the task with the given id and writes the collection
// through. It reports whether a task was removed.
func (m *Manager) Delete(id string) (bool, error) {
	idx := m.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	m.tasks = append(m.tasks[:idx], m.tasks[idx+1:]...)
	return true, m.save()
}

// Start moves a task to the doing column.
func (m *Manager) Start(id string) (bool, error) {
	return m.setStatus(id, StatusDoing)
}

// Finish moves a task to the done column.
func (m *Manager) Finish(id string) (bool, error) {
	return m.setStatus(id, StatusDone)
}

// Reopen moves a task back to the todo column.
func (m *Manager) Reopen(id string) (bool, error) {
	return m.setStatus(id, StatusTodo)
}

func (m *Manager) setStatus(id string, status Status) (bool, error) {
	return m.Update(id, UpdateOptions{Status: &status})
}

// Get returns a copy of the task with the given id.
func (m *Manager) Get(id string) (Task, bool) {
	idx := m.indexOf(id)
	if idx < 0 {
		return Task{}, false
	}
	return m.tasks[idx].Clone(), true
}

// TasksByStatus returns copies of the tasks in the given column, in
// creation order. It never mutates the board and never saves.
func (m *Manager) TasksByStatus(status Status) []Task {
	var tasks []Task
	for _, t := range m.tasks {
		if t.Status == status {
			tasks = append(tasks, t.Clone())
		}
	}
	return tasks
}

// Tasks returns copies of every task in creation order.
func (m *Manager) Tasks() []Task {
	tasks := make([]Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		tasks = append(tasks, t.Clone())
	}
	return tasks
}

// Filter configures which tasks List returns.
type Filter struct {
	// Status filters by exact column match.
	Status *Status

	// Priority filters by exact quadrant match.
	Priority *Priority

	// TitleSubstring filters to tasks with this substring in the title,
	// case-insensitively.
	TitleSubstring string
}

// List returns copies of the tasks matching the filter, in creation order.
func (m *Manager) List(filter Filter) []Task {
	titleQuery := strings.ToLower(filter.TitleSubstring)

	var result []Task
	for _, t := range m.tasks {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && t.Priority != *filter.Priority {
			continue
		}
		if titleQuery != "" && !strings.Contains(strings.ToLower(t.Title), titleQuery) {
			continue
		}
		result = append(result, t.Clone())
	}
	return result
}

// Resolve expands a unique ID prefix to a full task ID.
func (m *Manager) Resolve(prefix string) (string, error) {
	return m.IDIndex().Resolve(prefix)
}

// IDIndex returns a prefix index over the current board.
func (m *Manager) IDIndex() IDIndex {
	return NewIDIndex(m.tasks)
}

// Save writes the whole collection through to disk.
func (m *Manager) Save() error {
	return m.save()
}

// ForceSave flushes the collection at shutdown. It performs the same write
// as Save; the separate name lets the shutdown path guarantee one final
// flush regardless of what the last mutation's write-through did.
func (m *Manager) ForceSave() error {
	return m.save()
}

func (m *Manager) save() error {
	if err := m.store.Save(m.tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func (m *Manager) indexOf(id string) int {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
