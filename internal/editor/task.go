package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"

	"github.com/tkanlabs/tkan/task"
)

// TaskData represents the data used to render the TOML template.
type TaskData struct {
	// IsUpdate is true when editing an existing task.
	IsUpdate bool
	// ID is the task ID (only for updates).
	ID string
	// Title is the task title.
	Title string
	// Priority is the Eisenhower quadrant tag.
	Priority string
	// Status is the board column (only for updates).
	Status string
	// Deadline is the due date in YYYY-MM-DD form, or empty.
	Deadline string
	// Description is the task description.
	Description string
}

// DefaultCreateData returns TaskData with default values for a new task.
func DefaultCreateData() TaskData {
	return TaskData{
		IsUpdate: false,
		Title:    "",
		Priority: string(task.DefaultPriority),
	}
}

// DataFromTask creates TaskData from an existing task for editing.
func DataFromTask(t *task.Task) TaskData {
	data := TaskData{
		IsUpdate:    true,
		ID:          t.ID,
		Title:       t.Title,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Description: t.Description,
	}
	if t.Deadline != nil {
		data.Deadline = t.Deadline.String()
	}
	return data
}

var taskTemplate = template.Must(template.New("task").Funcs(template.FuncMap{
	"description": func(s string) string {
		if s == "" {
			return ""
		}
		return s
	},
}).Parse(`title = {{ printf "%q" .Title }}
 priority = {{ printf "%q" .Priority }} # urgent_important, not_urgent_important, urgent_not_important, not_urgent_not_important
 deadline = {{ printf "%q" .Deadline }} # YYYY-MM-DD, leave empty for none
{{- if .IsUpdate }}
 status = {{ printf "%q" .Status }} # todo, doing, done
{{- end }}
---
{{ description .Description }}
`))

// RenderTaskTOML renders the task data as a TOML string for editing.
func RenderTaskTOML(data TaskData) (string, error) {
	var buf bytes.Buffer
	if err := taskTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTask represents the parsed result from the TOML editor output.
type ParsedTask struct {
	Title       string  `toml:"title"`
	Priority    string  `toml:"priority"`
	Status      *string `toml:"status"`
	Deadline    string  `toml:"deadline"`
	Description string
}

// ParseTaskTOML parses the TOML content from the editor. The title,
// priority, and status fields are validated; the deadline is passed
// through untouched so the lenient date handling downstream applies.
func ParseTaskTOML(content string) (*ParsedTask, error) {
	frontmatter, body := splitFrontmatter(content)

	var parsed ParsedTask
	if _, err := toml.Decode(frontmatter, &parsed); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	parsed.Description = strings.TrimLeft(body, "\n")

	if err := task.ValidateTitle(parsed.Title); err != nil {
		return nil, err
	}
	if strings.TrimSpace(parsed.Priority) != "" {
		priority, err := task.ParsePriority(parsed.Priority)
		if err != nil {
			return nil, err
		}
		parsed.Priority = string(priority)
	} else {
		parsed.Priority = ""
	}
	if parsed.Status != nil {
		status, err := task.ParseStatus(*parsed.Status)
		if err != nil {
			return nil, err
		}
		normalized := string(status)
		parsed.Status = &normalized
	}

	return &parsed, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	separatorIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			separatorIndex = i
			break
		}
	}
	if separatorIndex == -1 {
		return content, ""
	}

	frontmatter := strings.Join(lines[:separatorIndex], "\n")
	body := strings.Join(lines[separatorIndex+1:], "\n")
	return frontmatter, body
}

func createTaskTempFile() (*os.File, error) {
	return os.CreateTemp("", "tkan-task-*.md")
}

// EditTask opens the editor for a task and returns the parsed result.
// For create: pass nil for existing.
// For update: pass the existing task.
func EditTask(existing *task.Task) (*ParsedTask, error) {
	var data TaskData
	if existing == nil {
		data = DefaultCreateData()
	} else {
		data = DataFromTask(existing)
	}
	return EditTaskWithData(data)
}

// EditTaskWithData opens the editor with pre-populated data and returns
// the parsed result.
func EditTaskWithData(data TaskData) (*ParsedTask, error) {
	content, err := RenderTaskTOML(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := createTaskTempFile()
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseTaskTOML(string(edited))
}

// ToCreateOptions converts a ParsedTask to task.CreateOptions.
func (p *ParsedTask) ToCreateOptions() task.CreateOptions {
	return task.CreateOptions{
		Description: p.Description,
		Priority:    task.Priority(p.Priority),
		Deadline:    p.Deadline,
	}
}

// ToUpdateOptions converts a ParsedTask to task.UpdateOptions.
func (p *ParsedTask) ToUpdateOptions() task.UpdateOptions {
	opts := task.UpdateOptions{
		Title:       &p.Title,
		Description: &p.Description,
		Deadline:    &p.Deadline,
	}

	if p.Priority != "" {
		priority := task.Priority(p.Priority)
		opts.Priority = &priority
	}
	if p.Status != nil {
		status := task.Status(*p.Status)
		opts.Status = &status
	}
	return opts
}
