package boardtui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/tkanlabs/tkan/internal/ui"
	"github.com/tkanlabs/tkan/task"
)

type taskItem struct {
	task task.Task
}

func (item taskItem) FilterValue() string {
	return item.task.Title
}

type taskItemDelegate struct {
	warnDays int
	now      func() time.Time
}

func newTaskItemDelegate(warnDays int) taskItemDelegate {
	return taskItemDelegate{warnDays: warnDays, now: time.Now}
}

func (d taskItemDelegate) Height() int                             { return 2 }
func (d taskItemDelegate) Spacing() int                            { return 1 }
func (d taskItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d taskItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(taskItem)
	if !ok {
		return
	}

	now := d.now()
	width := m.Width()
	title := formatTaskTitle(item.task, width)
	meta := truncateText(formatTaskMeta(item.task, d.warnDays, now), width)

	if index == m.Index() {
		fmt.Fprint(w, cardSelectedStyle.Render(title)+"\n"+cardSelectedStyle.Render(meta))
		return
	}

	titleStyle := cardStyle
	metaStyle := priorityStyle(item.task.Priority.Color())
	switch ui.ClassifyDeadline(item.task, d.warnDays, now) {
	case ui.DeadlineOverdue:
		metaStyle = overdueStyle
	case ui.DeadlineSoon:
		metaStyle = dueSoonStyle
	}
	if item.task.Status == task.StatusDone {
		titleStyle = cardDoneStyle
		metaStyle = cardDoneStyle
	}
	fmt.Fprint(w, titleStyle.Render(title)+"\n"+metaStyle.Render(meta))
}

func formatTaskTitle(t task.Task, width int) string {
	title := strings.TrimSpace(t.Title)
	if title == "" {
		title = "(untitled)"
	}
	return truncateText(title, width)
}

func formatTaskMeta(t task.Task, warnDays int, now time.Time) string {
	parts := []string{t.Priority.Label()}
	if t.Deadline != nil {
		deadline := ui.FormatDeadlineShort(t.Deadline)
		if ui.ClassifyDeadline(t, warnDays, now) == ui.DeadlineOverdue {
			deadline += "!"
		}
		parts = append(parts, deadline)
	}
	parts = append(parts, ui.FormatTimeAgo(t.CreatedAt, now))
	return strings.Join(parts, "  ")
}

func truncateText(value string, width int) string {
	if width <= 0 {
		return value
	}
	return runewidth.Truncate(value, width, "...")
}

type formFieldKind int

const (
	fieldTitle formFieldKind = iota
	fieldDescription
	fieldPriority
	fieldDeadline
	fieldStatus
)

type formField struct {
	kind      formFieldKind
	label     string
	input     textinput.Model
	textarea  textarea.Model
	multiLine bool
}

func newFormField(kind formFieldKind, label string, value string) formField {
	field := formField{kind: kind, label: label}
	if kind == fieldDescription {
		area := textarea.New()
		area.SetValue(value)
		area.ShowLineNumbers = false
		area.Prompt = ""
		field.textarea = area
		field.multiLine = true
		return field
	}
	input := textinput.New()
	input.SetValue(value)
	input.Prompt = ""
	field.input = input
	return field
}

func (field formField) Value() string {
	if field.multiLine {
		return field.textarea.Value()
	}
	return field.input.Value()
}

func (field formField) Focus() formField {
	if field.multiLine {
		field.textarea.Focus()
		return field
	}
	field.input.Focus()
	return field
}

func (field formField) Blur() formField {
	if field.multiLine {
		field.textarea.Blur()
		return field
	}
	field.input.Blur()
	return field
}

func (field formField) Update(msg tea.Msg) (formField, tea.Cmd) {
	var cmd tea.Cmd
	if field.multiLine {
		field.textarea, cmd = field.textarea.Update(msg)
		return field, cmd
	}
	field.input, cmd = field.input.Update(msg)
	return field, cmd
}

func (field formField) View() string {
	if field.multiLine {
		return field.textarea.View()
	}
	return field.input.View()
}

// taskForm is the modal form for creating or editing a task. The zero
// value is an inactive form.
type taskForm struct {
	visible    bool
	isCreate   bool
	taskID     string
	fields     []formField
	fieldIndex int
}

func newCreateForm() taskForm {
	fields := []formField{
		newFormField(fieldTitle, "Title", ""),
		newFormField(fieldDescription, "Description", ""),
		newFormField(fieldPriority, "Priority", string(task.DefaultPriority)),
		newFormField(fieldDeadline, "Deadline", ""),
	}
	form := taskForm{visible: true, isCreate: true, fields: fields}
	form.fields[0] = form.fields[0].Focus()
	return form
}

func newEditForm(t task.Task) taskForm {
	deadline := ""
	if t.Deadline != nil {
		deadline = t.Deadline.String()
	}
	fields := []formField{
		newFormField(fieldTitle, "Title", t.Title),
		newFormField(fieldDescription, "Description", t.Description),
		newFormField(fieldPriority, "Priority", string(t.Priority)),
		newFormField(fieldDeadline, "Deadline", deadline),
		newFormField(fieldStatus, "Status", string(t.Status)),
	}
	form := taskForm{visible: true, taskID: t.ID, fields: fields}
	form.fields[0] = form.fields[0].Focus()
	return form
}

func (form taskForm) advanceField(delta int) taskForm {
	if len(form.fields) == 0 {
		return form
	}
	form.fields[form.fieldIndex] = form.fields[form.fieldIndex].Blur()
	form.fieldIndex = (form.fieldIndex + delta + len(form.fields)) % len(form.fields)
	form.fields[form.fieldIndex] = form.fields[form.fieldIndex].Focus()
	return form
}

func (form taskForm) currentFieldIsMultiline() bool {
	if len(form.fields) == 0 {
		return false
	}
	return form.fields[form.fieldIndex].multiLine
}

func (form taskForm) onLastField() bool {
	return len(form.fields) > 0 && form.fieldIndex == len(form.fields)-1
}

func (form taskForm) Update(msg tea.Msg) (taskForm, tea.Cmd) {
	if len(form.fields) == 0 {
		return form, nil
	}
	var cmd tea.Cmd
	form.fields[form.fieldIndex], cmd = form.fields[form.fieldIndex].Update(msg)
	return form, cmd
}

func (form taskForm) SetWidth(width int) taskForm {
	inputWidth := width - 4
	if inputWidth < 10 {
		inputWidth = 10
	}
	for i, field := range form.fields {
		if field.multiLine {
			field.textarea.SetWidth(inputWidth)
			field.textarea.SetHeight(5)
		} else {
			field.input.Width = inputWidth
		}
		form.fields[i] = field
	}
	return form
}

func (form taskForm) valuesByKind() map[formFieldKind]string {
	values := make(map[formFieldKind]string, len(form.fields))
	for _, field := range form.fields {
		values[field.kind] = field.Value()
	}
	return values
}

func (form taskForm) buildCreateOptions() (string, task.CreateOptions, error) {
	values := form.valuesByKind()
	title := strings.TrimSpace(values[fieldTitle])
	if title == "" {
		return "", task.CreateOptions{}, task.ErrEmptyTitle
	}
	priority, err := parsePriorityValue(values[fieldPriority])
	if err != nil {
		return "", task.CreateOptions{}, err
	}
	return title, task.CreateOptions{
		Description: values[fieldDescription],
		Priority:    priority,
		Deadline:    strings.TrimSpace(values[fieldDeadline]),
	}, nil
}

func (form taskForm) buildUpdateOptions() (task.UpdateOptions, error) {
	values := form.valuesByKind()
	title := strings.TrimSpace(values[fieldTitle])
	description := values[fieldDescription]
	deadline := strings.TrimSpace(values[fieldDeadline])
	opts := task.UpdateOptions{
		Title:       &title,
		Description: &description,
		Deadline:    &deadline,
	}
	if value := strings.TrimSpace(values[fieldPriority]); value != "" {
		priority, err := task.ParsePriority(value)
		if err != nil {
			return task.UpdateOptions{}, err
		}
		opts.Priority = &priority
	}
	if value := strings.TrimSpace(values[fieldStatus]); value != "" {
		status, err := task.ParseStatus(value)
		if err != nil {
			return task.UpdateOptions{}, err
		}
		opts.Status = &status
	}
	return opts, nil
}

func parsePriorityValue(value string) (task.Priority, error) {
	if strings.TrimSpace(value) == "" {
		return task.DefaultPriority, nil
	}
	return task.ParsePriority(value)
}

func (form taskForm) heading() string {
	if form.isCreate {
		return "New task"
	}
	return fmt.Sprintf("Edit task %s", form.taskID)
}

func (form taskForm) View() string {
	lines := make([]string, 0, len(form.fields)+4)
	lines = append(lines, labelStyle.Render(form.heading()))
	lines = append(lines, "")
	for _, field := range form.fields {
		if field.multiLine {
			lines = append(lines, fmt.Sprintf("%s:", labelStyle.Render(field.label)))
			lines = append(lines, field.View())
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", labelStyle.Render(field.label), field.View()))
	}
	lines = append(lines, "")
	lines = append(lines, valueMuted.Render("ctrl+s save | esc cancel | tab next field"))
	return strings.Join(lines, "\n")
}
