package main

import (
	"bytes"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/tkanlabs/tkan/task"
)

func TestPrintTaskDetailShowsFields(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	item := task.Task{
		ID:        "abc12345",
		Title:     "Detailed",
		Priority:  task.PriorityUrgentImportant,
		Status:    task.StatusDoing,
		CreatedAt: time.Date(2025, 3, 8, 1, 2, 3, 0, time.UTC),
	}

	output := captureStdout(t, func() {
		printTaskDetail(item, func(id string) string { return id }, 3, now)
	})

	if !strings.Contains(output, "ID:       abc12345") {
		t.Fatalf("expected ID in output, got: %q", output)
	}
	if !strings.Contains(output, "Title:    Detailed") {
		t.Fatalf("expected title in output, got: %q", output)
	}
	if !strings.Contains(output, "Status:   doing") {
		t.Fatalf("expected status in output, got: %q", output)
	}
	if !strings.Contains(output, "Priority: do first (urgent_important)") {
		t.Fatalf("expected priority in output, got: %q", output)
	}
	if !strings.Contains(output, "Deadline: -") {
		t.Fatalf("expected empty deadline in output, got: %q", output)
	}
}

func TestPrintTaskDetailMarksOverdueDeadline(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	item := task.Task{
		ID:        "abc12345",
		Title:     "Late",
		Priority:  task.DefaultPriority,
		Status:    task.StatusTodo,
		Deadline:  deadlineDate(t, "2025-03-09"),
		CreatedAt: now.Add(-time.Hour),
	}

	output := captureStdout(t, func() {
		printTaskDetail(item, func(id string) string { return id }, 3, now)
	})

	if !strings.Contains(stripANSICodes(output), "Deadline: 2025-03-09 (overdue)") {
		t.Fatalf("expected overdue deadline in output, got: %q", output)
	}
}

func TestPrintTaskDetailRendersMarkdownDescription(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	item := task.Task{
		ID:          "abc12345",
		Title:       "Rendered",
		Priority:    task.DefaultPriority,
		Status:      task.StatusTodo,
		CreatedAt:   now.Add(-time.Hour),
		Description: "Checklist:\n\n- First item\n- Second item\n\n```bash\necho first\necho second\n```",
	}

	output := captureStdout(t, func() {
		printTaskDetail(item, func(id string) string { return id }, 3, now)
	})

	checks := []*regexp.Regexp{
		regexp.MustCompile(`(?m)^Description:$`),
		regexp.MustCompile(`(?m)^\s*Checklist:\s*$`),
		regexp.MustCompile(`(?m)^\s*- First item\s*$`),
		regexp.MustCompile(`(?m)^\s*- Second item\s*$`),
		regexp.MustCompile(`(?m)^\s*echo first\s*$`),
		regexp.MustCompile(`(?m)^\s*echo second\s*$`),
	}
	for _, check := range checks {
		if !check.MatchString(output) {
			t.Fatalf("expected markdown output to match %q, got %q", check.String(), output)
		}
	}
}

func TestWrapDetailValueIndentsContinuations(t *testing.T) {
	value := strings.Repeat("word ", 30)
	wrapped := wrapDetailValue("Title:    ", strings.TrimSpace(value))

	lines := strings.Split(wrapped, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapped output to span lines, got %q", wrapped)
	}
	if !strings.HasPrefix(lines[0], "Title:    word") {
		t.Fatalf("expected first line to carry the prefix, got %q", lines[0])
	}
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, strings.Repeat(" ", len("Title:    "))) {
			t.Fatalf("expected continuation indent, got %q", line)
		}
	}
	for _, line := range lines {
		if len(line) > taskDetailLineWidth {
			t.Fatalf("expected lines within %d columns, got %d: %q", taskDetailLineWidth, len(line), line)
		}
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stdout: %v", err)
	}
	defer func() {
		os.Stdout = old
		_ = r.Close()
	}()

	os.Stdout = w
	fn()
	_ = w.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("read stdout: %v", err)
	}

	return buf.String()
}
