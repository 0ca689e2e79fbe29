package task

import (
	"errors"
	"fmt"
	"strings"

	internalstrings "github.com/tkanlabs/tkan/internal/strings"
	"github.com/tkanlabs/tkan/internal/validation"
)

var (
	// ErrEmptyTitle is returned when a task title trims to nothing.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrInvalidStatus is returned when an invalid status is provided.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidPriority is returned when an invalid priority is provided.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidDeadline is returned when deadline text is not a YYYY-MM-DD date.
	ErrInvalidDeadline = errors.New("invalid deadline")

	// ErrTaskNotFound is returned when no task matches the given ID.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAmbiguousIDPrefix is returned when an ID prefix matches multiple tasks.
	ErrAmbiguousIDPrefix = errors.New("ambiguous task ID prefix")
)

// ValidateTitle checks that a title is non-empty after trimming.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// ValidateTask checks a task's invariants.
func ValidateTask(t *Task) error {
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	return nil
}

// ParseStatus normalizes status text from flags and forms.
func ParseStatus(value string) (Status, error) {
	status := Status(normalizeTag(value))
	if !status.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidStatus, Status(value), ValidStatuses())
	}
	return status, nil
}

// ParsePriority normalizes priority text from flags and forms. It accepts
// the full quadrant tag or its rank digit.
func ParsePriority(value string) (Priority, error) {
	tag := normalizeTag(value)
	for _, priority := range ValidPriorities() {
		if tag == string(priority) || tag == fmt.Sprintf("%d", priority.Rank()) {
			return priority, nil
		}
	}
	return "", validation.FormatInvalidValueError(ErrInvalidPriority, Priority(value), ValidPriorities())
}

// normalizeTag lowercases enum text and folds separator variants so that
// "Urgent-Important" and "urgent important" both match urgent_important.
func normalizeTag(value string) string {
	tag := internalstrings.NormalizeLowerTrimSpace(value)
	tag = strings.ReplaceAll(tag, "-", "_")
	return strings.ReplaceAll(tag, " ", "_")
}
