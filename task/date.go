package task

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date with no time-of-day component. It marshals to and
// from the YYYY-MM-DD form used in storage and user input.
type Date struct {
	time.Time
}

// ParseDate parses a YYYY-MM-DD string into a Date.
func ParseDate(value string) (Date, error) {
	parsed, err := time.Parse(time.DateOnly, strings.TrimSpace(value))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDeadline, value)
	}
	return Date{Time: parsed}, nil
}

// DateOf truncates a timestamp to its calendar date. The result is pinned to
// UTC so that dates taken from local clocks compare day-for-day against dates
// parsed from storage.
func DateOf(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(time.DateOnly)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", value, err)
	}
	d.Time = parsed
	return nil
}

// DatePtr returns a pointer to the provided date.
func DatePtr(d Date) *Date {
	return &d
}
