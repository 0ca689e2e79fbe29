package task

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// TasksFile is the default name of the JSONL file containing tasks.
const TasksFile = "tasks.jsonl"

const maxJSONLineBytes = 1024 * 1024

// Store reads and writes the task collection as a single JSONL file.
// Each line is one task record; enum fields use their stable string tags
// so the format survives reordering of the enum definitions.
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load reads the whole task collection. A missing file yields an empty
// collection; any read or parse failure is reported to the caller.
func (s *Store) Load() ([]Task, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open tasks file: %w", err)
	}
	defer f.Close()

	var tasks []Task
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxJSONLineBytes)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var t Task
		if err := json.Unmarshal(line, &t); err != nil {
			return nil, fmt.Errorf("parse line %d: %w", lineNum, err)
		}
		tasks = append(tasks, t)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan tasks file: %w", err)
	}

	return tasks, nil
}

// Save writes the whole collection, replacing any previous snapshot.
// The write goes through a temp file and rename so readers never observe a
// partial file, and is skipped entirely when the serialized bytes match
// what is already on disk.
func (s *Store) Save(tasks []Task) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create tasks dir: %w", err)
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	for i, t := range tasks {
		if err := encoder.Encode(t); err != nil {
			return fmt.Errorf("encode task %d: %w", i, err)
		}
	}
	data := buf.Bytes()

	if existing, err := os.ReadFile(s.path); err == nil {
		if bytes.Equal(existing, data) {
			return nil
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read tasks file: %w", err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp tasks file: %w", err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp tasks file: %w", err)
	}

	if err := os.Rename(name, s.path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename tasks file: %w", err)
	}

	return nil
}
