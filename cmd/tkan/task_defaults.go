package main

import (
	"log/slog"

	"github.com/tkanlabs/tkan/internal/config"
	"github.com/tkanlabs/tkan/task"
)

func defaultCreatePriority(cfg *config.Config) task.Priority {
	value := cfg.Tasks.DefaultPriority
	if value == "" {
		return task.DefaultPriority
	}

	priority, err := task.ParsePriority(value)
	if err != nil {
		slog.Warn("ignoring configured default priority", "value", value, "error", err)
		return task.DefaultPriority
	}
	return priority
}

func defaultCreateStatus(cfg *config.Config) task.Status {
	value := cfg.Tasks.DefaultStatus
	if value == "" {
		return task.StatusTodo
	}

	status, err := task.ParseStatus(value)
	if err != nil {
		slog.Warn("ignoring configured default status", "value", value, "error", err)
		return task.StatusTodo
	}
	return status
}
