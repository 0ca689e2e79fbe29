package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tkanlabs/tkan/internal/config"
	"github.com/tkanlabs/tkan/internal/testsupport"
)

func TestLoad_NotFound(t *testing.T) {
	home := testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := filepath.Join(home, ".local", "share", "tkan", "tasks.jsonl")
	if cfg.Tasks.File != expected {
		t.Errorf("Tasks.File = %q, expected %q", cfg.Tasks.File, expected)
	}
	if cfg.Board.DeadlineWarningDays != config.DefaultDeadlineWarningDays {
		t.Errorf("DeadlineWarningDays = %d, expected %d", cfg.Board.DeadlineWarningDays, config.DefaultDeadlineWarningDays)
	}
	if cfg.Tasks.DefaultPriority != "" {
		t.Errorf("DefaultPriority = %q, expected empty", cfg.Tasks.DefaultPriority)
	}
}

func TestLoad_LocalFile(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	configContent := `
[tasks]
file = "board/tasks.jsonl"
default-priority = "urgent_important"

[board]
deadline-warning-days = 7
`
	if err := os.WriteFile(filepath.Join(tmpDir, ".tkan.toml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Tasks.File != "board/tasks.jsonl" {
		t.Errorf("Tasks.File = %q, expected %q", cfg.Tasks.File, "board/tasks.jsonl")
	}
	if cfg.Tasks.DefaultPriority != "urgent_important" {
		t.Errorf("DefaultPriority = %q, expected urgent_important", cfg.Tasks.DefaultPriority)
	}
	if cfg.Board.DeadlineWarningDays != 7 {
		t.Errorf("DeadlineWarningDays = %d, expected 7", cfg.Board.DeadlineWarningDays)
	}
}

func TestLoad_LocalOverridesGlobal(t *testing.T) {
	home := testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	globalContent := `
[tasks]
default-priority = "not_urgent_important"
default-status = "todo"
`
	globalPath := filepath.Join(home, ".config", "tkan", "tkan.toml")
	if err := os.WriteFile(globalPath, []byte(globalContent), 0644); err != nil {
		t.Fatalf("failed to write global config: %v", err)
	}

	localContent := `
[tasks]
default-priority = "urgent_important"
`
	if err := os.WriteFile(filepath.Join(tmpDir, ".tkan.toml"), []byte(localContent), 0644); err != nil {
		t.Fatalf("failed to write local config: %v", err)
	}

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Tasks.DefaultPriority != "urgent_important" {
		t.Errorf("DefaultPriority = %q, expected local value to win", cfg.Tasks.DefaultPriority)
	}
	if cfg.Tasks.DefaultStatus != "todo" {
		t.Errorf("DefaultStatus = %q, expected global value to fall through", cfg.Tasks.DefaultStatus)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	localContent := `
[tasks]
file = "from-file.jsonl"

[board]
deadline-warning-days = 7
`
	if err := os.WriteFile(filepath.Join(tmpDir, ".tkan.toml"), []byte(localContent), 0644); err != nil {
		t.Fatalf("failed to write local config: %v", err)
	}

	t.Setenv("TKAN_TASKS_FILE", "/env/tasks.jsonl")
	t.Setenv("TKAN_DEADLINE_WARNING_DAYS", "10")

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Tasks.File != "/env/tasks.jsonl" {
		t.Errorf("Tasks.File = %q, expected env value to win", cfg.Tasks.File)
	}
	if cfg.Board.DeadlineWarningDays != 10 {
		t.Errorf("DeadlineWarningDays = %d, expected 10", cfg.Board.DeadlineWarningDays)
	}
}

func TestLoad_DataDirEnv(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	t.Setenv("TKAN_DATA_DIR", "/elsewhere")

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Tasks.File != filepath.Join("/elsewhere", "tasks.jsonl") {
		t.Errorf("Tasks.File = %q, expected data dir override to apply", cfg.Tasks.File)
	}
}
