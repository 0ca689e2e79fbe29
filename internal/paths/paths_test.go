package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultDataDirUsesHome(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

	dir, err := DefaultDataDir()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := filepath.Join("/tmp", "test-home", ".local", "share", "tkan")
	if dir != expected {
		t.Fatalf("expected %s, got %s", expected, dir)
	}
}

func TestDefaultConfigDirUsesHome(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

	dir, err := DefaultConfigDir()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := filepath.Join("/tmp", "test-home", ".config", "tkan")
	if dir != expected {
		t.Fatalf("expected %s, got %s", expected, dir)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

	if got := ExpandHome("~/boards/tasks.jsonl"); got != filepath.Join("/tmp", "test-home", "boards", "tasks.jsonl") {
		t.Fatalf("unexpected expansion: %s", got)
	}
	if got := ExpandHome("/absolute/path"); got != "/absolute/path" {
		t.Fatalf("absolute path changed: %s", got)
	}
	if got := ExpandHome("relative"); got != "relative" {
		t.Fatalf("relative path changed: %s", got)
	}
}

func TestResolveWithDefault(t *testing.T) {
	t.Run("returns override when provided", func(t *testing.T) {
		result, err := ResolveWithDefault("/custom/path", DefaultDataDir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result != "/custom/path" {
			t.Fatalf("expected /custom/path, got %s", result)
		}
	})

	t.Run("calls default function when override is empty", func(t *testing.T) {
		t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

		result, err := ResolveWithDefault("", DefaultDataDir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		expected := filepath.Join("/tmp", "test-home", ".local", "share", "tkan")
		if result != expected {
			t.Fatalf("expected %s, got %s", expected, result)
		}
	})

	t.Run("propagates error from default function", func(t *testing.T) {
		errorFn := func() (string, error) {
			return "", os.ErrNotExist
		}

		_, err := ResolveWithDefault("", errorFn)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if err != os.ErrNotExist {
			t.Fatalf("expected os.ErrNotExist, got %v", err)
		}
	})
}
