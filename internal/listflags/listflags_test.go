package listflags

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestAddAllFlagBindsTarget(t *testing.T) {
	cmd := &cobra.Command{Use: "list"}
	var all bool
	AddAllFlag(cmd, &all)

	if err := cmd.Flags().Set("all", "true"); err != nil {
		t.Fatalf("set --all: %v", err)
	}
	if !all {
		t.Fatal("expected --all to bind to target")
	}
}

func TestAddAllFlagWithoutTarget(t *testing.T) {
	cmd := &cobra.Command{Use: "list"}
	AddAllFlag(cmd, nil)

	flag := cmd.Flags().Lookup("all")
	if flag == nil {
		t.Fatal("expected --all flag to be registered")
	}
	if flag.DefValue != "false" {
		t.Fatalf("expected default false, got %q", flag.DefValue)
	}
}

func TestAddJSONFlagBindsTarget(t *testing.T) {
	cmd := &cobra.Command{Use: "list"}
	var asJSON bool
	AddJSONFlag(cmd, &asJSON)

	if err := cmd.Flags().Set("json", "true"); err != nil {
		t.Fatalf("set --json: %v", err)
	}
	if !asJSON {
		t.Fatal("expected --json to bind to target")
	}
}

func TestAddSortFlagBindsTarget(t *testing.T) {
	cmd := &cobra.Command{Use: "list"}
	var sortOrder string
	AddSortFlag(cmd, &sortOrder)

	if err := cmd.Flags().Set("sort", "deadline"); err != nil {
		t.Fatalf("set --sort: %v", err)
	}
	if sortOrder != "deadline" {
		t.Fatalf("expected deadline, got %q", sortOrder)
	}
}
