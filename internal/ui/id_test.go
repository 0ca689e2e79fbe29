package ui

import "testing"

func TestHighlightIDPassthrough(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name      string
		id        string
		prefixLen int
	}{
		{name: "empty id", id: "", prefixLen: 3},
		{name: "zero prefix", id: "abc123de", prefixLen: 0},
		{name: "prefix longer than id", id: "abc", prefixLen: 9},
		{name: "color disabled", id: "abc123de", prefixLen: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HighlightID(tt.id, tt.prefixLen); got != tt.id {
				t.Fatalf("HighlightID() = %q, want %q", got, tt.id)
			}
		})
	}
}

func TestANSIEnabledRespectsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if ANSIEnabled() {
		t.Fatal("expected ANSI disabled when NO_COLOR is set")
	}
}

func TestANSIEnabledRespectsDumbTerm(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "dumb")

	if ANSIEnabled() {
		t.Fatal("expected ANSI disabled for TERM=dumb")
	}
}
