package main

import "testing"

func TestVersionString(t *testing.T) {
	prevVersion := buildVersion
	prevCommit := buildCommit
	t.Cleanup(func() {
		buildVersion = prevVersion
		buildCommit = prevCommit
	})

	buildVersion = "1.2.3"
	buildCommit = "abcdef0"

	got := versionString()
	want := "tkan 1.2.3 (commit abcdef0)"
	if got != want {
		t.Fatalf("expected version string %q, got %q", want, got)
	}
}

func TestRootCommandHasVersion(t *testing.T) {
	if rootCmd.Version == "" {
		t.Fatal("expected root command version to be set")
	}
}
