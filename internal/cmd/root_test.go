package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	if cmd == nil {
		t.Fatal("Root command should not be nil")
	}

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("--help returned error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "deadfiles") {
		t.Errorf("Help text should contain 'deadfiles', got: %s", output)
	}
	if !strings.Contains(output, "used") {
		t.Errorf("Help text should mention used files, got: %s", output)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	if cmd.Use != "deadfiles" {
		t.Errorf("Expected Use to be 'deadfiles', got '%s'", cmd.Use)
	}

	found := map[string]bool{}
	for _, sub := range cmd.Commands() {
		found[sub.Name()] = true
	}
	for _, name := range []string{"find", "common-path"} {
		if !found[name] {
			t.Errorf("Expected subcommand %q", name)
		}
	}
}

func TestRootCommandVersion(t *testing.T) {
	cmd := NewRootCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("--version returned error: %v", err)
	}
	if !strings.Contains(buf.String(), Version) {
		t.Errorf("Expected version %q in output, got %q", Version, buf.String())
	}
}

func TestFindFlags(t *testing.T) {
	cmd := NewFindCommand()

	for _, name := range []string{
		"used-files", "used-files-format", "canonicalize-used", "root", "exclude",
		"exclude-glob", "ext", "case-insensitive-ext", "include-dot-files",
		"include-vcs", "format", "output", "fail-on-found", "config", "log-level",
	} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected flag --%s", name)
		}
	}
}
