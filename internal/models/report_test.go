package models

import (
	"path/filepath"
	"testing"
)

func TestReportHasUnused(t *testing.T) {
	r := &Report{}
	if r.HasUnused() {
		t.Error("empty report should not have unused files")
	}

	r.Unused = []string{"/srv/app/A.php"}
	if !r.HasUnused() {
		t.Error("expected HasUnused to be true")
	}
}

func TestReportRelativeUnused(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "srv", "app")
	r := &Report{
		Root: root,
		Unused: []string{
			filepath.Join(root, "A.php"),
			filepath.Join(root, "src", "B.php"),
		},
	}

	got := r.RelativeUnused()
	want := []string{"A.php", filepath.Join("src", "B.php")}

	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	// The report itself is not modified.
	if r.Unused[0] != filepath.Join(root, "A.php") {
		t.Errorf("Unused was modified: %v", r.Unused)
	}
}
