package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrison/deadfiles/internal/finder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command with args and returns its output.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCommand()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// project creates a small PHP project and returns its canonical root plus a
// config path that does not exist, so tests never pick up a local config.
func project(t *testing.T) (string, string) {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	for _, f := range []string{
		"src/A.php",
		"src/B.php",
		"src/sub/C.php",
		"src/lib.inc",
		"vendor/acme/V.php",
	} {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("<?php\n"), 0644))
	}

	return root, filepath.Join(root, "no-config.yaml")
}

func writeList(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func TestFindText(t *testing.T) {
	root, noConfig := project(t)
	list := writeList(t, t.TempDir(), "used.txt", filepath.Join(root, "src", "A.php"))

	stdout, _, err := executeCommand(t, "",
		"find", "--config", noConfig, "--log-level", "error",
		"-u", list, "--root", root, "-e", "#/vendor/#")
	require.NoError(t, err)

	want := filepath.Join(root, "src", "B.php") + "\n" + filepath.Join(root, "src", "sub", "C.php") + "\n"
	assert.Equal(t, want, stdout)
}

func TestFindInferredRootJSON(t *testing.T) {
	root, noConfig := project(t)
	list := writeList(t, t.TempDir(), "used.txt",
		filepath.Join(root, "src", "A.php"),
		filepath.Join(root, "src", "sub", "C.php"))

	stdout, _, err := executeCommand(t, "",
		"find", "--config", noConfig, "--log-level", "error", "-u", list, "--format", "json")
	require.NoError(t, err)

	var rep struct {
		Root         string   `json:"root"`
		RootInferred bool     `json:"root_inferred"`
		UsedFiles    int      `json:"used_files"`
		Unused       []string `json:"unused"`
		RunID        string   `json:"run_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &rep))
	assert.Equal(t, filepath.Join(root, "src"), rep.Root)
	assert.True(t, rep.RootInferred)
	assert.Equal(t, 2, rep.UsedFiles)
	assert.Equal(t, []string{filepath.Join(root, "src", "B.php")}, rep.Unused)
	assert.NotEmpty(t, rep.RunID)
}

func TestFindStdin(t *testing.T) {
	root, noConfig := project(t)
	stdin := filepath.Join(root, "src", "A.php") + "\n" + filepath.Join(root, "src", "B.php") + "\n"

	stdout, _, err := executeCommand(t, stdin,
		"find", "--config", noConfig, "--log-level", "error", "-u", "-", "--root", filepath.Join(root, "src"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "src", "sub", "C.php")+"\n", stdout)
}

func TestFindExtensionsAndGlobs(t *testing.T) {
	root, noConfig := project(t)
	list := writeList(t, t.TempDir(), "used.yaml", "- "+filepath.Join(root, "src", "A.php"))

	stdout, _, err := executeCommand(t, "",
		"find", "--config", noConfig, "--log-level", "error", "-u", list, "--root", root,
		"--ext", "php,inc", "--exclude-glob", "vendor/**", "--exclude-glob", "**/sub/**")
	require.NoError(t, err)

	want := filepath.Join(root, "src", "B.php") + "\n" + filepath.Join(root, "src", "lib.inc") + "\n"
	assert.Equal(t, want, stdout)
}

func TestFindFailOnFound(t *testing.T) {
	root, noConfig := project(t)
	list := writeList(t, t.TempDir(), "used.txt", filepath.Join(root, "src", "A.php"), filepath.Join(root, "src", "B.php"))

	_, _, err := executeCommand(t, "",
		"find", "--config", noConfig, "--log-level", "error", "-u", list,
		"--root", filepath.Join(root, "src"), "--fail-on-found")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found 1 unused files")

	// Nothing unused: no error.
	list = writeList(t, t.TempDir(), "used.txt",
		filepath.Join(root, "src", "A.php"),
		filepath.Join(root, "src", "B.php"),
		filepath.Join(root, "src", "sub", "C.php"))
	_, _, err = executeCommand(t, "",
		"find", "--config", noConfig, "--log-level", "error", "-u", list,
		"--root", filepath.Join(root, "src"), "--fail-on-found")
	assert.NoError(t, err)
}

func TestFindOutputFile(t *testing.T) {
	root, noConfig := project(t)
	list := writeList(t, t.TempDir(), "used.txt", filepath.Join(root, "src", "A.php"))
	out := filepath.Join(t.TempDir(), "reports", "unused.md")

	stdout, stderr, err := executeCommand(t, "",
		"find", "--config", noConfig, "-u", list, "--root", filepath.Join(root, "src"),
		"--format", "markdown", "--output", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "wrote markdown report to "+out)
	assert.Contains(t, stderr, "Summary: scanned: 3")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Unused (2)")
	assert.Contains(t, string(data), "- `B.php`")
}

func TestFindWarnsAboutUsedFilesNotFound(t *testing.T) {
	root, noConfig := project(t)
	list := writeList(t, t.TempDir(), "used.txt",
		filepath.Join(root, "src", "A.php"),
		filepath.Join(root, "vendor", "acme", "V.php"))

	_, stderr, err := executeCommand(t, "",
		"find", "--config", noConfig, "-u", list, "--root", filepath.Join(root, "src"))
	require.NoError(t, err)
	assert.Contains(t, stderr, "1 used file not found under "+filepath.Join(root, "src"))
	assert.Contains(t, stderr, filepath.Join(root, "vendor", "acme", "V.php"))

	// Warnings are suppressed at error level.
	_, stderr, err = executeCommand(t, "",
		"find", "--config", noConfig, "--log-level", "error", "-u", list, "--root", filepath.Join(root, "src"))
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestFindDebugLogging(t *testing.T) {
	root, noConfig := project(t)
	list := writeList(t, t.TempDir(), "used.txt", filepath.Join(root, "src", "A.php"))

	_, stderr, err := executeCommand(t, "",
		"find", "--config", noConfig, "--log-level", "trace", "-u", list, "--root", root, "-e", "vendor")
	require.NoError(t, err)
	assert.Contains(t, stderr, "[DEBUG] loaded 1 used files")
	assert.Contains(t, stderr, "[TRACE] excluded "+filepath.Join(root, "vendor", "acme", "V.php"))
}

func TestFindConfigFile(t *testing.T) {
	root, _ := project(t)
	list := writeList(t, t.TempDir(), "used.txt", filepath.Join(root, "src", "A.php"))

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "root: " + filepath.Join(root, "src") + "\n" +
		"used_files: " + list + "\n" +
		"exclude_globs:\n  - \"sub/**\"\n" +
		"format: yaml\n" +
		"log_level: error\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	stdout, _, err := executeCommand(t, "", "find", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "unused:\n  - "+filepath.Join(root, "src", "B.php")+"\n")
	assert.NotContains(t, stdout, "C.php\n")

	// Flags override the file.
	stdout, _, err = executeCommand(t, "", "find", "--config", configPath, "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "src", "B.php")+"\n", stdout)
}

func TestFindErrors(t *testing.T) {
	root, noConfig := project(t)
	list := writeList(t, t.TempDir(), "used.txt", filepath.Join(root, "src", "A.php"))
	empty := writeList(t, t.TempDir(), "empty.txt", "# nothing")

	tests := []struct {
		name    string
		args    []string
		wantErr string
		wantIs  error
	}{
		{
			name:    "used files required",
			args:    []string{"find", "--config", noConfig},
			wantErr: "used_files is required",
		},
		{
			name:   "empty used files list",
			args:   []string{"find", "--config", noConfig, "-u", empty, "--root", root},
			wantIs: finder.ErrInvalidInput,
		},
		{
			name:   "invalid pattern",
			args:   []string{"find", "--config", noConfig, "-u", list, "-e", "(unclosed"},
			wantIs: finder.ErrPatternCompilation,
		},
		{
			name:   "missing root",
			args:   []string{"find", "--config", noConfig, "-u", list, "--root", filepath.Join(root, "missing")},
			wantIs: finder.ErrIOFailure,
		},
		{
			name:    "unknown format",
			args:    []string{"find", "--config", noConfig, "-u", list, "--format", "xml"},
			wantErr: "invalid format",
		},
		{
			name:    "missing used files list",
			args:    []string{"find", "--config", noConfig, "-u", filepath.Join(root, "nope.txt")},
			wantErr: "failed to open used files list",
		},
		{
			name:    "bad config file",
			args:    []string{"find", "--config", writeList(t, t.TempDir(), "bad.yaml", "unknown_key: 1")},
			wantErr: "failed to load config",
		},
		{
			name:    "positional arguments rejected",
			args:    []string{"find", "--config", noConfig, "-u", list, "extra"},
			wantErr: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, "", tt.args...)
			require.Error(t, err)
			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
			if tt.wantIs != nil {
				assert.True(t, errors.Is(err, tt.wantIs), "error %v does not wrap %v", err, tt.wantIs)
			}
		})
	}
}
