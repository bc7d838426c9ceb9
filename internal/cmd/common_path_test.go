package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommonPathArgs(t *testing.T) {
	a := filepath.FromSlash("/srv/app/src/A.php")
	b := filepath.FromSlash("/srv/app/src/sub/B.php")

	stdout, _, err := executeCommand(t, "", "common-path", a, b)
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/srv/app/src")+"\n", stdout)
}

func TestCommonPathUsedFiles(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "used.json")
	require.NoError(t, os.WriteFile(list, []byte(`["/srv/app/src/A.php", "/srv/app/tests/ATest.php"]`), 0644))

	stdout, _, err := executeCommand(t, "", "common-path", "--used-files", list)
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/srv/app")+"\n", stdout)
}

func TestCommonPathStdin(t *testing.T) {
	stdout, _, err := executeCommand(t, "/var/www/a.php\n/var/www/b.php\n", "common-path", "-u", "-")
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/var/www")+"\n", stdout)
}

func TestCommonPathErrors(t *testing.T) {
	_, _, err := executeCommand(t, "", "common-path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no paths given")

	_, _, err = executeCommand(t, "", "common-path", "A.php", "B.php")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "share no common directory")
}
