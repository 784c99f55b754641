package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureParentDir_CreatesNestedDirectories(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "state", "taskctl", "prefs.db")

	got, err := EnsureParentDir(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Dir(path), got)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureParentDir_RelativeToCWD(t *testing.T) {
	tmp, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	defer chdir(t, tmp)()

	got, err := EnsureParentDir(filepath.Join("data", "prefs.db"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "data"), got)

	again, err := EnsureParentDir(filepath.Join("data", "prefs.db"))
	require.NoError(t, err)
	require.Equal(t, got, again)
}

func TestEnsureParentDir_SkipsSpecialNames(t *testing.T) {
	for _, name := range []string{"", ":memory:", "file::memory:?cache=shared"} {
		got, err := EnsureParentDir(name)
		require.NoError(t, err, name)
		require.Empty(t, got, name)
	}
}

func TestEnsureParentDir_FailsIfFileInTheWay(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "state")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o660))

	_, err := EnsureParentDir(filepath.Join(blocker, "prefs.db"))
	require.Error(t, err)
}
