package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	assert.Equal(t, "001", Version("migrations/001_init.sql"))
	assert.Equal(t, "002", Version("002_user_state_index.sql"))
}

func TestSQLFilesOrdered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "001_a.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o700))

	files, err := SQLFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "001_a.sql"), filepath.Join(dir, "002_b.sql")}, files)
}

func TestRepositoryMigrationsPresent(t *testing.T) {
	files, err := SQLFiles(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001", Version(files[0]))
}

func TestPendingSkipsApplied(t *testing.T) {
	files := []string{"m/001_init.sql", "m/002_index.sql", "m/003_more.sql"}
	assert.Equal(t, []string{"m/002_index.sql"}, Pending(files, map[string]bool{"001": true, "003": true}))
	assert.Equal(t, files, Pending(files, nil))
	assert.Empty(t, Pending(files, map[string]bool{"001": true, "002": true, "003": true}))
}
