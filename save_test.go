package tosql

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countRows(t *testing.T, path, query string) int64 {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var n int64
	require.NoError(t, db.QueryRowContext(t.Context(), query).Scan(&n))
	return n
}

func TestPersist(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "saved.db")
	table := inferString(t, StdinName, "id,name,price\n1,apple,1.5\n2,banana,0.25\n")

	require.NoError(t, Persist(table, path, "a"))
	assert.Equal(t, int64(2), countRows(t, path, "SELECT COUNT(*) FROM a"))
	assert.Equal(t, int64(1), countRows(t, path, "SELECT id FROM a WHERE name = 'apple'"))
}

func TestPersist_ReplacesExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "saved.db")
	require.NoError(t, os.WriteFile(path, []byte("not a database"), 0600))

	first := inferString(t, StdinName, "id,name\n1,apple\n2,banana\n3,cherry\n")
	second := inferString(t, StdinName, "id,name\n9,kiwi\n")

	require.NoError(t, PersistContext(t.Context(), first, path, "fruits"))
	require.NoError(t, PersistContext(t.Context(), second, path, "fruits"))
	assert.Equal(t, int64(1), countRows(t, path, "SELECT COUNT(*) FROM fruits"))
}

func TestPersist_DefaultsToTableName(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "saved.db")
	table := NewTable("orders", []string{"id"}, []Row{{int64(1)}, {int64(2)}})

	require.NoError(t, Persist(table, path, ""))
	assert.Equal(t, int64(2), countRows(t, path, "SELECT COUNT(*) FROM orders"))
}

func TestPersist_Errors(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, Persist(nil, filepath.Join(t.TempDir(), "x.db"), "a"), ErrNilTable)

	table := NewTable("r", []string{"v"}, []Row{{int64(1)}})
	assert.Error(t, Persist(table, "", "a"))
	assert.Error(t, Persist(table, filepath.Join(t.TempDir(), "missing", "x.db"), "a"))
}
