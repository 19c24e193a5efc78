package testutil

import (
	"database/sql"
	"embed"
	"io/fs"
	"sort"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

//go:embed migrations/*.sql
var testMigrationsFS embed.FS

// NewTestDB opens a private in-memory SQLite database holding the kv_store
// schema. The pool is pinned to one connection because each connection to
// :memory: sees its own database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	files, err := fs.Glob(testMigrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files, "no migrations embedded")
	sort.Strings(files)

	for _, name := range files {
		schema, err := testMigrationsFS.ReadFile(name)
		require.NoError(t, err, "read %s", name)
		_, err = db.Exec(string(schema))
		require.NoError(t, err, "apply %s", name)
	}
	return db
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	t.Helper()
	require.NoError(t, closer.Close())
}
