package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDatabase_CreatesSchema(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "synthscan.db")

	db, err := InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`INSERT INTO analyses(id, created_at, file_name, content_type, preview, verdict_json, size_bytes)
		VALUES ('id1', 1756108800000, 'a.png', 'image/png', '', '{}', 10)`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM analyses`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestInitDatabase_MigrationsAreIdempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "synthscan.db")
	ctx := context.Background()

	db, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening an already-migrated database must not fail.
	db, err = InitDatabase(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
