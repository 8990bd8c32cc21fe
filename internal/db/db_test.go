package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrations_Idempotent(t *testing.T) {
	database, err := OpenPlain(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.RunMigrations())
	require.NoError(t, database.RunMigrations())

	var version int
	require.NoError(t, database.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version))
	assert.Equal(t, len(migrations), version)

	for _, table := range []string{"clients", "preferences", "notification_logs"} {
		var name string
		err := database.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestClientsUniqueNormalizedName(t *testing.T) {
	database, err := OpenPlain(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer database.Close()
	require.NoError(t, database.RunMigrations())

	insert := `INSERT INTO clients (id, company_name, normalized_name, created_at, updated_at) VALUES (?, ?, ?, '', '')`
	_, err = database.Exec(insert, "a", "Acme Corp", "acme corp")
	require.NoError(t, err)

	_, err = database.Exec(insert, "b", "ACME CORP", "acme corp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")
}
