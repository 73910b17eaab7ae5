package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Paired(t *testing.T) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	ups := map[string]bool{}
	downs := map[string]bool{}

	for _, name := range names {
		base := strings.TrimPrefix(name, "migrations/")

		switch {
		case strings.HasSuffix(base, ".up.sql"):
			ups[strings.TrimSuffix(base, ".up.sql")] = true
		case strings.HasSuffix(base, ".down.sql"):
			downs[strings.TrimSuffix(base, ".down.sql")] = true
		default:
			t.Errorf("migration %s is neither up nor down", name)
		}
	}

	assert.Equal(t, ups, downs)
}

func TestMigrations_CreateLedgerTables(t *testing.T) {
	raw, err := fs.ReadFile(migrationsFS, "migrations/0001_init.up.sql")
	require.NoError(t, err)

	sql := string(raw)
	for _, table := range []string{"contacts", "categories", "entries", "payments", "description_mappings"} {
		assert.Contains(t, sql, "CREATE TABLE "+table+" (")
	}

	assert.Contains(t, sql, "CHECK (amount > 0)")
}
