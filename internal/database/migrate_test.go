package database

import (
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFilesArePaired(t *testing.T) {
	ups, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationFiles, "migrations/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}

func TestMigrationSourceParses(t *testing.T) {
	src, err := iofs.New(migrationFiles, "migrations")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)
}
