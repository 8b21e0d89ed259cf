package db

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrations, migrationsDir+"/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		data, err := fs.ReadFile(migrations, name)
		require.NoError(t, err)
		body := string(data)
		assert.True(t, strings.HasPrefix(body, "-- +goose Up"), name)
		assert.Contains(t, body, "-- +goose Down", name)
	}
}

func TestSchemaGuardsAircraftOverlap(t *testing.T) {
	data, err := fs.ReadFile(migrations, migrationsDir+"/00001_grid_schema.sql")
	require.NoError(t, err)
	schema := string(data)

	assert.Contains(t, schema, "CREATE EXTENSION IF NOT EXISTS btree_gist")
	assert.Contains(t, schema, "EXCLUDE USING gist")
	assert.Contains(t, schema, "WHERE (status <> 'cancelled')")
}
