package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_EmbeddedAndAnnotated(t *testing.T) {
	files, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	require.Len(t, files, 2)

	for _, f := range files {
		b, err := fs.ReadFile(Migrations, f)
		require.NoError(t, err)
		body := string(b)
		assert.True(t, strings.Contains(body, "-- +goose Up"), f)
		assert.True(t, strings.Contains(body, "-- +goose Down"), f)
	}
}

func TestMigrations_UsernameIsUnique(t *testing.T) {
	b, err := fs.ReadFile(Migrations, "00001_create_users.sql")
	require.NoError(t, err)
	assert.Contains(t, string(b), "UNIQUE (username)")
}
