package database

import (
	"context"
	"database/sql"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNullString(t *testing.T) {
	tests := []struct {
		name      string
		input     *string
		wantVal   string
		wantValid bool
	}{
		{name: "nil", input: nil, wantVal: "", wantValid: false},
		{name: "empty string", input: strPtr(""), wantVal: "", wantValid: true},
		{name: "non-empty string", input: strPtr("Data Scientist"), wantVal: "Data Scientist", wantValid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToNullString(tt.input)
			assert.Equal(t, tt.wantVal, result.String)
			assert.Equal(t, tt.wantValid, result.Valid)
		})
	}
}

func TestFromNullString(t *testing.T) {
	assert.Nil(t, FromNullString(sql.NullString{}))

	s := FromNullString(sql.NullString{String: "https://example.com/a.jpg", Valid: true})
	require.NotNil(t, s)
	assert.Equal(t, "https://example.com/a.jpg", *s)
}

func TestEmbeddedMigrations(t *testing.T) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	assert.Contains(t, names, "migrations/000001_init.up.sql")
	assert.Contains(t, names, "migrations/000001_init.down.sql")

	up, err := fs.ReadFile(migrationsFS, "migrations/000001_init.up.sql")
	require.NoError(t, err)
	for _, table := range []string{"users", "posts", "comments", "connections", "messages"} {
		assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.Contains(t, string(up), "CHECK (user1_id <> user2_id)")
}

func TestNewClientRequiresURL(t *testing.T) {
	_, err := NewClient(context.Background(), "")
	assert.Error(t, err)
}

func strPtr(s string) *string { return &s }
