package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClementRollin/LinkedIn-GraphQL/internal/apperrors"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/seed"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/storetest"
)

func TestRootCmdFlags(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/social")
	cmd := newRootCmd()

	for _, name := range []string{"fixtures", "database-url", "migrate"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "postgres://env/social", cmd.Flags().Lookup("database-url").DefValue)
}

func TestRootCmdRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalid(err))
}

func TestRootCmdMissingFixtures(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--fixtures", filepath.Join(t.TempDir(), "absent.yaml")})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read fixtures")
}

func TestLoadFixturesDefault(t *testing.T) {
	f, err := loadFixtures("")
	require.NoError(t, err)
	assert.NotEmpty(t, f.Users)
}

func TestSeedAndReportPrintsCounts(t *testing.T) {
	ctx := context.Background()
	store := storetest.New()
	fixtures, err := seed.DefaultFixtures()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var out bytes.Buffer
	require.NoError(t, seedAndReport(ctx, store, fixtures, logger, &out))

	var report seed.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, seed.Counts{Inserted: 3}, report.Users)
	assert.Equal(t, seed.Counts{Inserted: 4}, report.Messages)
	assert.Equal(t, 16, report.Inserted())

	out.Reset()
	require.NoError(t, seedAndReport(ctx, store, fixtures, logger, &out))
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 0, report.Inserted())
	assert.Equal(t, seed.Counts{Skipped: 3}, report.Posts)
}
