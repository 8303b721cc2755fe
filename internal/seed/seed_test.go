package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClementRollin/LinkedIn-GraphQL/internal/apperrors"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/database"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/metrics"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/storetest"
)

func TestDefaultFixtures(t *testing.T) {
	f, err := DefaultFixtures()
	require.NoError(t, err)

	assert.Len(t, f.Users, 3)
	assert.Len(t, f.Posts, 3)
	assert.Len(t, f.Comments, 3)
	assert.Len(t, f.Connections, 3)
	assert.Len(t, f.Messages, 4)

	assert.Equal(t, "Alice", f.Users[0].Name)
	require.NotNil(t, f.Users[0].JobTitle)
	assert.Equal(t, "Software Engineer", *f.Users[0].JobTitle)
	assert.Equal(t, []string{"JavaScript", "GraphQL"}, f.Users[0].Skills)
	assert.Equal(t, "Machine Learning avec Python : astuces et outils", f.Posts[1].Content)
}

func TestParseFixturesRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "users: [name: Alice"},
		{"missing user name", "users:\n  - jobTitle: SRE\n"},
		{"post without author", "posts:\n  - content: hello\n"},
		{"self connection", "connections:\n  - user1: Alice\n    user2: Alice\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFixtures([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, apperrors.IsInvalid(err))
		})
	}
}

func TestLoadFixtures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users:\n  - name: Dana\n    skills: [Go]\n"), 0o600))

	f, err := LoadFixtures(path)
	require.NoError(t, err)
	require.Len(t, f.Users, 1)
	assert.Nil(t, f.Users[0].JobTitle)

	_, err = LoadFixtures(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := storetest.New()
	f, err := DefaultFixtures()
	require.NoError(t, err)
	m := metrics.New()
	s := New(store, f, nil, m)

	first, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{Inserted: 3}, first.Users)
	assert.Equal(t, Counts{Inserted: 3}, first.Posts)
	assert.Equal(t, Counts{Inserted: 3}, first.Comments)
	assert.Equal(t, Counts{Inserted: 3}, first.Connections)
	assert.Equal(t, Counts{Inserted: 4}, first.Messages)
	assert.Equal(t, 16, first.Inserted())

	counts := store.Counts()

	second, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Inserted())
	assert.Equal(t, Counts{Skipped: 4}, second.Messages)
	assert.Equal(t, counts, store.Counts())

	// Five entities, each seen as inserted and as skipped.
	series, err := testutil.GatherAndCount(m.Registry(), "social_seed_rows_total")
	require.NoError(t, err)
	assert.Equal(t, 10, series)
}

func TestRunResolvesNaturalKeys(t *testing.T) {
	ctx := context.Background()
	store := storetest.New()
	f, err := DefaultFixtures()
	require.NoError(t, err)

	_, err = New(store, f, nil, nil).Run(ctx)
	require.NoError(t, err)

	alice, err := store.FindUserByName(ctx, "Alice")
	require.NoError(t, err)
	bob, err := store.FindUserByName(ctx, "Bob")
	require.NoError(t, err)

	post, err := store.FindPostByContent(ctx, "Introduction à GraphQL avec Apollo")
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, alice.ID, post.AuthorID)
	assert.Equal(t, "https://example.com/graphql-apollo.jpg", post.MediaURL.String)

	comments, err := store.ListCommentsByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 2)

	cn, err := store.FindConnection(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.NotNil(t, cn)

	msg, err := store.FindMessageByContent(ctx, "Bien merci ! Et toi ?")
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, bob.ID, msg.SenderID)
	assert.Equal(t, alice.ID, msg.ReceiverID)
}

func TestRunUsesExistingUsers(t *testing.T) {
	ctx := context.Background()
	store := storetest.New()
	_, err := store.CreateUser(ctx, &database.User{Name: "Zoe"})
	require.NoError(t, err)

	f, err := ParseFixtures([]byte("posts:\n  - content: hello\n    author: Zoe\n"))
	require.NoError(t, err)

	report, err := New(store, f, nil, nil).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{Inserted: 1}, report.Posts)
}

func TestRunRejectsUnknownReferences(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"post author", "posts:\n  - content: hello\n    author: Nobody\n"},
		{"comment post", "users:\n  - name: Alice\ncomments:\n  - content: hi\n    post: missing\n    author: Alice\n"},
		{"connection endpoint", "users:\n  - name: Alice\nconnections:\n  - user1: Alice\n    user2: Ghost\n"},
		{"message receiver", "users:\n  - name: Alice\nmessages:\n  - content: hi\n    sender: Alice\n    receiver: Ghost\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFixtures([]byte(tt.yaml))
			require.NoError(t, err)

			_, err = New(storetest.New(), f, nil, nil).Run(context.Background())
			require.Error(t, err)
			assert.True(t, apperrors.IsInvalid(err))
		})
	}
}

func TestRunStopsOnStorageFailure(t *testing.T) {
	store := storetest.New()
	store.Err = apperrors.WrapUnavailable(errors.New("connection refused"), "database", "FindUserByName")
	f, err := DefaultFixtures()
	require.NoError(t, err)

	report, err := New(store, f, nil, nil).Run(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))
	assert.Equal(t, 0, report.Inserted())
}
