// Package seed populates the social graph with fixture data. A run only
// inserts rows whose natural key is not present yet, so running it again is
// a no-op.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ClementRollin/LinkedIn-GraphQL/internal/apperrors"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/database"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/metrics"
)

// Store is the storage surface the seeder needs. *database.Client
// satisfies it.
type Store interface {
	FindUserByName(ctx context.Context, name string) (*database.User, error)
	CreateUser(ctx context.Context, u *database.User) (*database.User, error)

	FindPostByContent(ctx context.Context, content string) (*database.Post, error)
	CreatePost(ctx context.Context, p *database.Post) (*database.Post, error)

	FindCommentByContent(ctx context.Context, content string) (*database.Comment, error)
	CreateComment(ctx context.Context, c *database.Comment) (*database.Comment, error)

	FindConnection(ctx context.Context, user1ID, user2ID int) (*database.Connection, error)
	CreateConnection(ctx context.Context, cn *database.Connection) (*database.Connection, error)

	FindMessageByContent(ctx context.Context, content string) (*database.Message, error)
	CreateMessage(ctx context.Context, m *database.Message) (*database.Message, error)
}

var _ Store = (*database.Client)(nil)

// Counts tallies the rows of one entity.
type Counts struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// Report summarises a run per entity.
type Report struct {
	Users       Counts `json:"users"`
	Posts       Counts `json:"posts"`
	Comments    Counts `json:"comments"`
	Connections Counts `json:"connections"`
	Messages    Counts `json:"messages"`
}

// Inserted is the total number of rows created.
func (r Report) Inserted() int {
	return r.Users.Inserted + r.Posts.Inserted + r.Comments.Inserted + r.Connections.Inserted + r.Messages.Inserted
}

// Seeder loads Fixtures into a Store.
type Seeder struct {
	store    Store
	fixtures *Fixtures
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New creates a Seeder. logger and m may be nil.
func New(store Store, fixtures *Fixtures, logger *slog.Logger, m *metrics.Metrics) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		store:    store,
		fixtures: fixtures,
		logger:   logger.With(slog.String("component", "seed")),
		metrics:  m,
	}
}

// run holds the natural key lookups resolved so far.
type run struct {
	*Seeder
	users map[string]int
	posts map[string]int
}

// Run inserts users, posts, comments, connections and messages in that
// order. It stops at the first error; rows inserted before it stay.
func (s *Seeder) Run(ctx context.Context) (Report, error) {
	r := &run{
		Seeder: s,
		users:  make(map[string]int),
		posts:  make(map[string]int),
	}
	var report Report

	steps := []struct {
		name   string
		counts *Counts
		fn     func(context.Context, *Counts) error
	}{
		{"users", &report.Users, r.seedUsers},
		{"posts", &report.Posts, r.seedPosts},
		{"comments", &report.Comments, r.seedComments},
		{"connections", &report.Connections, r.seedConnections},
		{"messages", &report.Messages, r.seedMessages},
	}
	for _, step := range steps {
		if err := step.fn(ctx, step.counts); err != nil {
			return report, apperrors.Classify(err, "seed", step.name)
		}
	}

	s.logger.InfoContext(ctx, "seed completed",
		slog.Int("inserted", report.Inserted()),
		slog.Int("users", report.Users.Inserted),
		slog.Int("posts", report.Posts.Inserted),
		slog.Int("comments", report.Comments.Inserted),
		slog.Int("connections", report.Connections.Inserted),
		slog.Int("messages", report.Messages.Inserted),
	)
	return report, nil
}

func (r *run) record(ctx context.Context, counts *Counts, entity, key string, inserted bool) {
	result := "skipped"
	if inserted {
		counts.Inserted++
		result = "inserted"
	} else {
		counts.Skipped++
	}
	r.metrics.ObserveSeedRow(entity, result)
	r.logger.InfoContext(ctx, "seed row",
		slog.String("entity", entity),
		slog.String("key", key),
		slog.String("result", result),
	)
}

// userID resolves a user name, falling back to storage for users that exist
// but are not part of the fixtures.
func (r *run) userID(ctx context.Context, name string) (int, error) {
	if id, ok := r.users[name]; ok {
		return id, nil
	}
	u, err := r.store.FindUserByName(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("failed to find user %q: %w", name, err)
	}
	if u == nil {
		return 0, fmt.Errorf("unknown user %q: %w", name, apperrors.ErrInvalid)
	}
	r.users[name] = u.ID
	return u.ID, nil
}

func (r *run) postID(ctx context.Context, content string) (int, error) {
	if id, ok := r.posts[content]; ok {
		return id, nil
	}
	p, err := r.store.FindPostByContent(ctx, content)
	if err != nil {
		return 0, fmt.Errorf("failed to find post %q: %w", content, err)
	}
	if p == nil {
		return 0, fmt.Errorf("unknown post %q: %w", content, apperrors.ErrInvalid)
	}
	r.posts[content] = p.ID
	return p.ID, nil
}

// =============================================================================
// ENTITIES
// =============================================================================

func (r *run) seedUsers(ctx context.Context, counts *Counts) error {
	for _, f := range r.fixtures.Users {
		existing, err := r.store.FindUserByName(ctx, f.Name)
		if err != nil {
			return fmt.Errorf("failed to find user %q: %w", f.Name, err)
		}
		if existing != nil {
			r.users[f.Name] = existing.ID
			r.record(ctx, counts, "user", f.Name, false)
			continue
		}

		created, err := r.store.CreateUser(ctx, &database.User{
			Name:     f.Name,
			JobTitle: database.ToNullString(f.JobTitle),
			Skills:   f.Skills,
		})
		if err != nil {
			return fmt.Errorf("failed to seed user %q: %w", f.Name, err)
		}
		r.users[f.Name] = created.ID
		r.record(ctx, counts, "user", f.Name, true)
	}
	return nil
}

func (r *run) seedPosts(ctx context.Context, counts *Counts) error {
	for _, f := range r.fixtures.Posts {
		existing, err := r.store.FindPostByContent(ctx, f.Content)
		if err != nil {
			return fmt.Errorf("failed to find post %q: %w", f.Content, err)
		}
		if existing != nil {
			r.posts[f.Content] = existing.ID
			r.record(ctx, counts, "post", f.Content, false)
			continue
		}

		authorID, err := r.userID(ctx, f.Author)
		if err != nil {
			return fmt.Errorf("post %q: %w", f.Content, err)
		}
		created, err := r.store.CreatePost(ctx, &database.Post{
			Content:  f.Content,
			MediaURL: database.ToNullString(f.MediaURL),
			AuthorID: authorID,
		})
		if err != nil {
			return fmt.Errorf("failed to seed post %q: %w", f.Content, err)
		}
		r.posts[f.Content] = created.ID
		r.record(ctx, counts, "post", f.Content, true)
	}
	return nil
}

func (r *run) seedComments(ctx context.Context, counts *Counts) error {
	for _, f := range r.fixtures.Comments {
		existing, err := r.store.FindCommentByContent(ctx, f.Content)
		if err != nil {
			return fmt.Errorf("failed to find comment %q: %w", f.Content, err)
		}
		if existing != nil {
			r.record(ctx, counts, "comment", f.Content, false)
			continue
		}

		postID, err := r.postID(ctx, f.Post)
		if err != nil {
			return fmt.Errorf("comment %q: %w", f.Content, err)
		}
		authorID, err := r.userID(ctx, f.Author)
		if err != nil {
			return fmt.Errorf("comment %q: %w", f.Content, err)
		}
		if _, err := r.store.CreateComment(ctx, &database.Comment{
			Content:  f.Content,
			PostID:   postID,
			AuthorID: authorID,
		}); err != nil {
			return fmt.Errorf("failed to seed comment %q: %w", f.Content, err)
		}
		r.record(ctx, counts, "comment", f.Content, true)
	}
	return nil
}

func (r *run) seedConnections(ctx context.Context, counts *Counts) error {
	for _, f := range r.fixtures.Connections {
		key := f.User1 + " <-> " + f.User2
		user1ID, err := r.userID(ctx, f.User1)
		if err != nil {
			return fmt.Errorf("connection %s: %w", key, err)
		}
		user2ID, err := r.userID(ctx, f.User2)
		if err != nil {
			return fmt.Errorf("connection %s: %w", key, err)
		}

		existing, err := r.store.FindConnection(ctx, user1ID, user2ID)
		if err != nil {
			return fmt.Errorf("failed to find connection %s: %w", key, err)
		}
		if existing != nil {
			r.record(ctx, counts, "connection", key, false)
			continue
		}

		if _, err := r.store.CreateConnection(ctx, &database.Connection{
			User1ID: user1ID,
			User2ID: user2ID,
		}); err != nil {
			return fmt.Errorf("failed to seed connection %s: %w", key, err)
		}
		r.record(ctx, counts, "connection", key, true)
	}
	return nil
}

func (r *run) seedMessages(ctx context.Context, counts *Counts) error {
	for _, f := range r.fixtures.Messages {
		existing, err := r.store.FindMessageByContent(ctx, f.Content)
		if err != nil {
			return fmt.Errorf("failed to find message %q: %w", f.Content, err)
		}
		if existing != nil {
			r.record(ctx, counts, "message", f.Content, false)
			continue
		}

		senderID, err := r.userID(ctx, f.Sender)
		if err != nil {
			return fmt.Errorf("message %q: %w", f.Content, err)
		}
		receiverID, err := r.userID(ctx, f.Receiver)
		if err != nil {
			return fmt.Errorf("message %q: %w", f.Content, err)
		}
		if _, err := r.store.CreateMessage(ctx, &database.Message{
			Content:    f.Content,
			SenderID:   senderID,
			ReceiverID: receiverID,
		}); err != nil {
			return fmt.Errorf("failed to seed message %q: %w", f.Content, err)
		}
		r.record(ctx, counts, "message", f.Content, true)
	}
	return nil
}
