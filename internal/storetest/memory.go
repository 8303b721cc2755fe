// Package storetest provides an in-memory store for package tests. It
// mirrors the PostgreSQL client closely enough for resolver and seeder
// tests: ids are sequential, lists come back in id order, and foreign key
// violations surface as *pq.Error values like the real driver returns.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/ClementRollin/LinkedIn-GraphQL/internal/apperrors"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/database"
)

// MemoryStore is a concurrency-safe in-memory stand-in for *database.Client.
type MemoryStore struct {
	mu sync.Mutex

	// Err, when set, is returned by every call.
	Err error
	// Now stamps created rows. Defaults to time.Now.
	Now func() time.Time

	users       []*database.User
	posts       []*database.Post
	comments    []*database.Comment
	connections []*database.Connection
	messages    []*database.Message
}

// New returns an empty MemoryStore.
func New() *MemoryStore {
	return &MemoryStore{Now: time.Now}
}

// Counts reports the number of rows per table.
func (s *MemoryStore) Counts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]int{
		"users":       len(s.users),
		"posts":       len(s.posts),
		"comments":    len(s.comments),
		"connections": len(s.connections),
		"messages":    len(s.messages),
	}
}

func fkViolation(table, column string, id int) error {
	return fmt.Errorf("failed to create %s: %w", table, &pq.Error{
		Code:       "23503",
		Message:    fmt.Sprintf("insert violates foreign key constraint on %s (%s=%d)", table, column, id),
		Table:      table,
		Constraint: table + "_" + column + "_fkey",
	})
}

func (s *MemoryStore) userByID(id int) *database.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *MemoryStore) postByID(id int) *database.Post {
	for _, p := range s.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func copyUser(u *database.User) *database.User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.Skills = append([]string{}, u.Skills...)
	return &cp
}

func filter[T any](rows []*T, keep func(*T) bool) []*T {
	out := make([]*T, 0)
	for _, row := range rows {
		if keep(row) {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out
}

func first[T any](rows []*T, match func(*T) bool) *T {
	for _, row := range rows {
		if match(row) {
			cp := *row
			return &cp
		}
	}
	return nil
}

// =============================================================================
// USERS
// =============================================================================

func (s *MemoryStore) ListUsers(ctx context.Context) ([]*database.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*database.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, copyUser(u))
	}
	return out, nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id int) (*database.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return copyUser(s.userByID(id)), nil
}

func (s *MemoryStore) FindUserByName(ctx context.Context, name string) (*database.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Name == name {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, u *database.User) (*database.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	row := copyUser(u)
	row.ID = len(s.users) + 1
	s.users = append(s.users, row)
	return copyUser(row), nil
}

// =============================================================================
// POSTS
// =============================================================================

func (s *MemoryStore) ListPosts(ctx context.Context) ([]*database.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return filter(s.posts, func(*database.Post) bool { return true }), nil
}

func (s *MemoryStore) GetPost(ctx context.Context, id int) (*database.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return first(s.posts, func(p *database.Post) bool { return p.ID == id }), nil
}

func (s *MemoryStore) ListPostsByAuthor(ctx context.Context, authorID int) ([]*database.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return filter(s.posts, func(p *database.Post) bool { return p.AuthorID == authorID }), nil
}

func (s *MemoryStore) FindPostByContent(ctx context.Context, content string) (*database.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return first(s.posts, func(p *database.Post) bool { return p.Content == content }), nil
}

func (s *MemoryStore) CreatePost(ctx context.Context, p *database.Post) (*database.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.userByID(p.AuthorID) == nil {
		return nil, fkViolation("posts", "author_id", p.AuthorID)
	}
	row := *p
	row.ID = len(s.posts) + 1
	row.CreatedAt = s.Now()
	s.posts = append(s.posts, &row)
	cp := row
	return &cp, nil
}

// =============================================================================
// COMMENTS
// =============================================================================

func (s *MemoryStore) ListComments(ctx context.Context) ([]*database.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return filter(s.comments, func(*database.Comment) bool { return true }), nil
}

func (s *MemoryStore) ListCommentsByPost(ctx context.Context, postID int) ([]*database.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return filter(s.comments, func(c *database.Comment) bool { return c.PostID == postID }), nil
}

func (s *MemoryStore) FindCommentByContent(ctx context.Context, content string) (*database.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return first(s.comments, func(c *database.Comment) bool { return c.Content == content }), nil
}

func (s *MemoryStore) CreateComment(ctx context.Context, c *database.Comment) (*database.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.postByID(c.PostID) == nil {
		return nil, fkViolation("comments", "post_id", c.PostID)
	}
	if s.userByID(c.AuthorID) == nil {
		return nil, fkViolation("comments", "author_id", c.AuthorID)
	}
	row := *c
	row.ID = len(s.comments) + 1
	row.CreatedAt = s.Now()
	s.comments = append(s.comments, &row)
	cp := row
	return &cp, nil
}

// =============================================================================
// CONNECTIONS
// =============================================================================

func (s *MemoryStore) ListConnectionEdges(ctx context.Context, userID int) ([]*database.ConnectionEdge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	edges := make([]*database.ConnectionEdge, 0)
	for _, cn := range s.connections {
		if cn.User1ID != userID && cn.User2ID != userID {
			continue
		}
		edges = append(edges, &database.ConnectionEdge{
			Connection: *cn,
			User1:      copyUser(s.userByID(cn.User1ID)),
			User2:      copyUser(s.userByID(cn.User2ID)),
		})
	}
	return edges, nil
}

func (s *MemoryStore) FindConnection(ctx context.Context, user1ID, user2ID int) (*database.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return first(s.connections, func(cn *database.Connection) bool {
		return cn.User1ID == user1ID && cn.User2ID == user2ID
	}), nil
}

func (s *MemoryStore) CreateConnection(ctx context.Context, cn *database.Connection) (*database.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if cn.User1ID == cn.User2ID {
		return nil, apperrors.WrapInvalid(database.ErrSelfConnection, "storetest", "CreateConnection")
	}
	for _, id := range []int{cn.User1ID, cn.User2ID} {
		if s.userByID(id) == nil {
			return nil, fkViolation("connections", "user_id", id)
		}
	}
	row := *cn
	row.ID = len(s.connections) + 1
	s.connections = append(s.connections, &row)
	cp := row
	return &cp, nil
}

// =============================================================================
// MESSAGES
// =============================================================================

func (s *MemoryStore) ListMessagesBySender(ctx context.Context, senderID int) ([]*database.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return filter(s.messages, func(m *database.Message) bool { return m.SenderID == senderID }), nil
}

func (s *MemoryStore) ListMessagesByReceiver(ctx context.Context, receiverID int) ([]*database.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return filter(s.messages, func(m *database.Message) bool { return m.ReceiverID == receiverID }), nil
}

func (s *MemoryStore) FindMessageByContent(ctx context.Context, content string) (*database.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return first(s.messages, func(m *database.Message) bool { return m.Content == content }), nil
}

func (s *MemoryStore) CreateMessage(ctx context.Context, m *database.Message) (*database.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, id := range []int{m.SenderID, m.ReceiverID} {
		if s.userByID(id) == nil {
			return nil, fkViolation("messages", "user_id", id)
		}
	}
	row := *m
	row.ID = len(s.messages) + 1
	row.SentAt = s.Now()
	s.messages = append(s.messages, &row)
	cp := row
	return &cp, nil
}
