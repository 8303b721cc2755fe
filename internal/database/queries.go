// Package database provides queries for users, posts and comments.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// queryList runs a multi-row query and scans every row with scan. The
// returned slice is never nil.
func queryList[T any](ctx context.Context, c *Client, op, table string, scan func(rowScanner) (*T, error), query string, args ...any) (result []*T, err error) {
	ctx, span := c.startSpan(ctx, op, table)
	defer func() { endSpan(span, err) }()

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	defer rows.Close()

	result = make([]*T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	return result, nil
}

// queryOne runs a single-row query. A missing row yields nil, nil.
func queryOne[T any](ctx context.Context, c *Client, op, table string, scan func(rowScanner) (*T, error), query string, args ...any) (result *T, err error) {
	ctx, span := c.startSpan(ctx, op, table)
	defer func() { endSpan(span, err) }()

	result, err = scan(c.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	return result, nil
}

// =============================================================================
// USER QUERIES
// =============================================================================

const userColumns = `id, name, job_title, skills`

func scanUser(row rowScanner) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.JobTitle, pq.Array(&u.Skills)); err != nil {
		return nil, err
	}
	if u.Skills == nil {
		u.Skills = []string{}
	}
	return &u, nil
}

// ListUsers retrieves all users.
func (c *Client) ListUsers(ctx context.Context) ([]*User, error) {
	return queryList(ctx, c, "list users", "users", scanUser, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY id
	`)
}

// GetUser retrieves a user by ID.
func (c *Client) GetUser(ctx context.Context, id int) (*User, error) {
	return queryOne(ctx, c, "get user", "users", scanUser, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
}

// FindUserByName retrieves the oldest user with the given name.
func (c *Client) FindUserByName(ctx context.Context, name string) (*User, error) {
	return queryOne(ctx, c, "find user", "users", scanUser, `
		SELECT `+userColumns+`
		FROM users
		WHERE name = $1
		ORDER BY id
		LIMIT 1
	`, name)
}

// CreateUser inserts a user and returns the stored row.
func (c *Client) CreateUser(ctx context.Context, u *User) (*User, error) {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return queryOne(ctx, c, "create user", "users", scanUser, `
		INSERT INTO users (name, job_title, skills)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns, u.Name, u.JobTitle, pq.Array(skills))
}

// =============================================================================
// POST QUERIES
// =============================================================================

const postColumns = `id, content, media_url, author_id, created_at`

func scanPost(row rowScanner) (*Post, error) {
	var p Post
	if err := row.Scan(&p.ID, &p.Content, &p.MediaURL, &p.AuthorID, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPosts retrieves all posts.
func (c *Client) ListPosts(ctx context.Context) ([]*Post, error) {
	return queryList(ctx, c, "list posts", "posts", scanPost, `
		SELECT `+postColumns+`
		FROM posts
		ORDER BY id
	`)
}

// GetPost retrieves a post by ID.
func (c *Client) GetPost(ctx context.Context, id int) (*Post, error) {
	return queryOne(ctx, c, "get post", "posts", scanPost, `
		SELECT `+postColumns+`
		FROM posts
		WHERE id = $1
	`, id)
}

// ListPostsByAuthor retrieves the posts written by a user.
func (c *Client) ListPostsByAuthor(ctx context.Context, authorID int) ([]*Post, error) {
	return queryList(ctx, c, "list posts by author", "posts", scanPost, `
		SELECT `+postColumns+`
		FROM posts
		WHERE author_id = $1
		ORDER BY id
	`, authorID)
}

// FindPostByContent retrieves the oldest post with exactly the given content.
func (c *Client) FindPostByContent(ctx context.Context, content string) (*Post, error) {
	return queryOne(ctx, c, "find post", "posts", scanPost, `
		SELECT `+postColumns+`
		FROM posts
		WHERE content = $1
		ORDER BY id
		LIMIT 1
	`, content)
}

// CreatePost inserts a post and returns the stored row.
func (c *Client) CreatePost(ctx context.Context, p *Post) (*Post, error) {
	return queryOne(ctx, c, "create post", "posts", scanPost, `
		INSERT INTO posts (content, media_url, author_id)
		VALUES ($1, $2, $3)
		RETURNING `+postColumns, p.Content, p.MediaURL, p.AuthorID)
}

// =============================================================================
// COMMENT QUERIES
// =============================================================================

const commentColumns = `id, content, post_id, author_id, created_at`

func scanComment(row rowScanner) (*Comment, error) {
	var cm Comment
	if err := row.Scan(&cm.ID, &cm.Content, &cm.PostID, &cm.AuthorID, &cm.CreatedAt); err != nil {
		return nil, err
	}
	return &cm, nil
}

// ListComments retrieves all comments.
func (c *Client) ListComments(ctx context.Context) ([]*Comment, error) {
	return queryList(ctx, c, "list comments", "comments", scanComment, `
		SELECT `+commentColumns+`
		FROM comments
		ORDER BY id
	`)
}

// ListCommentsByPost retrieves the comments attached to a post.
func (c *Client) ListCommentsByPost(ctx context.Context, postID int) ([]*Comment, error) {
	return queryList(ctx, c, "list comments by post", "comments", scanComment, `
		SELECT `+commentColumns+`
		FROM comments
		WHERE post_id = $1
		ORDER BY id
	`, postID)
}

// FindCommentByContent retrieves the oldest comment with exactly the given content.
func (c *Client) FindCommentByContent(ctx context.Context, content string) (*Comment, error) {
	return queryOne(ctx, c, "find comment", "comments", scanComment, `
		SELECT `+commentColumns+`
		FROM comments
		WHERE content = $1
		ORDER BY id
		LIMIT 1
	`, content)
}

// CreateComment inserts a comment and returns the stored row.
func (c *Client) CreateComment(ctx context.Context, cm *Comment) (*Comment, error) {
	return queryOne(ctx, c, "create comment", "comments", scanComment, `
		INSERT INTO comments (content, post_id, author_id)
		VALUES ($1, $2, $3)
		RETURNING `+commentColumns, cm.Content, cm.PostID, cm.AuthorID)
}
