// Package graph provides GraphQL models and their mapping from database rows.
package graph

import (
	"time"

	"github.com/ClementRollin/LinkedIn-GraphQL/internal/database"
)

// User is the GraphQL User type.
type User struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	JobTitle *string  `json:"jobTitle"`
	Skills   []string `json:"skills"`
}

// Post is the GraphQL Post type.
type Post struct {
	ID        int     `json:"id"`
	Content   string  `json:"content"`
	MediaURL  *string `json:"mediaUrl"`
	AuthorID  int     `json:"-"`
	CreatedAt string  `json:"createdAt"`
}

// Comment is the GraphQL Comment type.
type Comment struct {
	ID        int    `json:"id"`
	Content   string `json:"content"`
	PostID    int    `json:"-"`
	AuthorID  int    `json:"-"`
	CreatedAt string `json:"createdAt"`
}

// Connection is the GraphQL Connection type.
type Connection struct {
	ID      int `json:"id"`
	User1ID int `json:"-"`
	User2ID int `json:"-"`
}

// Message is the GraphQL Message type.
type Message struct {
	ID         int    `json:"id"`
	Content    string `json:"content"`
	SenderID   int    `json:"-"`
	ReceiverID int    `json:"-"`
	SentAt     string `json:"sentAt"`
}

// formatTime renders timestamps as RFC 3339 in UTC.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func mapUserToGraphQL(u *database.User) *User {
	if u == nil {
		return nil
	}
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return &User{
		ID:       u.ID,
		Name:     u.Name,
		JobTitle: database.FromNullString(u.JobTitle),
		Skills:   skills,
	}
}

func mapPostToGraphQL(p *database.Post) *Post {
	if p == nil {
		return nil
	}
	return &Post{
		ID:        p.ID,
		Content:   p.Content,
		MediaURL:  database.FromNullString(p.MediaURL),
		AuthorID:  p.AuthorID,
		CreatedAt: formatTime(p.CreatedAt),
	}
}

func mapCommentToGraphQL(c *database.Comment) *Comment {
	if c == nil {
		return nil
	}
	return &Comment{
		ID:        c.ID,
		Content:   c.Content,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		CreatedAt: formatTime(c.CreatedAt),
	}
}

func mapMessageToGraphQL(m *database.Message) *Message {
	if m == nil {
		return nil
	}
	return &Message{
		ID:         m.ID,
		Content:    m.Content,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		SentAt:     formatTime(m.SentAt),
	}
}

func mapUsers(rows []*database.User) []*User {
	result := make([]*User, len(rows))
	for i, u := range rows {
		result[i] = mapUserToGraphQL(u)
	}
	return result
}

func mapPosts(rows []*database.Post) []*Post {
	result := make([]*Post, len(rows))
	for i, p := range rows {
		result[i] = mapPostToGraphQL(p)
	}
	return result
}

func mapComments(rows []*database.Comment) []*Comment {
	result := make([]*Comment, len(rows))
	for i, c := range rows {
		result[i] = mapCommentToGraphQL(c)
	}
	return result
}

func mapMessages(rows []*database.Message) []*Message {
	result := make([]*Message, len(rows))
	for i, m := range rows {
		result[i] = mapMessageToGraphQL(m)
	}
	return result
}
