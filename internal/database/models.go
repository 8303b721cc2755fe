// Package database provides database models for the social API tables.
package database

import (
	"database/sql"
	"time"
)

// User is a member of the network.
type User struct {
	ID       int            `json:"id"`
	Name     string         `json:"name"`
	JobTitle sql.NullString `json:"jobTitle"`
	Skills   []string       `json:"skills"`
}

// Post is a piece of content authored by a user.
type Post struct {
	ID        int            `json:"id"`
	Content   string         `json:"content"`
	MediaURL  sql.NullString `json:"mediaUrl"`
	AuthorID  int            `json:"authorId"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Comment is a reply to a post.
type Comment struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	PostID    int       `json:"postId"`
	AuthorID  int       `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Connection is an undirected edge between two users. Either user may be
// stored in either column.
type Connection struct {
	ID      int `json:"id"`
	User1ID int `json:"user1Id"`
	User2ID int `json:"user2Id"`
}

// ConnectionEdge is a connection row joined with both of its endpoints.
type ConnectionEdge struct {
	Connection
	User1 *User `json:"user1"`
	User2 *User `json:"user2"`
}

// Message is a direct message between two users.
type Message struct {
	ID         int       `json:"id"`
	Content    string    `json:"content"`
	SenderID   int       `json:"senderId"`
	ReceiverID int       `json:"receiverId"`
	SentAt     time.Time `json:"sentAt"`
}

// ToNullString converts a string pointer into a sql.NullString.
func ToNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// FromNullString converts a sql.NullString into a string pointer.
func FromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
