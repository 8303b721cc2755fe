// Package database provides queries for connections and messages.
package database

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/ClementRollin/LinkedIn-GraphQL/internal/apperrors"
)

// ErrSelfConnection is returned when both ends of a connection are the same user.
var ErrSelfConnection = fmt.Errorf("connection endpoints must be distinct: %w", apperrors.ErrInvalid)

// =============================================================================
// CONNECTION QUERIES
// =============================================================================

const connectionColumns = `id, user1_id, user2_id`

func scanConnection(row rowScanner) (*Connection, error) {
	var cn Connection
	if err := row.Scan(&cn.ID, &cn.User1ID, &cn.User2ID); err != nil {
		return nil, err
	}
	return &cn, nil
}

func scanConnectionEdge(row rowScanner) (*ConnectionEdge, error) {
	var (
		e      ConnectionEdge
		u1, u2 User
	)
	err := row.Scan(
		&e.ID, &e.User1ID, &e.User2ID,
		&u1.ID, &u1.Name, &u1.JobTitle, pq.Array(&u1.Skills),
		&u2.ID, &u2.Name, &u2.JobTitle, pq.Array(&u2.Skills),
	)
	if err != nil {
		return nil, err
	}
	for _, u := range []*User{&u1, &u2} {
		if u.Skills == nil {
			u.Skills = []string{}
		}
	}
	e.User1, e.User2 = &u1, &u2
	return &e, nil
}

// ListConnectionEdges retrieves every connection the user takes part in, on
// either side, joined with both endpoint users.
func (c *Client) ListConnectionEdges(ctx context.Context, userID int) ([]*ConnectionEdge, error) {
	return queryList(ctx, c, "list connections", "connections", scanConnectionEdge, `
		SELECT cn.id, cn.user1_id, cn.user2_id,
		       u1.id, u1.name, u1.job_title, u1.skills,
		       u2.id, u2.name, u2.job_title, u2.skills
		FROM connections cn
		JOIN users u1 ON u1.id = cn.user1_id
		JOIN users u2 ON u2.id = cn.user2_id
		WHERE cn.user1_id = $1 OR cn.user2_id = $1
		ORDER BY cn.id
	`, userID)
}

// FindConnection retrieves the connection stored with exactly this column order.
func (c *Client) FindConnection(ctx context.Context, user1ID, user2ID int) (*Connection, error) {
	return queryOne(ctx, c, "find connection", "connections", scanConnection, `
		SELECT `+connectionColumns+`
		FROM connections
		WHERE user1_id = $1 AND user2_id = $2
		ORDER BY id
		LIMIT 1
	`, user1ID, user2ID)
}

// CreateConnection inserts a connection between two distinct users.
func (c *Client) CreateConnection(ctx context.Context, cn *Connection) (*Connection, error) {
	if cn.User1ID == cn.User2ID {
		return nil, apperrors.WrapInvalid(ErrSelfConnection, "database", "CreateConnection")
	}
	return queryOne(ctx, c, "create connection", "connections", scanConnection, `
		INSERT INTO connections (user1_id, user2_id)
		VALUES ($1, $2)
		RETURNING `+connectionColumns, cn.User1ID, cn.User2ID)
}

// =============================================================================
// MESSAGE QUERIES
// =============================================================================

const messageColumns = `id, content, sender_id, receiver_id, sent_at`

func scanMessage(row rowScanner) (*Message, error) {
	var m Message
	if err := row.Scan(&m.ID, &m.Content, &m.SenderID, &m.ReceiverID, &m.SentAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMessagesBySender retrieves the messages a user sent.
func (c *Client) ListMessagesBySender(ctx context.Context, senderID int) ([]*Message, error) {
	return queryList(ctx, c, "list sent messages", "messages", scanMessage, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE sender_id = $1
		ORDER BY id
	`, senderID)
}

// ListMessagesByReceiver retrieves the messages a user received.
func (c *Client) ListMessagesByReceiver(ctx context.Context, receiverID int) ([]*Message, error) {
	return queryList(ctx, c, "list received messages", "messages", scanMessage, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE receiver_id = $1
		ORDER BY id
	`, receiverID)
}

// FindMessageByContent retrieves the oldest message with exactly the given content.
func (c *Client) FindMessageByContent(ctx context.Context, content string) (*Message, error) {
	return queryOne(ctx, c, "find message", "messages", scanMessage, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE content = $1
		ORDER BY id
		LIMIT 1
	`, content)
}

// CreateMessage inserts a message and returns the stored row.
func (c *Client) CreateMessage(ctx context.Context, m *Message) (*Message, error) {
	return queryOne(ctx, c, "create message", "messages", scanMessage, `
		INSERT INTO messages (content, sender_id, receiver_id)
		VALUES ($1, $2, $3)
		RETURNING `+messageColumns, m.Content, m.SenderID, m.ReceiverID)
}
