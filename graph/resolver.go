// Package graph provides the GraphQL schema and resolvers for the social API.
package graph

import (
	"context"
	"log/slog"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/ClementRollin/LinkedIn-GraphQL/internal/apperrors"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/database"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/metrics"
)

// Store is the storage handle every resolver reads from and writes to.
// *database.Client satisfies it.
type Store interface {
	ListUsers(ctx context.Context) ([]*database.User, error)
	GetUser(ctx context.Context, id int) (*database.User, error)
	CreateUser(ctx context.Context, u *database.User) (*database.User, error)

	ListPosts(ctx context.Context) ([]*database.Post, error)
	GetPost(ctx context.Context, id int) (*database.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID int) ([]*database.Post, error)
	CreatePost(ctx context.Context, p *database.Post) (*database.Post, error)

	ListComments(ctx context.Context) ([]*database.Comment, error)
	ListCommentsByPost(ctx context.Context, postID int) ([]*database.Comment, error)
	CreateComment(ctx context.Context, c *database.Comment) (*database.Comment, error)

	ListConnectionEdges(ctx context.Context, userID int) ([]*database.ConnectionEdge, error)

	ListMessagesBySender(ctx context.Context, senderID int) ([]*database.Message, error)
	ListMessagesByReceiver(ctx context.Context, receiverID int) ([]*database.Message, error)
}

var _ Store = (*database.Client)(nil)

// Resolver is the root resolver for GraphQL queries and mutations.
type Resolver struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewResolver creates a new resolver with the given dependencies. logger and
// m may be nil.
func NewResolver(store Store, logger *slog.Logger, m *metrics.Metrics) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		store:   store,
		logger:  logger,
		metrics: m,
	}
}

// instrument wraps a resolve function with error classification, logging and
// metrics. operation names the field, e.g. "Query.users" or "Post.author".
func (r *Resolver) instrument(operation string, fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		start := time.Now()
		result, err := fn(p)
		elapsed := time.Since(start)

		if err != nil {
			err = apperrors.Classify(err, "graph", operation)
			class := apperrors.ClassOf(err)
			level := slog.LevelError
			if class == apperrors.ClassInvalid || class == apperrors.ClassNotFound {
				level = slog.LevelWarn
			}
			r.logger.LogAttrs(p.Context, level, "resolver failed",
				slog.String("operation", operation),
				slog.String("class", class.String()),
				slog.String("error", err.Error()),
			)
			r.metrics.ObserveOperation(operation, class.String(), elapsed)
			return nil, err
		}

		r.metrics.ObserveOperation(operation, "ok", elapsed)
		return result, nil
	}
}
