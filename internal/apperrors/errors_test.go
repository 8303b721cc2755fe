package apperrors

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Class
	}{
		{"nil", nil, ClassInternal},
		{"plain error", errors.New("boom"), ClassInternal},
		{"not found sentinel", fmt.Errorf("user 7: %w", ErrNotFound), ClassNotFound},
		{"invalid sentinel", fmt.Errorf("self connection: %w", ErrInvalid), ClassInvalid},
		{"bad conn", fmt.Errorf("query: %w", driver.ErrBadConn), ClassUnavailable},
		{"deadline", context.DeadlineExceeded, ClassUnavailable},
		{"foreign key violation", &pq.Error{Code: "23503"}, ClassInvalid},
		{"not null violation", &pq.Error{Code: "23502"}, ClassInvalid},
		{"check violation", &pq.Error{Code: "23514"}, ClassInvalid},
		{"connection failure", &pq.Error{Code: "08006"}, ClassUnavailable},
		{"too many connections", &pq.Error{Code: "53300"}, ClassUnavailable},
		{"syntax error", &pq.Error{Code: "42601"}, ClassInternal},
		{"dial error", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, ClassUnavailable},
		{"classified", WrapInvalid(errors.New("x"), "c", "op"), ClassInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassOf(tt.err))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Classify(nil, "graph", "user"))
	})

	t.Run("driver error gets classified", func(t *testing.T) {
		err := Classify(fmt.Errorf("failed to create post: %w", &pq.Error{Code: "23503"}), "graph", "createPost")

		var ce *ClassifiedError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, ClassInvalid, ce.Class)
		assert.Equal(t, "graph", ce.Component)
		assert.Equal(t, "createPost", ce.Operation)
		assert.Equal(t, "INVALID", ce.Extensions()["code"])
	})

	t.Run("classified error returned unchanged", func(t *testing.T) {
		orig := WrapNotFound(errors.New("post 3"), "graph", "Comment.post")
		assert.Same(t, orig, Classify(orig, "graph", "other"))
	})

	t.Run("wrapped classified error keeps class at the top", func(t *testing.T) {
		inner := WrapUnavailable(errors.New("down"), "database", "ping")
		err := Classify(fmt.Errorf("outer: %w", inner), "graph", "users")

		ce, ok := err.(*ClassifiedError)
		require.True(t, ok)
		assert.Equal(t, ClassUnavailable, ce.Class)
	})
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsNotFound(WrapNotFound(errors.New("x"), "c", "op")))
	assert.True(t, IsInvalid(&pq.Error{Code: "23505"}))
	assert.True(t, IsUnavailable(driver.ErrBadConn))
	assert.False(t, IsNotFound(nil))
	assert.False(t, IsInvalid(errors.New("boom")))
}

func TestClassStrings(t *testing.T) {
	assert.Equal(t, "not_found", ClassNotFound.String())
	assert.Equal(t, "internal", ClassInternal.String())
	assert.Equal(t, "UNAVAILABLE", ClassUnavailable.Code())
	assert.Equal(t, "INTERNAL", Class(42).Code())
}

