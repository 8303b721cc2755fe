// Package database provides PostgreSQL client and data access for the social API.
package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ClementRollin/LinkedIn-GraphQL/internal/apperrors"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const tracerName = "github.com/ClementRollin/LinkedIn-GraphQL/internal/database"

// Client wraps the database connection pool and provides data access methods.
type Client struct {
	db     *sql.DB
	tracer trace.Tracer
}

// Option configures a Client.
type Option func(*sql.DB)

// WithPool sets the connection pool limits.
func WithPool(maxOpen, maxIdle int) Option {
	return func(db *sql.DB) {
		db.SetMaxOpenConns(maxOpen)
		db.SetMaxIdleConns(maxIdle)
	}
}

// NewClient creates a new database client connected to the given PostgreSQL URL.
func NewClient(ctx context.Context, databaseURL string, opts ...Option) (*Client, error) {
	if databaseURL == "" {
		return nil, apperrors.WrapInvalid(errors.New("DATABASE_URL is required"), "database", "NewClient")
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	for _, opt := range opts {
		opt(db)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, apperrors.WrapUnavailable(fmt.Errorf("failed to ping database: %w", err), "database", "NewClient")
	}

	return NewFromDB(db), nil
}

// NewFromDB wraps an already opened *sql.DB.
func NewFromDB(db *sql.DB) *Client {
	return &Client{
		db:     db,
		tracer: otel.Tracer(tracerName),
	}
}

// Close closes the database connection.
func (c *Client) Close() error {
	return c.db.Close()
}

// Ping verifies the database is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return apperrors.WrapUnavailable(err, "database", "Ping")
	}
	return nil
}

// Migrate applies the embedded schema migrations.
func (c *Client) Migrate() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migration source: %w", err)
	}

	driver, err := postgres.WithInstance(c.db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

func (c *Client) startSpan(ctx context.Context, operation, table string) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, "db."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", operation),
			attribute.String("db.sql.table", table),
		),
	)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
