package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/gymtrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/attribute"
)

const postgresCreateTableSQL = `
CREATE TABLE IF NOT EXISTS kv_store
(
    key        TEXT PRIMARY KEY,
    value      BYTEA                    NOT NULL,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
);`

//go:generate mockgen -source=$GOFILE -destination=postgres_mocks_test.go -package=persistence_test

// pgxPool is the part of *pgxpool.Pool used here.
type pgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Postgres struct {
	db pgxPool
}

// NewPostgres creates the kv_store table if missing. The pool is owned by the
// caller and is not closed by Close.
func NewPostgres(ctx context.Context, db pgxPool) (*Postgres, error) {
	if _, err := db.Exec(ctx, postgresCreateTableSQL); err != nil {
		return nil, fmt.Errorf("create kv_store table: %w", err)
	}
	return &Postgres{
		db: db,
	}, nil
}

func (p *Postgres) Get(ctx context.Context, key string) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "persistence.postgres.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))

	var value []byte
	err = p.db.QueryRow(
		ctx,
		`SELECT value FROM kv_store WHERE key = $1;`,
		key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key, err)
	}

	return value, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "persistence.postgres.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key), attribute.Int("size", len(value)))

	tag, err := p.db.Exec(
		ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at;`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("upsert %s: unexpected rows affected: %d", key, tag.RowsAffected())
	}

	return nil
}

func (p *Postgres) Close() error {
	return nil
}
