package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/accessdesk/accessdesk/internal/shared"
)

// PostgresStore keeps one row per collection with the document as jsonb.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgresStore on the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the collections table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		doc JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return &shared.StorageError{Op: "migrate", Collection: "collections", Err: pgDetail(err)}
	}
	return nil
}

// Load reads the collection document. A missing row leaves out untouched.
func (s *PostgresStore) Load(ctx context.Context, collection string, out any) error {
	var payload []byte
	err := s.pool.QueryRow(ctx, `SELECT doc FROM collections WHERE name = $1`, collection).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return &shared.StorageError{Op: "load", Collection: collection, Err: pgDetail(err)}
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &shared.StorageError{Op: "load", Collection: collection, Err: err}
	}
	return nil
}

// Save replaces the collection document via upsert.
func (s *PostgresStore) Save(ctx context.Context, collection string, records any) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return &shared.StorageError{Op: "save", Collection: collection, Err: err}
	}
	const upsert = `INSERT INTO collections (name, doc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`
	if _, err := s.pool.Exec(ctx, upsert, collection, payload); err != nil {
		return &shared.StorageError{Op: "save", Collection: collection, Err: pgDetail(err)}
	}
	return nil
}

// Snapshot copies the collection row into a backup-named row.
func (s *PostgresStore) Snapshot(ctx context.Context, collection, backup string) error {
	const copyRow = `INSERT INTO collections (name, doc, updated_at)
		SELECT 'backup:' || $2 || ':' || name, doc, now() FROM collections WHERE name = $1
		ON CONFLICT (name) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`
	if _, err := s.pool.Exec(ctx, copyRow, collection, backup); err != nil {
		return &shared.StorageError{Op: "snapshot", Collection: collection, Err: pgDetail(err)}
	}
	return nil
}

// pgDetail keeps the server-side error code visible in wrapped faults.
func pgDetail(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s (%s)", pgErr.Message, pgErr.Code)
	}
	return err
}
