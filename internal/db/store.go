package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// EnsureSchema creates the tables on startup when they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS complaints (
			id           TEXT PRIMARY KEY,
			token        TEXT NOT NULL,
			type         TEXT NOT NULL DEFAULT 'text',
			category     TEXT NOT NULL DEFAULT '',
			name         TEXT NOT NULL,
			phone        TEXT,
			location     TEXT NOT NULL,
			latitude     DOUBLE PRECISION,
			longitude    DOUBLE PRECISION,
			department   TEXT NOT NULL,
			urgency      TEXT NOT NULL,
			description  TEXT NOT NULL,
			status       TEXT NOT NULL DEFAULT 'Pending',
			photo_url    TEXT,
			voice_path   TEXT,
			transcript   TEXT,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS complaints_created_at_idx ON complaints (created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS pickup_requests (
			id               TEXT PRIMARY KEY,
			name             TEXT NOT NULL,
			phone            TEXT NOT NULL,
			email            TEXT NOT NULL DEFAULT '',
			address          TEXT NOT NULL,
			latitude         DOUBLE PRECISION,
			longitude        DOUBLE PRECISION,
			materials        TEXT[] NOT NULL,
			quantity         TEXT NOT NULL DEFAULT 'Medium',
			preferred_date   TEXT NOT NULL,
			preferred_time   TEXT NOT NULL,
			instructions     TEXT NOT NULL DEFAULT '',
			status           TEXT NOT NULL DEFAULT 'Pending',
			assigned_driver  TEXT,
			pickup_date      TEXT,
			pickup_time      TEXT,
			notes            JSONB NOT NULL DEFAULT '[]',
			created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS pickup_requests_created_at_idx ON pickup_requests (created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			username   TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.Pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
