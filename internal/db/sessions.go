package db

import (
	"context"

	"github.com/jantavoice/backend/internal/models"
)

func (s *Store) CreateSession(ctx context.Context, sess models.Session) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO sessions (id, username, created_at, expires_at) VALUES ($1,$2,$3,$4)
	`, sess.ID, sess.Username, sess.CreatedAt, sess.ExpiresAt)
	return err
}

func (s *Store) GetSession(ctx context.Context, id string) (models.Session, error) {
	var sess models.Session
	err := s.Pool.QueryRow(ctx, `
		SELECT id, username, created_at, expires_at FROM sessions WHERE id = $1
	`, id).Scan(&sess.ID, &sess.Username, &sess.CreatedAt, &sess.ExpiresAt)
	return sess, err
}

func (s *Store) DeleteSession(ctx context.Context, id string) error {
	_, err := s.Pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

func (s *Store) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
