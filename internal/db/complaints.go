package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jantavoice/backend/internal/models"
)

// ErrDuplicateID signals an id collision on insert so the caller can retry
// with a freshly generated id.
var ErrDuplicateID = errors.New("duplicate id")

const complaintColumns = `id, token, type, category, name, phone, location, latitude, longitude,
	department, urgency, description, status, photo_url, voice_path, transcript, created_at, updated_at`

func (s *Store) InsertComplaint(ctx context.Context, c models.Complaint) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO complaints (`+complaintColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
	`, c.ID, c.Token, c.Type, c.Category, c.Name, c.Phone, c.Location, c.Latitude, c.Longitude,
		c.Department, c.Urgency, c.Description, c.Status, c.PhotoURL, c.VoicePath, c.Transcript,
		c.Timestamp, c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateID
		}
		return err
	}
	return nil
}

func (s *Store) GetComplaint(ctx context.Context, id string) (models.Complaint, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+complaintColumns+` FROM complaints WHERE id = $1`, id)
	return scanComplaint(row)
}

// ListComplaints returns complaints newest first. A limit <= 0 means no cap:
// the admin dashboard fetches the whole queue.
func (s *Store) ListComplaints(ctx context.Context, status, department string, limit, offset int) ([]models.Complaint, error) {
	query, args := buildComplaintListQuery(status, department, limit, offset)
	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Complaint
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateComplaintStatus overwrites status and refreshes updated_at, leaving
// every other field untouched. Setting the current value again succeeds.
// The second return value is false when no complaint has that id.
func (s *Store) UpdateComplaintStatus(ctx context.Context, id string, status models.ComplaintStatus) (bool, error) {
	tag, err := s.Pool.Exec(ctx, `UPDATE complaints SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// NearbyCandidate is the minimal projection used by the duplicate hint.
// Department matching is done in the service layer so free-text department
// strings can be bucketed before comparison.
type NearbyCandidate struct {
	ID         string
	Department string
	Latitude   float64
	Longitude  float64
}

// ListOpenComplaintsNear returns unresolved complaints created after the
// cutoff, with coordinates present.
func (s *Store) ListOpenComplaintsNear(ctx context.Context, since time.Time) ([]NearbyCandidate, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, department, latitude, longitude FROM complaints
		WHERE status <> $1 AND created_at >= $2
			AND latitude IS NOT NULL AND longitude IS NOT NULL
	`, models.StatusResolved, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []NearbyCandidate
	for rows.Next() {
		var c NearbyCandidate
		if err := rows.Scan(&c.ID, &c.Department, &c.Latitude, &c.Longitude); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func buildComplaintListQuery(status, department string, limit, offset int) (string, []any) {
	query := `SELECT ` + complaintColumns + ` FROM complaints`
	var args []any
	var wheres []string
	if status != "" {
		args = append(args, status)
		wheres = append(wheres, fmt.Sprintf("status = $%d", len(args)))
	}
	if department != "" {
		args = append(args, "%"+department+"%")
		wheres = append(wheres, fmt.Sprintf("department ILIKE $%d", len(args)))
	}
	if len(wheres) > 0 {
		query += " WHERE " + strings.Join(wheres, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}

type complaintScanner interface {
	Scan(dest ...any) error
}

func scanComplaint(row complaintScanner) (models.Complaint, error) {
	var c models.Complaint
	err := row.Scan(&c.ID, &c.Token, &c.Type, &c.Category, &c.Name, &c.Phone, &c.Location,
		&c.Latitude, &c.Longitude, &c.Department, &c.Urgency, &c.Description, &c.Status,
		&c.PhotoURL, &c.VoicePath, &c.Transcript, &c.Timestamp, &c.UpdatedAt)
	if err != nil {
		return models.Complaint{}, err
	}
	return c, nil
}

// IsNotFound reports whether err is the store's row-miss signal, kept
// distinct from transient failures so handlers can answer 404 vs 500.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
