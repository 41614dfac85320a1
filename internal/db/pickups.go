package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jantavoice/backend/internal/models"
)

const pickupColumns = `id, name, phone, email, address, latitude, longitude, materials, quantity,
	preferred_date, preferred_time, instructions, status, assigned_driver, pickup_date, pickup_time,
	notes, created_at, updated_at`

func (s *Store) InsertPickup(ctx context.Context, p models.PickupRequest) error {
	notes, err := json.Marshal(p.Notes)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx, `
		INSERT INTO pickup_requests (`+pickupColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
	`, p.ID, p.Name, p.Phone, p.Email, p.Address, p.Latitude, p.Longitude, p.Materials, p.Quantity,
		p.PreferredDate, p.PreferredTime, p.SpecialInstructions, p.Status, p.AssignedDriver,
		p.PickupDate, p.PickupTime, notes, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateID
		}
		return err
	}
	return nil
}

func (s *Store) GetPickup(ctx context.Context, id string) (models.PickupRequest, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+pickupColumns+` FROM pickup_requests WHERE id = $1`, id)
	return scanPickup(row)
}

// PickupFilter narrows the admin list. DateFilter accepts the UI values
// "Today" and "This Week" against the preferred pickup date.
type PickupFilter struct {
	Status     string
	DateFilter string
	Page       int
	Limit      int
}

func (s *Store) ListPickups(ctx context.Context, f PickupFilter) ([]models.PickupRequest, int, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Page <= 0 {
		f.Page = 1
	}

	var args []any
	var wheres []string
	if f.Status != "" && f.Status != "All" {
		args = append(args, f.Status)
		wheres = append(wheres, fmt.Sprintf("status = $%d", len(args)))
	}
	switch f.DateFilter {
	case "Today":
		args = append(args, time.Now().UTC().Format("2006-01-02"))
		wheres = append(wheres, fmt.Sprintf("preferred_date = $%d", len(args)))
	case "This Week":
		start := startOfWeek(time.Now().UTC())
		args = append(args, start.Format("2006-01-02"))
		wheres = append(wheres, fmt.Sprintf("preferred_date >= $%d", len(args)))
		args = append(args, start.AddDate(0, 0, 6).Format("2006-01-02"))
		wheres = append(wheres, fmt.Sprintf("preferred_date <= $%d", len(args)))
	}

	where := ""
	if len(wheres) > 0 {
		where = " WHERE " + strings.Join(wheres, " AND ")
	}

	var total int
	if err := s.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM pickup_requests`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + pickupColumns + ` FROM pickup_requests` + where +
		" ORDER BY created_at DESC LIMIT $" + fmt.Sprint(len(args)+1) + " OFFSET $" + fmt.Sprint(len(args)+2)
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.PickupRequest
	for rows.Next() {
		p, err := scanPickup(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

// PickupStatusUpdate carries the mutable fields of a status transition.
// Driver, date and time only apply when the new status is Confirmed.
type PickupStatusUpdate struct {
	Status         models.PickupStatus
	Note           string
	AssignedDriver *string
	PickupDate     *string
	PickupTime     *string
}

func (s *Store) UpdatePickupStatus(ctx context.Context, id string, u PickupStatusUpdate) (bool, error) {
	found := false
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		var notesRaw []byte
		err := tx.QueryRow(ctx, `SELECT notes FROM pickup_requests WHERE id = $1 FOR UPDATE`, id).Scan(&notesRaw)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true

		var notes []models.PickupNote
		if err := json.Unmarshal(notesRaw, &notes); err != nil {
			notes = nil
		}
		if u.Note != "" {
			notes = append(notes, models.PickupNote{
				Text:      u.Note,
				Status:    u.Status,
				Timestamp: time.Now().UTC(),
			})
		}
		merged, err := json.Marshal(notes)
		if err != nil {
			return err
		}

		if u.Status == models.PickupConfirmed {
			_, err = tx.Exec(ctx, `
				UPDATE pickup_requests
				SET status = $1, notes = $2, assigned_driver = $3, pickup_date = $4, pickup_time = $5, updated_at = NOW()
				WHERE id = $6
			`, u.Status, merged, u.AssignedDriver, u.PickupDate, u.PickupTime, id)
			return err
		}
		_, err = tx.Exec(ctx, `
			UPDATE pickup_requests SET status = $1, notes = $2, updated_at = NOW() WHERE id = $3
		`, u.Status, merged, id)
		return err
	})
	return found, err
}

func (s *Store) SearchPickups(ctx context.Context, term string, limit int) ([]models.PickupRequest, error) {
	if limit <= 0 || limit > 20 {
		limit = 20
	}
	pattern := "%" + term + "%"
	rows, err := s.Pool.Query(ctx, `
		SELECT `+pickupColumns+` FROM pickup_requests
		WHERE name ILIKE $1 OR phone ILIKE $1 OR address ILIKE $1 OR id ILIKE $1
		ORDER BY created_at DESC LIMIT $2
	`, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PickupRequest
	for rows.Next() {
		p, err := scanPickup(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// PickupStatistics recomputes every aggregate from the stored rows.
func (s *Store) PickupStatistics(ctx context.Context) (models.PickupStats, error) {
	var stats models.PickupStats

	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)
	week := startOfWeek(now)

	err := s.Pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'Pending'),
			COUNT(*) FILTER (WHERE status = 'Confirmed'),
			COUNT(*) FILTER (WHERE status = 'In Progress'),
			COUNT(*) FILTER (WHERE status = 'Completed'),
			COUNT(*) FILTER (WHERE status = 'Cancelled'),
			COUNT(*) FILTER (WHERE created_at >= $1),
			COUNT(*) FILTER (WHERE created_at >= $2)
		FROM pickup_requests
	`, today, week).Scan(
		&stats.TotalRequests,
		&stats.StatusCounts.Pending,
		&stats.StatusCounts.Confirmed,
		&stats.StatusCounts.InProgress,
		&stats.StatusCounts.Completed,
		&stats.StatusCounts.Cancelled,
		&stats.TimeBased.Today,
		&stats.TimeBased.ThisWeek,
	)
	if err != nil {
		return stats, err
	}

	rows, err := s.Pool.Query(ctx, `
		SELECT m, COUNT(*) FROM pickup_requests, unnest(materials) AS m
		GROUP BY m ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return stats, err
	}
	defer rows.Close()
	for rows.Next() {
		var mc models.MaterialCount
		if err := rows.Scan(&mc.Material, &mc.Count); err != nil {
			return stats, err
		}
		stats.MaterialDistribution = append(stats.MaterialDistribution, mc)
	}
	return stats, rows.Err()
}

func startOfWeek(t time.Time) time.Time {
	day := t.Truncate(24 * time.Hour)
	// Monday-based week, matching the dashboard's bucketing.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func scanPickup(row complaintScanner) (models.PickupRequest, error) {
	var p models.PickupRequest
	var notesRaw []byte
	err := row.Scan(&p.ID, &p.Name, &p.Phone, &p.Email, &p.Address, &p.Latitude, &p.Longitude,
		&p.Materials, &p.Quantity, &p.PreferredDate, &p.PreferredTime, &p.SpecialInstructions,
		&p.Status, &p.AssignedDriver, &p.PickupDate, &p.PickupTime, &notesRaw, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.PickupRequest{}, err
	}
	p.Notes = []models.PickupNote{}
	if len(notesRaw) > 0 {
		_ = json.Unmarshal(notesRaw, &p.Notes)
	}
	return p, nil
}
