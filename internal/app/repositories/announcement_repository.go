package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schooldesk/api/internal/app/models"
)

// Announcement error types
var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
)

const announcementColumns = `
	id, title, body, date, audience, created_by, created_at, updated_at`

// AnnouncementRepository handles database operations for the calendar
type AnnouncementRepository struct {
	db *pgxpool.Pool
}

// NewAnnouncementRepository creates a new announcement repository
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{
		db: db,
	}
}

// Create creates a new announcement
func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	query := `
		INSERT INTO announcements (title, body, date, audience, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		announcement.Title, announcement.Body, announcement.Date,
		announcement.Audience, announcement.CreatedBy,
	).Scan(&announcement.ID, &announcement.CreatedAt, &announcement.UpdatedAt)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves an announcement by ID
func (r *AnnouncementRepository) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id = $1`

	var a models.Announcement
	err := scanAnnouncement(r.db.QueryRow(ctx, query, id), &a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("error retrieving announcement: %w", err)
	}

	return &a, nil
}

// ListRange retrieves announcements dated within [from, to], in date order
func (r *AnnouncementRepository) ListRange(ctx context.Context, from, to time.Time) ([]*models.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE date >= $1 AND date <= $2 ORDER BY date, id`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var announcements []*models.Announcement
	for rows.Next() {
		var a models.Announcement
		if err := scanAnnouncement(rows, &a); err != nil {
			return nil, err
		}
		announcements = append(announcements, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return announcements, nil
}

// Update updates an existing announcement
func (r *AnnouncementRepository) Update(ctx context.Context, announcement *models.Announcement) error {
	query := `
		UPDATE announcements
		SET title = $1, body = $2, date = $3, audience = $4, updated_at = NOW()
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		announcement.Title, announcement.Body, announcement.Date,
		announcement.Audience, announcement.ID)
	if err != nil {
		return fmt.Errorf("error updating announcement: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrAnnouncementNotFound
	}

	return nil
}

// Delete deletes an announcement by ID
func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting announcement: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrAnnouncementNotFound
	}

	return nil
}

func scanAnnouncement(row rowScanner, a *models.Announcement) error {
	return row.Scan(
		&a.ID,
		&a.Title,
		&a.Body,
		&a.Date,
		&a.Audience,
		&a.CreatedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}
