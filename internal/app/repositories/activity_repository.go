package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schooldesk/api/internal/app/models"
)

// ActivityRepository handles database operations for the activity log.
// Entries are append-only; there is no update or delete.
type ActivityRepository struct {
	db *pgxpool.Pool
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{
		db: db,
	}
}

// Create appends one activity entry. The timestamp is server assigned.
func (r *ActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	query := `
		INSERT INTO activities (action, details, performed_by, performed_by_email, type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		activity.Action, activity.Details, activity.PerformedBy,
		activity.PerformedEmail, activity.Type,
	).Scan(&activity.ID, &activity.CreatedAt)
	if err != nil {
		return fmt.Errorf("error recording activity: %w", err)
	}

	return nil
}

// List retrieves a page of activities, newest first, optionally filtered
// by type tag.
func (r *ActivityRepository) List(ctx context.Context, typeTag string, limit, offset int) ([]*models.Activity, error) {
	query := `
		SELECT id, action, details, performed_by, performed_by_email, type, created_at
		FROM activities
		WHERE ($1 = '' OR type = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, typeTag, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(
			&a.ID, &a.Action, &a.Details, &a.PerformedBy,
			&a.PerformedEmail, &a.Type, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		activities = append(activities, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return activities, nil
}

// Count returns the number of activities matching the type filter
func (r *ActivityRepository) Count(ctx context.Context, typeTag string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM activities WHERE ($1 = '' OR type = $1)`,
		typeTag).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting activities: %w", err)
	}
	return count, nil
}
