package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/schooldesk/api/internal/app/models"
	"github.com/schooldesk/api/internal/pkg/listview"
)

// ActivityService records and serves the activity log. Recording runs
// after the business mutation has committed; a logging failure is
// reported to the log stream and never propagated, so a broken audit
// trail cannot fail the mutation it describes.
type ActivityService struct {
	store ActivityStore
}

// NewActivityService creates a new activity service
func NewActivityService(store ActivityStore) *ActivityService {
	return &ActivityService{
		store: store,
	}
}

// Record appends one entry to the activity log. Errors are swallowed.
func (s *ActivityService) Record(ctx context.Context, action, details, performedBy, performedEmail, typeTag string) {
	activity := &models.Activity{
		Action:         action,
		Details:        details,
		PerformedBy:    performedBy,
		PerformedEmail: performedEmail,
		Type:           typeTag,
	}

	if err := s.store.Create(ctx, activity); err != nil {
		log.Error().Err(err).
			Str("action", action).
			Str("type", typeTag).
			Msg("Failed to record activity")
	}
}

// List returns one page of activities, newest first, optionally filtered
// by type tag.
func (s *ActivityService) List(ctx context.Context, typeTag string, page, pageSize int) ([]*models.Activity, listview.Pagination, error) {
	if page < 1 {
		page = listview.DefaultPage
	}
	if pageSize < 1 || pageSize > listview.MaxPageSize {
		pageSize = listview.DefaultPageSize
	}

	total, err := s.store.Count(ctx, typeTag)
	if err != nil {
		return nil, listview.Pagination{}, err
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	offset := (page - 1) * pageSize
	activities, err := s.store.List(ctx, typeTag, pageSize, offset)
	if err != nil {
		return nil, listview.Pagination{}, err
	}

	p := listview.Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    pageSize,
		TotalItems:  total,
		FirstIndex:  offset,
		LastIndex:   offset + len(activities),
		Window:      listview.Window(page, totalPages),
	}

	return activities, p, nil
}
