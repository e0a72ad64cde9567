package services

import (
	"context"
	"errors"
	"time"

	"github.com/schooldesk/api/internal/app/models"
	"github.com/schooldesk/api/internal/app/models/dto"
	"github.com/schooldesk/api/internal/app/repositories"
	"github.com/schooldesk/api/internal/pkg/apperrors"
)

// calendarDate is the wire format of calendar dates.
const calendarDate = "2006-01-02"

// AnnouncementService implements the announcement calendar.
type AnnouncementService struct {
	announcements AnnouncementStore
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(announcements AnnouncementStore) *AnnouncementService {
	return &AnnouncementService{
		announcements: announcements,
	}
}

// ListRange returns the announcements dated inside [from, to].
func (s *AnnouncementService) ListRange(ctx context.Context, q dto.AnnouncementRangeQuery) ([]*models.Announcement, error) {
	from, err := time.Parse(calendarDate, q.From)
	if err != nil {
		return nil, apperrors.NewBadRequestError("from must look like 2026-09-01")
	}
	to, err := time.Parse(calendarDate, q.To)
	if err != nil {
		return nil, apperrors.NewBadRequestError("to must look like 2026-09-30")
	}
	if to.Before(from) {
		return nil, apperrors.NewBadRequestError("to must not precede from")
	}

	return s.announcements.ListRange(ctx, from, to)
}

// Create posts a calendar announcement.
func (s *AnnouncementService) Create(ctx context.Context, req dto.CreateAnnouncementRequest, createdBy string) (*models.Announcement, error) {
	date, err := time.Parse(calendarDate, req.Date)
	if err != nil {
		return nil, apperrors.NewBadRequestError("date must look like 2026-09-01")
	}

	audience := req.Audience
	if audience == "" {
		audience = "all"
	}

	announcement := &models.Announcement{
		Title:     req.Title,
		Body:      req.Body,
		Date:      date,
		Audience:  audience,
		CreatedBy: createdBy,
	}

	if err := s.announcements.Create(ctx, announcement); err != nil {
		return nil, err
	}

	return announcement, nil
}

// Get retrieves one announcement by ID.
func (s *AnnouncementService) Get(ctx context.Context, id int64) (*models.Announcement, error) {
	announcement, err := s.announcements.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAnnouncementNotFound) {
			return nil, apperrors.ErrAnnouncementNotFound
		}
		return nil, err
	}
	return announcement, nil
}

// Update patches an announcement.
func (s *AnnouncementService) Update(ctx context.Context, id int64, req dto.UpdateAnnouncementRequest) (*models.Announcement, error) {
	announcement, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		announcement.Title = *req.Title
	}
	if req.Body != nil {
		announcement.Body = *req.Body
	}
	if req.Date != nil {
		date, err := time.Parse(calendarDate, *req.Date)
		if err != nil {
			return nil, apperrors.NewBadRequestError("date must look like 2026-09-01")
		}
		announcement.Date = date
	}
	if req.Audience != nil {
		announcement.Audience = *req.Audience
	}

	if err := s.announcements.Update(ctx, announcement); err != nil {
		if errors.Is(err, repositories.ErrAnnouncementNotFound) {
			return nil, apperrors.ErrAnnouncementNotFound
		}
		return nil, err
	}

	return announcement, nil
}

// Delete removes an announcement.
func (s *AnnouncementService) Delete(ctx context.Context, id int64) error {
	if err := s.announcements.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrAnnouncementNotFound) {
			return apperrors.ErrAnnouncementNotFound
		}
		return err
	}
	return nil
}
