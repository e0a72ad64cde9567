package services

import (
	"context"
	"fmt"

	"github.com/schooldesk/api/internal/app/models"
	"github.com/schooldesk/api/internal/app/models/dto"
	"github.com/schooldesk/api/internal/pkg/apperrors"
)

// FeeScheduleService implements the fee structure editor. The structure
// is read-or-create: the first read of an empty table writes the
// hard-coded defaults so the editor always has four department rows.
type FeeScheduleService struct {
	fees     FeeScheduleStore
	activity *ActivityService
}

// NewFeeScheduleService creates a new fee schedule service
func NewFeeScheduleService(fees FeeScheduleStore, activity *ActivityService) *FeeScheduleService {
	return &FeeScheduleService{
		fees:     fees,
		activity: activity,
	}
}

// GetSchedules returns every department's fee schedule, writing the
// defaults first when none exist yet.
func (s *FeeScheduleService) GetSchedules(ctx context.Context) ([]*models.FeeSchedule, error) {
	schedules, err := s.fees.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if len(schedules) == 0 {
		if err := s.fees.ReplaceAll(ctx, models.DefaultFeeSchedules()); err != nil {
			return nil, err
		}
		return s.fees.GetAll(ctx)
	}

	return schedules, nil
}

// UpdateDepartment replaces one department's fee schedule in full.
func (s *FeeScheduleService) UpdateDepartment(ctx context.Context, department models.Department, req dto.UpdateFeeScheduleRequest) (*models.FeeSchedule, error) {
	if !department.Valid() {
		return nil, apperrors.ErrInvalidDepartment
	}

	schedule := &models.FeeSchedule{
		Department:      department,
		PerUnit:         req.PerUnit,
		FixedFee:        req.FixedFee,
		MiscFee:         req.MiscFee,
		LabFeePerUnit:   req.LabFeePerUnit,
		LibraryFee:      req.LibraryFee,
		AthleticFee:     req.AthleticFee,
		MedicalFee:      req.MedicalFee,
		RegistrationFee: req.RegistrationFee,
	}

	if err := s.fees.ReplaceDepartment(ctx, schedule); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "Fee schedule updated",
		fmt.Sprintf("%s fees replaced", department),
		"", "", models.ActivityFee)

	return s.fees.GetByDepartment(ctx, department)
}

// ResetDefaults restores the hard-coded fee structure for every
// department.
func (s *FeeScheduleService) ResetDefaults(ctx context.Context) ([]*models.FeeSchedule, error) {
	if err := s.fees.ReplaceAll(ctx, models.DefaultFeeSchedules()); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "Fee schedule reset",
		"All departments restored to defaults", "", "", models.ActivityFee)

	return s.fees.GetAll(ctx)
}
