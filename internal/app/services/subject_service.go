package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/schooldesk/api/internal/app/models"
	"github.com/schooldesk/api/internal/app/models/dto"
	"github.com/schooldesk/api/internal/app/repositories"
	"github.com/schooldesk/api/internal/pkg/apperrors"
	"github.com/schooldesk/api/internal/pkg/export"
	"github.com/schooldesk/api/internal/pkg/listview"
	"github.com/schooldesk/api/internal/pkg/validation"
)

// SubjectService implements curriculum management. One record carries
// the standard course load for a course, year level and semester; summer
// offerings reuse the first term's load.
type SubjectService struct {
	subjects SubjectStore
	activity *ActivityService
}

// NewSubjectService creates a new subject service
func NewSubjectService(subjects SubjectStore, activity *ActivityService) *SubjectService {
	return &SubjectService{
		subjects: subjects,
		activity: activity,
	}
}

var subjectView = listview.View[*models.Subject]{
	Fields: map[string]listview.Field[*models.Subject]{
		"subjectId": {Kind: listview.Text, Value: func(s *models.Subject) string { return s.SubjectID }},
		"name":      {Kind: listview.Text, Value: func(s *models.Subject) string { return s.SubjectName }},
		"course":    {Kind: listview.Text, Value: func(s *models.Subject) string { return s.Course }},
		"yearLevel": {Kind: listview.Text, Value: func(s *models.Subject) string { return s.YearLevel }},
		"semester":  {Kind: listview.Text, Value: func(s *models.Subject) string { return s.Semester }},
		"status":    {Kind: listview.Text, Value: func(s *models.Subject) string { return s.Status }},
		"units": {Kind: listview.Numeric, Value: func(s *models.Subject) string {
			return strconv.FormatFloat(s.Terms.TotalUnits(), 'f', -1, 64)
		}},
		"createdAt": {Kind: listview.Date, Value: func(s *models.Subject) string {
			return s.CreatedAt.Format(time.RFC3339)
		}},
	},
	SearchKeys: []string{"subjectId", "name", "course"},
}

// ListSubjects returns one page of the curriculum table.
func (s *SubjectService) ListSubjects(ctx context.Context, q dto.SubjectListQuery) (listview.Page[*models.Subject], error) {
	subjects, err := s.subjects.GetAll(ctx)
	if err != nil {
		return listview.Page[*models.Subject]{}, err
	}

	return subjectView.Apply(subjects, listview.Query{
		Search: q.Search,
		Filters: map[string]string{
			"course":   q.Course,
			"semester": q.Semester,
		},
		SortKey:  q.SortKey,
		SortDesc: q.SortDesc,
		Page:     q.Page,
		PageSize: q.PageSize,
	}), nil
}

// CreateSubject creates a curriculum record. The offering (course, year
// level, semester) must be unique.
func (s *SubjectService) CreateSubject(ctx context.Context, req dto.CreateSubjectRequest) (*models.Subject, error) {
	if !validation.CompiledPatterns.SchoolYear.MatchString(req.SchoolYear) {
		return nil, apperrors.NewBadRequestError("school year must look like 2026-2027")
	}

	if _, err := s.subjects.FindByOffering(ctx, req.Course, req.YearLevel, req.Semester); err == nil {
		return nil, apperrors.ErrSubjectAlreadyExists
	} else if !errors.Is(err, repositories.ErrSubjectNotFound) {
		return nil, err
	}

	subject := &models.Subject{
		SubjectID:   offeringID(req.Course, req.YearLevel, req.Semester),
		SubjectName: fmt.Sprintf("%s %s, %s", req.Course, req.YearLevel, req.Semester),
		Course:      req.Course,
		YearLevel:   req.YearLevel,
		Semester:    req.Semester,
		Status:      "Active",
		Terms:       req.Terms,
	}

	if err := s.subjects.Create(ctx, subject); err != nil {
		if errors.Is(err, repositories.ErrSubjectAlreadyExists) {
			return nil, apperrors.ErrSubjectAlreadyExists
		}
		return nil, err
	}

	s.activity.Record(ctx, "Subject created", subject.SubjectName,
		"", "", models.ActivitySubject)

	return subject, nil
}

// GetSubject retrieves one curriculum record by ID.
func (s *SubjectService) GetSubject(ctx context.Context, id int64) (*models.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSubjectNotFound) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, err
	}
	return subject, nil
}

// UpdateSubject patches a curriculum record.
func (s *SubjectService) UpdateSubject(ctx context.Context, id int64, req dto.UpdateSubjectRequest) (*models.Subject, error) {
	subject, err := s.GetSubject(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Course != nil {
		subject.Course = *req.Course
	}
	if req.YearLevel != nil {
		subject.YearLevel = *req.YearLevel
	}
	if req.Semester != nil {
		subject.Semester = *req.Semester
	}
	if req.Terms != nil {
		subject.Terms = *req.Terms
	}

	if req.Course != nil || req.YearLevel != nil || req.Semester != nil {
		existing, err := s.subjects.FindByOffering(ctx, subject.Course, subject.YearLevel, subject.Semester)
		if err == nil && existing.ID != subject.ID {
			return nil, apperrors.ErrSubjectAlreadyExists
		} else if err != nil && !errors.Is(err, repositories.ErrSubjectNotFound) {
			return nil, err
		}
		subject.SubjectID = offeringID(subject.Course, subject.YearLevel, subject.Semester)
		subject.SubjectName = fmt.Sprintf("%s %s, %s", subject.Course, subject.YearLevel, subject.Semester)
	}

	if err := s.subjects.Update(ctx, subject); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "Subject updated", subject.SubjectName,
		"", "", models.ActivitySubject)

	return subject, nil
}

// DeleteSubject removes a curriculum record.
func (s *SubjectService) DeleteSubject(ctx context.Context, id int64) error {
	subject, err := s.GetSubject(ctx, id)
	if err != nil {
		return err
	}

	if err := s.subjects.Delete(ctx, id); err != nil {
		return err
	}

	s.activity.Record(ctx, "Subject deleted", subject.SubjectName,
		"", "", models.ActivitySubject)

	return nil
}

// ExportCSV renders the curriculum collection as a CSV download.
func (s *SubjectService) ExportCSV(ctx context.Context) ([]byte, string, error) {
	subjects, err := s.subjects.GetAll(ctx)
	if err != nil {
		return nil, "", err
	}

	var rows [][]string
	for _, subject := range subjects {
		rows = append(rows, []string{
			subject.SubjectID,
			subject.SubjectName,
			subject.Course,
			subject.YearLevel,
			subject.Semester,
			subject.Status,
		})
	}

	return export.CSV(export.SubjectHeaders, rows), export.Filename("subjects", time.Now()), nil
}

// offeringID derives a stable identifier from the offering key, e.g.
// "BSIT-1ST-YEAR-FIRST-SEMESTER".
func offeringID(course, yearLevel, semester string) string {
	slug := func(s string) string {
		return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "-"))
	}
	return slug(course) + "-" + slug(yearLevel) + "-" + slug(semester)
}
