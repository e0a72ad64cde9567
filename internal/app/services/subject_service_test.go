package services

import (
	"context"
	"errors"
	"testing"

	"github.com/schooldesk/api/internal/app/models"
	"github.com/schooldesk/api/internal/app/models/dto"
	"github.com/schooldesk/api/internal/pkg/apperrors"
)

func newSubjectFixture() (*fakeSubjectStore, *SubjectService) {
	store := newFakeSubjectStore()
	return store, NewSubjectService(store, NewActivityService(&fakeActivityStore{}))
}

func sampleTerms() models.Terms {
	return models.Terms{
		FirstTerm: []models.CourseLoadRow{
			{Code: "IT101", Description: "Intro to Computing", LectureHours: 3, Units: 3},
			{Code: "IT102", Description: "Programming 1", LectureHours: 2, LabHours: 3, Units: 3},
		},
		SecondTerm: []models.CourseLoadRow{
			{Code: "IT103", Description: "Programming 2", LectureHours: 2, LabHours: 3, Units: 3},
		},
	}
}

func TestCreateSubjectUniqueOffering(t *testing.T) {
	_, svc := newSubjectFixture()
	ctx := context.Background()

	req := dto.CreateSubjectRequest{
		Course: "BSIT", YearLevel: "1st Year", Semester: models.SemesterFirst,
		SchoolYear: "2026-2027", Terms: sampleTerms(),
	}

	created, err := svc.CreateSubject(ctx, req)
	if err != nil {
		t.Fatalf("CreateSubject() error = %v", err)
	}
	if created.SubjectID != "BSIT-1ST-YEAR-FIRST-SEMESTER" {
		t.Errorf("SubjectID = %s, want BSIT-1ST-YEAR-FIRST-SEMESTER", created.SubjectID)
	}

	if _, err := svc.CreateSubject(ctx, req); !errors.Is(err, apperrors.ErrSubjectAlreadyExists) {
		t.Errorf("duplicate CreateSubject() error = %v, want %v", err, apperrors.ErrSubjectAlreadyExists)
	}
}

func TestSummerReusesFirstTermLoad(t *testing.T) {
	terms := sampleTerms()

	tests := []struct {
		semester string
		wantLen  int
		wantCode string
	}{
		{models.SemesterFirst, 2, "IT101"},
		{models.SemesterSecond, 1, "IT103"},
		{models.SemesterSummer, 2, "IT101"},
	}

	for _, tt := range tests {
		t.Run(tt.semester, func(t *testing.T) {
			load := terms.LoadFor(tt.semester)
			if len(load) != tt.wantLen {
				t.Fatalf("load length = %d, want %d", len(load), tt.wantLen)
			}
			if load[0].Code != tt.wantCode {
				t.Errorf("first code = %s, want %s", load[0].Code, tt.wantCode)
			}
		})
	}
}

func TestUpdateSubjectRekeysOffering(t *testing.T) {
	_, svc := newSubjectFixture()
	ctx := context.Background()

	created, err := svc.CreateSubject(ctx, dto.CreateSubjectRequest{
		Course: "BSIT", YearLevel: "1st Year", Semester: models.SemesterFirst,
		SchoolYear: "2026-2027", Terms: sampleTerms(),
	})
	if err != nil {
		t.Fatalf("CreateSubject() error = %v", err)
	}

	semester := models.SemesterSecond
	updated, err := svc.UpdateSubject(ctx, created.ID, dto.UpdateSubjectRequest{Semester: &semester})
	if err != nil {
		t.Fatalf("UpdateSubject() error = %v", err)
	}
	if updated.SubjectID != "BSIT-1ST-YEAR-SECOND-SEMESTER" {
		t.Errorf("SubjectID = %s, want rekeyed to second semester", updated.SubjectID)
	}
}

func TestDeleteSubject(t *testing.T) {
	_, svc := newSubjectFixture()
	ctx := context.Background()

	created, err := svc.CreateSubject(ctx, dto.CreateSubjectRequest{
		Course: "BSIT", YearLevel: "2nd Year", Semester: models.SemesterFirst,
		SchoolYear: "2026-2027", Terms: sampleTerms(),
	})
	if err != nil {
		t.Fatalf("CreateSubject() error = %v", err)
	}

	if err := svc.DeleteSubject(ctx, created.ID); err != nil {
		t.Fatalf("DeleteSubject() error = %v", err)
	}
	if _, err := svc.GetSubject(ctx, created.ID); !errors.Is(err, apperrors.ErrSubjectNotFound) {
		t.Errorf("GetSubject() after delete error = %v, want %v", err, apperrors.ErrSubjectNotFound)
	}
}
