package services

import (
	"context"
	"errors"
	"time"

	"github.com/schooldesk/api/internal/app/repositories"
	"github.com/schooldesk/api/internal/pkg/apperrors"
	"github.com/schooldesk/api/internal/pkg/export"
)

// EnrollmentForm renders the printable enrollment form for a student's
// active term. The course load is the customized one when present, else
// the matching curriculum load.
func (s *StudentService) EnrollmentForm(ctx context.Context, id int64, logoURL string) ([]byte, error) {
	student, err := s.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	if !student.Enrolled() {
		return nil, apperrors.ErrStudentNotEnrolled
	}

	load := student.CustomizedSubjects
	if len(load) == 0 {
		subject, err := s.subjects.FindByOffering(ctx,
			student.Enrollment.Course, student.Enrollment.YearLevel, student.Enrollment.Semester)
		if err != nil && !errors.Is(err, repositories.ErrSubjectNotFound) {
			return nil, err
		}
		if subject != nil {
			load = subject.Terms.LoadFor(student.Enrollment.Semester)
		}
	}

	rows := make([]export.EnrollmentFormRow, 0, len(load))
	for _, row := range load {
		rows = append(rows, export.EnrollmentFormRow{
			Code:        row.Code,
			Description: row.Description,
			LectureHrs:  row.LectureHours,
			LabHrs:      row.LabHours,
			Units:       row.Units,
		})
	}

	return export.RenderEnrollmentForm(export.EnrollmentForm{
		SchoolName:  SchoolName,
		LogoURL:     logoURL,
		StudentNo:   student.StudentNo,
		StudentName: student.FullName(),
		Department:  string(student.Department),
		Course:      student.Enrollment.Course,
		YearLevel:   student.Enrollment.YearLevel,
		Semester:    student.Enrollment.Semester,
		SchoolYear:  student.Enrollment.SchoolYear,
		TotalUnits:  student.Enrollment.TotalUnits,
		Subjects:    rows,
		PrintedAt:   time.Now(),
	})
}
