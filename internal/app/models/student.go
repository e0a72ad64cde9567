package models

import (
	"strings"
	"time"

	"github.com/schooldesk/api/internal/pkg/finance"
)

// NotEnrolledCourse is the sentinel the registrar UI writes when a student
// record exists without an active enrollment.
const NotEnrolledCourse = "Not enrolled"

// Student defines the student model based on the 'students' table.
type Student struct {
	ID         int64      `json:"id" db:"id" example:"1"`
	StudentNo  string     `json:"studentNo" db:"student_no" example:"SPC25-0001"` // School-issued student number
	FirstName  string     `json:"firstName" db:"first_name" example:"Ana"`
	MiddleName string     `json:"middleName,omitempty" db:"middle_name"`
	LastName   string     `json:"lastName" db:"last_name" example:"Reyes"`
	Email      string     `json:"email,omitempty" db:"email"`
	Phone      string     `json:"phone,omitempty" db:"phone"`
	Address    string     `json:"address,omitempty" db:"address"`
	Department Department `json:"department" db:"department" example:"college"`
	Status     string     `json:"status" db:"status" example:"Active"` // Free-text record status
	Balance    float64    `json:"balance" db:"balance"`

	// Enrollment is absent when the student is not enrolled this term.
	Enrollment *Enrollment `json:"enrollment,omitempty"`

	// CustomizedSubjects overrides the standard curriculum for this
	// student when present.
	CustomizedSubjects []CourseLoadRow `json:"customizedSubjects,omitempty"`

	// SubjectHistory holds past-term snapshots, newest last.
	SubjectHistory []TermSnapshot `json:"subjectHistory,omitempty"`

	// FinancialSummary is the last persisted computation; nil until the
	// first recompute.
	FinancialSummary *finance.Summary `json:"financialSummary,omitempty"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Enrollment is the current-term registration of a student.
type Enrollment struct {
	Course     string  `json:"course" example:"BSIT"`
	YearLevel  string  `json:"yearLevel" example:"1st Year"`
	Semester   string  `json:"semester" example:"First Semester"`
	SchoolYear string  `json:"schoolYear" example:"2025-2026"`
	TotalUnits int     `json:"totalUnits"`
	LabUnits   int     `json:"labUnits"`
	Discount   float64 `json:"discount"`
}

// TermSnapshot preserves one past term's course load.
type TermSnapshot struct {
	Semester   string          `json:"semester"`
	SchoolYear string          `json:"schoolYear"`
	Course     string          `json:"course"`
	YearLevel  string          `json:"yearLevel"`
	Subjects   []CourseLoadRow `json:"subjects,omitempty"`
}

// FullName joins the student's name parts for display and search.
func (s *Student) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.FirstName, s.MiddleName, s.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Enrolled reports whether the student has an active enrollment. A
// missing enrollment, an empty course, and the explicit "Not enrolled"
// sentinel all count as not enrolled.
func (s *Student) Enrolled() bool {
	return s.Enrollment != nil &&
		s.Enrollment.Course != "" &&
		s.Enrollment.Course != NotEnrolledCourse
}

// FinanceEnrollment maps the student onto the calculator's input.
func (s *Student) FinanceEnrollment() finance.Enrollment {
	if !s.Enrolled() {
		return finance.Enrollment{}
	}
	return finance.Enrollment{
		Enrolled:   true,
		TotalUnits: s.Enrollment.TotalUnits,
		LabUnits:   s.Enrollment.LabUnits,
		Discount:   s.Enrollment.Discount,
	}
}
