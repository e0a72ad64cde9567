package models

import "time"

// Subject is a curriculum record based on the 'subjects' table. One record
// describes the standard course load for a course/year-level/semester.
type Subject struct {
	ID          int64     `json:"id" db:"id"`
	SubjectID   string    `json:"subjectId" db:"subject_id" example:"BSIT-1-1"`
	SubjectName string    `json:"subjectName" db:"subject_name"`
	Course      string    `json:"course" db:"course" example:"BSIT"`
	YearLevel   string    `json:"yearLevel" db:"year_level" example:"1st Year"`
	Semester    string    `json:"semester" db:"semester" example:"First Semester"`
	Status      string    `json:"status" db:"status" example:"Active"`
	Terms       Terms     `json:"terms" db:"terms"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Terms holds the two ordered course-load sequences of a subject record.
type Terms struct {
	FirstTerm  []CourseLoadRow `json:"firstTerm"`
	SecondTerm []CourseLoadRow `json:"secondTerm"`
}

// CourseLoadRow is one line of a term's course load.
type CourseLoadRow struct {
	Code         string  `json:"code" example:"IT101"`
	Description  string  `json:"description"`
	LectureHours float64 `json:"lectureHours"`
	LabHours     float64 `json:"labHours"`
	Units        float64 `json:"units"`
	Prerequisite string  `json:"prerequisite,omitempty"`
}

// LoadFor returns the course load for the given semester. Summer records
// reuse the first term as the summer load.
func (t Terms) LoadFor(semester string) []CourseLoadRow {
	if semester == SemesterSecond {
		return t.SecondTerm
	}
	return t.FirstTerm
}

// TotalUnits sums the units of both terms' rows.
func (t Terms) TotalUnits() float64 {
	var total float64
	for _, row := range t.FirstTerm {
		total += row.Units
	}
	for _, row := range t.SecondTerm {
		total += row.Units
	}
	return total
}
