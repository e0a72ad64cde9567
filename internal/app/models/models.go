package models

// Department is the fixed set of school departments. College and TVET
// charge tuition per enrolled unit; SHS and JHS charge a fixed fee.
type Department string

const (
	DepartmentCollege Department = "college"
	DepartmentTVET    Department = "tvet"
	DepartmentSHS     Department = "shs"
	DepartmentJHS     Department = "jhs"
)

// Departments lists every valid department in display order.
var Departments = []Department{
	DepartmentCollege,
	DepartmentTVET,
	DepartmentSHS,
	DepartmentJHS,
}

// Valid reports whether d is one of the known departments.
func (d Department) Valid() bool {
	switch d {
	case DepartmentCollege, DepartmentTVET, DepartmentSHS, DepartmentJHS:
		return true
	}
	return false
}

// FixedTuition reports whether the department charges a fixed fee rather
// than a per-unit rate.
func (d Department) FixedTuition() bool {
	return d == DepartmentSHS || d == DepartmentJHS
}

// Semester values used by enrollments and subject records.
const (
	SemesterFirst  = "First Semester"
	SemesterSecond = "Second Semester"
	SemesterSummer = "Summer"
)
