package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/schooldesk/api/internal/app/models"
	"github.com/schooldesk/api/internal/app/models/dto"
	"github.com/schooldesk/api/internal/app/repositories"
	"github.com/schooldesk/api/internal/pkg/apperrors"
	"github.com/schooldesk/api/internal/pkg/finance"
	"github.com/schooldesk/api/internal/pkg/listview"
	"github.com/schooldesk/api/internal/pkg/validation"
)

// StudentService implements student record management: registration,
// profile updates, term enrollment and the derived financial summary.
type StudentService struct {
	students StudentStore
	payments PaymentStore
	subjects SubjectStore
	fees     FeeScheduleStore
	activity *ActivityService
}

// NewStudentService creates a new student service
func NewStudentService(
	students StudentStore,
	payments PaymentStore,
	subjects SubjectStore,
	fees FeeScheduleStore,
	activity *ActivityService,
) *StudentService {
	return &StudentService{
		students: students,
		payments: payments,
		subjects: subjects,
		fees:     fees,
		activity: activity,
	}
}

// studentView is the list schema for the student table.
var studentView = listview.View[*models.Student]{
	Fields: map[string]listview.Field[*models.Student]{
		"studentNo": {Kind: listview.Text, Value: func(s *models.Student) string { return s.StudentNo }},
		"name":      {Kind: listview.Text, Value: func(s *models.Student) string { return s.FullName() }},
		"department": {Kind: listview.Text, Value: func(s *models.Student) string {
			return string(s.Department)
		}},
		"status": {Kind: listview.Text, Value: func(s *models.Student) string { return s.Status }},
		"course": {Kind: listview.Text, Value: func(s *models.Student) string {
			if s.Enrollment == nil {
				return ""
			}
			return s.Enrollment.Course
		}},
		"yearLevel": {Kind: listview.Text, Value: func(s *models.Student) string {
			if s.Enrollment == nil {
				return ""
			}
			return s.Enrollment.YearLevel
		}},
		"balance": {Kind: listview.Numeric, Value: func(s *models.Student) string {
			return strconv.FormatFloat(s.Balance, 'f', -1, 64)
		}},
		"createdAt": {Kind: listview.Date, Value: func(s *models.Student) string {
			return s.CreatedAt.Format(time.RFC3339)
		}},
	},
	SearchKeys: []string{"studentNo", "name"},
}

// ListStudents returns one page of the student table.
func (s *StudentService) ListStudents(ctx context.Context, q dto.StudentListQuery) (listview.Page[*models.Student], error) {
	students, err := s.students.GetAll(ctx)
	if err != nil {
		return listview.Page[*models.Student]{}, err
	}

	return studentView.Apply(students, listview.Query{
		Search: q.Search,
		Filters: map[string]string{
			"department": q.Department,
			"status":     q.Status,
			"course":     q.Course,
			"yearLevel":  q.YearLevel,
		},
		SortKey:  q.SortKey,
		SortDesc: q.SortDesc,
		Page:     q.Page,
		PageSize: q.PageSize,
	}), nil
}

// CreateStudent registers a new student record.
func (s *StudentService) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	if !validation.CompiledPatterns.StudentNo.MatchString(req.StudentNo) {
		return nil, apperrors.ErrInvalidStudentNo
	}

	department := models.Department(req.Department)
	if !department.Valid() {
		return nil, apperrors.ErrInvalidDepartment
	}

	exists, err := s.students.ExistsByStudentNo(ctx, req.StudentNo)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrStudentNoAlreadyExists
	}

	student := &models.Student{
		StudentNo:  req.StudentNo,
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		Department: department,
		Status:     "Active",
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "Student created",
		fmt.Sprintf("%s (%s)", student.FullName(), student.StudentNo),
		"", "", models.ActivityStudent)

	return student, nil
}

// GetStudent retrieves one student by ID.
func (s *StudentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

// UpdateStudent patches the profile fields of an existing student.
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.MiddleName != nil {
		student.MiddleName = *req.MiddleName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.Address != nil {
		student.Address = *req.Address
	}
	if req.Department != nil {
		department := models.Department(*req.Department)
		if !department.Valid() {
			return nil, apperrors.ErrInvalidDepartment
		}
		student.Department = department
	}
	if req.Status != nil {
		student.Status = *req.Status
	}

	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "Student updated",
		fmt.Sprintf("%s (%s)", student.FullName(), student.StudentNo),
		"", "", models.ActivityStudent)

	return student, nil
}

// DeleteStudent removes one student record with its payment history.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	student, err := s.GetStudent(ctx, id)
	if err != nil {
		return err
	}

	if err := s.students.Delete(ctx, id); err != nil {
		return err
	}

	s.activity.Record(ctx, "Student deleted",
		fmt.Sprintf("%s (%s)", student.FullName(), student.StudentNo),
		"", "", models.ActivityStudent)

	return nil
}

// DeleteStudents removes a batch of student records. Returns how many
// were deleted.
func (s *StudentService) DeleteStudents(ctx context.Context, ids []int64) (int64, error) {
	deleted, err := s.students.DeleteMany(ctx, ids)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		s.activity.Record(ctx, "Students deleted",
			fmt.Sprintf("%d record(s) removed", deleted),
			"", "", models.ActivityStudent)
	}

	return deleted, nil
}

// EnrollStudent registers the student into a term. The previous term, if
// any, is snapshotted onto the subject history first. The course load
// comes from the matching curriculum record unless the request carries a
// customized load.
func (s *StudentService) EnrollStudent(ctx context.Context, id int64, req dto.EnrollStudentRequest) (*models.Student, error) {
	if !validation.CompiledPatterns.SchoolYear.MatchString(req.SchoolYear) {
		return nil, apperrors.NewBadRequestError("school year must look like 2026-2027")
	}

	student, err := s.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	load := req.Subjects
	if len(load) == 0 {
		subject, err := s.subjects.FindByOffering(ctx, req.Course, req.YearLevel, req.Semester)
		if err != nil {
			if errors.Is(err, repositories.ErrSubjectNotFound) {
				return nil, apperrors.NewResourceNotFoundError("no curriculum record for this course, year level and semester")
			}
			return nil, err
		}
		load = subject.Terms.LoadFor(req.Semester)
	}

	if student.Enrolled() {
		student.SubjectHistory = append(student.SubjectHistory, models.TermSnapshot{
			Semester:   student.Enrollment.Semester,
			SchoolYear: student.Enrollment.SchoolYear,
			Course:     student.Enrollment.Course,
			YearLevel:  student.Enrollment.YearLevel,
			Subjects:   s.termLoad(ctx, student),
		})
	}

	totalUnits, labUnits := countUnits(load)
	student.Enrollment = &models.Enrollment{
		Course:     req.Course,
		YearLevel:  req.YearLevel,
		Semester:   req.Semester,
		SchoolYear: req.SchoolYear,
		TotalUnits: totalUnits,
		LabUnits:   labUnits,
		Discount:   req.Discount,
	}
	if len(req.Subjects) > 0 {
		student.CustomizedSubjects = req.Subjects
	} else {
		student.CustomizedSubjects = nil
	}

	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}

	if _, err := s.RecomputeSummary(ctx, student.ID); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "Student enrolled",
		fmt.Sprintf("%s into %s %s, %s %s", student.FullName(),
			req.Course, req.YearLevel, req.Semester, req.SchoolYear),
		"", "", models.ActivityEnrollment)

	return s.GetStudent(ctx, student.ID)
}

// RecomputeSummary derives and persists the student's financial summary
// from the current fee schedule and payment history. LastUpdated carries
// the server-side UTC time of this computation, and the stored balance
// is settled at the recomputed remaining amount due.
func (s *StudentService) RecomputeSummary(ctx context.Context, id int64) (finance.Summary, error) {
	student, err := s.GetStudent(ctx, id)
	if err != nil {
		return finance.Summary{}, err
	}

	rates, err := s.ratesFor(ctx, student.Department)
	if err != nil {
		return finance.Summary{}, err
	}

	payments, err := s.payments.ListByStudent(ctx, id)
	if err != nil {
		return finance.Summary{}, err
	}

	summary := finance.ComputeSummary(student.FinanceEnrollment(), rates, PaymentEntries(payments))
	summary.LastUpdated = time.Now().UTC()

	if err := s.students.SetFinancialSummary(ctx, id, summary); err != nil {
		return finance.Summary{}, err
	}

	return summary, nil
}

// RecomputeAllSummaries refreshes every student's financial summary.
// Used by the periodic refresher; individual failures are collected into
// a single error after the full pass.
func (s *StudentService) RecomputeAllSummaries(ctx context.Context) error {
	students, err := s.students.GetAll(ctx)
	if err != nil {
		return err
	}

	var failed int
	for _, student := range students {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := s.RecomputeSummary(ctx, student.ID); err != nil {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d summaries failed to refresh", failed, len(students))
	}
	return nil
}

// AccountStatus classifies a student for the list's status column.
func (s *StudentService) AccountStatus(student *models.Student) finance.AccountStatus {
	if student.FinancialSummary == nil {
		return finance.AccountNotEnrolled
	}
	return finance.Classify(*student.FinancialSummary)
}

// ratesFor resolves the calculator rates for a department, falling back
// to the hard-coded defaults when the fee structure has no row yet.
func (s *StudentService) ratesFor(ctx context.Context, department models.Department) (finance.Rates, error) {
	schedule, err := s.fees.GetByDepartment(ctx, department)
	if err != nil {
		if errors.Is(err, repositories.ErrFeeScheduleNotFound) {
			for _, d := range models.DefaultFeeSchedules() {
				if d.Department == department {
					return d.Rates(), nil
				}
			}
			return finance.Rates{}, apperrors.ErrFeeScheduleNotFound
		}
		return finance.Rates{}, err
	}
	return schedule.Rates(), nil
}

// termLoad resolves the course load of the student's active term: the
// customized load when present, else the curriculum load for the term's
// offering. A term whose curriculum record has since disappeared yields
// an empty load.
func (s *StudentService) termLoad(ctx context.Context, student *models.Student) []models.CourseLoadRow {
	if len(student.CustomizedSubjects) > 0 {
		return student.CustomizedSubjects
	}

	enr := student.Enrollment
	subject, err := s.subjects.FindByOffering(ctx, enr.Course, enr.YearLevel, enr.Semester)
	if err != nil {
		return nil
	}
	return subject.Terms.LoadFor(enr.Semester)
}

func countUnits(load []models.CourseLoadRow) (total, lab int) {
	var units, labUnits float64
	for _, row := range load {
		units += row.Units
		if row.LabHours > 0 {
			labUnits += row.Units
		}
	}
	return int(math.Round(units)), int(math.Round(labUnits))
}
