package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schooldesk/api/internal/app/models"
	"github.com/schooldesk/api/internal/pkg/finance"
)

// Student error types
var (
	ErrStudentNotFound        = errors.New("student not found")
	ErrStudentNoAlreadyExists = errors.New("student number already exists")
)

const studentColumns = `
	id, student_no, first_name, middle_name, last_name, email, phone, address,
	department, status, balance, enrollment, customized_subjects,
	subject_history, financial_summary, created_at, updated_at`

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create creates a new student record
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	enrollment, custom, history, summary, err := marshalStudentDocs(student)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO students (
			student_no, first_name, middle_name, last_name, email, phone, address,
			department, status, balance, enrollment, customized_subjects,
			subject_history, financial_summary
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRow(ctx, query,
		student.StudentNo, student.FirstName, student.MiddleName, student.LastName,
		student.Email, student.Phone, student.Address, student.Department,
		student.Status, student.Balance, enrollment, custom, history, summary,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByStudentNo retrieves a student by the school-issued student number
func (r *StudentRepository) GetByStudentNo(ctx context.Context, studentNo string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE student_no = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, studentNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetAll retrieves the full student collection ordered by creation time
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// ExistsByStudentNo checks if a student exists with the given number
func (r *StudentRepository) ExistsByStudentNo(ctx context.Context, studentNo string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE student_no = $1)`,
		studentNo).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}

	return exists, nil
}

// Update replaces the mutable fields of an existing student
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	enrollment, custom, history, summary, err := marshalStudentDocs(student)
	if err != nil {
		return err
	}

	query := `
		UPDATE students
		SET first_name = $1, middle_name = $2, last_name = $3, email = $4,
			phone = $5, address = $6, department = $7, status = $8, balance = $9,
			enrollment = $10, customized_subjects = $11, subject_history = $12,
			financial_summary = $13, updated_at = NOW()
		WHERE id = $14
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.FirstName, student.MiddleName, student.LastName, student.Email,
		student.Phone, student.Address, student.Department, student.Status,
		student.Balance, enrollment, custom, history, summary, student.ID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}

	return nil
}

// SetFinancialSummary persists a freshly computed summary. The summary is
// always overwritten; LastUpdated carries the server-side UTC timestamp.
func (r *StudentRepository) SetFinancialSummary(ctx context.Context, id int64, summary finance.Summary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("error encoding financial summary: %w", err)
	}

	// The stored balance mirrors the recomputed remaining balance so the
	// list column and printed documents read one consistent figure.
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE students SET financial_summary = $1, balance = $2, updated_at = NOW() WHERE id = $3`,
		data, summary.RemainingBalance, id)
	if err != nil {
		return fmt.Errorf("error persisting financial summary: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}

	return nil
}

// Delete deletes a student by ID along with their payment history
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}

	return nil
}

// DeleteMany deletes a batch of students and returns how many were removed
func (r *StudentRepository) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("error deleting students: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// rowScanner lets the scan helper work for both QueryRow and Query rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (*models.Student, error) {
	var (
		student    models.Student
		enrollment []byte
		custom     []byte
		history    []byte
		summary    []byte
	)

	if err := row.Scan(
		&student.ID,
		&student.StudentNo,
		&student.FirstName,
		&student.MiddleName,
		&student.LastName,
		&student.Email,
		&student.Phone,
		&student.Address,
		&student.Department,
		&student.Status,
		&student.Balance,
		&enrollment,
		&custom,
		&history,
		&summary,
		&student.CreatedAt,
		&student.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(enrollment) > 0 {
		student.Enrollment = &models.Enrollment{}
		if err := json.Unmarshal(enrollment, student.Enrollment); err != nil {
			return nil, fmt.Errorf("error decoding enrollment: %w", err)
		}
	}
	if len(custom) > 0 {
		if err := json.Unmarshal(custom, &student.CustomizedSubjects); err != nil {
			return nil, fmt.Errorf("error decoding customized subjects: %w", err)
		}
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &student.SubjectHistory); err != nil {
			return nil, fmt.Errorf("error decoding subject history: %w", err)
		}
	}
	if len(summary) > 0 {
		student.FinancialSummary = &finance.Summary{}
		if err := json.Unmarshal(summary, student.FinancialSummary); err != nil {
			return nil, fmt.Errorf("error decoding financial summary: %w", err)
		}
	}

	return &student, nil
}

// marshalStudentDocs encodes the optional document-valued fields; absent
// fields are stored as SQL NULL, not empty JSON.
func marshalStudentDocs(student *models.Student) (enrollment, custom, history, summary []byte, err error) {
	if student.Enrollment != nil {
		if enrollment, err = json.Marshal(student.Enrollment); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("error encoding enrollment: %w", err)
		}
	}
	if len(student.CustomizedSubjects) > 0 {
		if custom, err = json.Marshal(student.CustomizedSubjects); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("error encoding customized subjects: %w", err)
		}
	}
	if len(student.SubjectHistory) > 0 {
		if history, err = json.Marshal(student.SubjectHistory); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("error encoding subject history: %w", err)
		}
	}
	if student.FinancialSummary != nil {
		if summary, err = json.Marshal(student.FinancialSummary); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("error encoding financial summary: %w", err)
		}
	}
	return enrollment, custom, history, summary, nil
}
