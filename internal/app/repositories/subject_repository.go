package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schooldesk/api/internal/app/models"
)

// Subject error types
var (
	ErrSubjectNotFound      = errors.New("subject not found")
	ErrSubjectAlreadyExists = errors.New("subject with this ID already exists")
)

const subjectColumns = `
	id, subject_id, subject_name, course, year_level, semester, status, terms,
	created_at, updated_at`

// SubjectRepository handles database operations for curriculum records
type SubjectRepository struct {
	db *pgxpool.Pool
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{
		db: db,
	}
}

// Create creates a new subject record
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM subjects WHERE subject_id = $1)`,
		subject.SubjectID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking subject existence: %w", err)
	}
	if exists {
		return ErrSubjectAlreadyExists
	}

	terms, err := json.Marshal(subject.Terms)
	if err != nil {
		return fmt.Errorf("error encoding terms: %w", err)
	}

	query := `
		INSERT INTO subjects (subject_id, subject_name, course, year_level, semester, status, terms)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRow(ctx, query,
		subject.SubjectID, subject.SubjectName, subject.Course, subject.YearLevel,
		subject.Semester, subject.Status, terms,
	).Scan(&subject.ID, &subject.CreatedAt, &subject.UpdatedAt)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a subject by ID
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE id = $1`

	subject, err := scanSubject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}

	return subject, nil
}

// GetAll retrieves all subject records
func (r *SubjectRepository) GetAll(ctx context.Context) ([]*models.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects ORDER BY course, year_level, semester`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subjects, nil
}

// FindByOffering retrieves the curriculum record for a course/year/semester
func (r *SubjectRepository) FindByOffering(ctx context.Context, course, yearLevel, semester string) (*models.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE course = $1 AND year_level = $2 AND semester = $3`

	subject, err := scanSubject(r.db.QueryRow(ctx, query, course, yearLevel, semester))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}

	return subject, nil
}

// Update updates an existing subject record
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM subjects WHERE subject_id = $1 AND id != $2)`,
		subject.SubjectID, subject.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking subject uniqueness: %w", err)
	}
	if exists {
		return ErrSubjectAlreadyExists
	}

	terms, err := json.Marshal(subject.Terms)
	if err != nil {
		return fmt.Errorf("error encoding terms: %w", err)
	}

	query := `
		UPDATE subjects
		SET subject_id = $1, subject_name = $2, course = $3, year_level = $4,
			semester = $5, status = $6, terms = $7, updated_at = NOW()
		WHERE id = $8
	`

	cmdTag, err := r.db.Exec(ctx, query,
		subject.SubjectID, subject.SubjectName, subject.Course, subject.YearLevel,
		subject.Semester, subject.Status, terms, subject.ID)
	if err != nil {
		return fmt.Errorf("error updating subject: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrSubjectNotFound
	}

	return nil
}

// Delete deletes a subject by ID
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting subject: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrSubjectNotFound
	}

	return nil
}

func scanSubject(row rowScanner) (*models.Subject, error) {
	var (
		subject models.Subject
		terms   []byte
	)

	if err := row.Scan(
		&subject.ID,
		&subject.SubjectID,
		&subject.SubjectName,
		&subject.Course,
		&subject.YearLevel,
		&subject.Semester,
		&subject.Status,
		&terms,
		&subject.CreatedAt,
		&subject.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(terms) > 0 {
		if err := json.Unmarshal(terms, &subject.Terms); err != nil {
			return nil, fmt.Errorf("error decoding terms: %w", err)
		}
	}

	return &subject, nil
}
