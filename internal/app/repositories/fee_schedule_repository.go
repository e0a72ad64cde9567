package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schooldesk/api/internal/app/models"
)

// Fee schedule error types
var (
	ErrFeeScheduleNotFound = errors.New("fee schedule not found for department")
)

const feeScheduleColumns = `
	department, per_unit, fixed_fee, misc_fee, lab_fee_per_unit, library_fee,
	athletic_fee, medical_fee, registration_fee, updated_at`

// FeeScheduleRepository handles database operations for the fee structure,
// one row per department.
type FeeScheduleRepository struct {
	db *pgxpool.Pool
}

// NewFeeScheduleRepository creates a new fee schedule repository
func NewFeeScheduleRepository(db *pgxpool.Pool) *FeeScheduleRepository {
	return &FeeScheduleRepository{
		db: db,
	}
}

// GetAll retrieves the fee schedule for every department
func (r *FeeScheduleRepository) GetAll(ctx context.Context) ([]*models.FeeSchedule, error) {
	query := `SELECT ` + feeScheduleColumns + ` FROM fee_schedules ORDER BY department`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []*models.FeeSchedule
	for rows.Next() {
		var s models.FeeSchedule
		if err := scanFeeSchedule(rows, &s); err != nil {
			return nil, err
		}
		schedules = append(schedules, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

// GetByDepartment retrieves one department's fee schedule
func (r *FeeScheduleRepository) GetByDepartment(ctx context.Context, department models.Department) (*models.FeeSchedule, error) {
	query := `SELECT ` + feeScheduleColumns + ` FROM fee_schedules WHERE department = $1`

	var s models.FeeSchedule
	err := scanFeeSchedule(r.db.QueryRow(ctx, query, department), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFeeScheduleNotFound
		}
		return nil, fmt.Errorf("error retrieving fee schedule: %w", err)
	}

	return &s, nil
}

// ReplaceDepartment persists a full replacement of one department's
// fee-schedule sub-record.
func (r *FeeScheduleRepository) ReplaceDepartment(ctx context.Context, schedule *models.FeeSchedule) error {
	query := `
		INSERT INTO fee_schedules (
			department, per_unit, fixed_fee, misc_fee, lab_fee_per_unit,
			library_fee, athletic_fee, medical_fee, registration_fee, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (department) DO UPDATE SET
			per_unit = EXCLUDED.per_unit,
			fixed_fee = EXCLUDED.fixed_fee,
			misc_fee = EXCLUDED.misc_fee,
			lab_fee_per_unit = EXCLUDED.lab_fee_per_unit,
			library_fee = EXCLUDED.library_fee,
			athletic_fee = EXCLUDED.athletic_fee,
			medical_fee = EXCLUDED.medical_fee,
			registration_fee = EXCLUDED.registration_fee,
			updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query,
		schedule.Department, schedule.PerUnit, schedule.FixedFee, schedule.MiscFee,
		schedule.LabFeePerUnit, schedule.LibraryFee, schedule.AthleticFee,
		schedule.MedicalFee, schedule.RegistrationFee)
	if err != nil {
		return fmt.Errorf("error replacing fee schedule: %w", err)
	}

	return nil
}

// ReplaceAll replaces every department's fee schedule in one transaction.
// Used by reset-to-defaults and by the read-or-create initialization.
func (r *FeeScheduleRepository) ReplaceAll(ctx context.Context, schedules []models.FeeSchedule) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM fee_schedules`); err != nil {
		return fmt.Errorf("error clearing fee schedules: %w", err)
	}

	for _, s := range schedules {
		_, err := tx.Exec(ctx, `
			INSERT INTO fee_schedules (
				department, per_unit, fixed_fee, misc_fee, lab_fee_per_unit,
				library_fee, athletic_fee, medical_fee, registration_fee, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())`,
			s.Department, s.PerUnit, s.FixedFee, s.MiscFee, s.LabFeePerUnit,
			s.LibraryFee, s.AthleticFee, s.MedicalFee, s.RegistrationFee)
		if err != nil {
			return fmt.Errorf("error writing fee schedule for %s: %w", s.Department, err)
		}
	}

	return tx.Commit(ctx)
}

func scanFeeSchedule(row rowScanner, s *models.FeeSchedule) error {
	return row.Scan(
		&s.Department,
		&s.PerUnit,
		&s.FixedFee,
		&s.MiscFee,
		&s.LabFeePerUnit,
		&s.LibraryFee,
		&s.AthleticFee,
		&s.MedicalFee,
		&s.RegistrationFee,
		&s.UpdatedAt,
	)
}
