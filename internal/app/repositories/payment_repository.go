package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schooldesk/api/internal/app/models"
	"github.com/schooldesk/api/internal/pkg/dberrors"
	"github.com/schooldesk/api/internal/pkg/finance"
)

// Payment error types
var (
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrPaymentRefExists = errors.New("payment reference already exists")
)

const paymentColumns = `
	id, student_id, reference, amount, payment_type, description, status,
	processed_by, paid_at, created_at`

// PaymentRepository handles database operations for payment history.
// Writes that touch the student balance run inside a transaction so the
// balance and the history entry can never diverge.
type PaymentRepository struct {
	db *pgxpool.Pool
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{
		db: db,
	}
}

// ListByStudent retrieves a student's payment history, oldest first
func (r *PaymentRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE student_id = $1 ORDER BY paid_at, id`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		var p models.Payment
		if err := scanPayment(rows, &p); err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}

// GetByReference retrieves one payment by its official receipt number
func (r *PaymentRepository) GetByReference(ctx context.Context, studentID int64, reference string) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE student_id = $1 AND reference = $2`

	var p models.Payment
	err := scanPayment(r.db.QueryRow(ctx, query, studentID, reference), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("error retrieving payment: %w", err)
	}

	return &p, nil
}

// Create inserts a payment entry. A completed payment reduces the
// student's balance in the same transaction.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM payments WHERE student_id = $1 AND reference = $2)`,
		payment.StudentID, payment.Reference).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking payment reference: %w", err)
	}
	if exists {
		return ErrPaymentRefExists
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO payments (student_id, reference, amount, payment_type, description, status, processed_by, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		payment.StudentID, payment.Reference, payment.Amount, payment.PaymentType,
		payment.Description, payment.Status, payment.ProcessedBy, payment.PaidAt,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		// The existence check above can race a concurrent insert
		if dberrors.IsDuplicateConstraintError(err, "payments_student_id_reference_key") {
			return ErrPaymentRefExists
		}
		return fmt.Errorf("error creating payment: %w", err)
	}

	if payment.Status == finance.PaymentCompleted {
		if err := adjustBalance(ctx, tx, payment.StudentID, -payment.Amount); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Update patches an existing payment entry, looked up by its original
// reference, and re-applies its balance effect when amount or status
// changed.
func (r *PaymentRepository) Update(ctx context.Context, studentID int64, reference string, payment *models.Payment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	existing, err := lockPayment(ctx, tx, studentID, reference)
	if err != nil {
		return err
	}

	cmdTag, err := tx.Exec(ctx, `
		UPDATE payments
		SET reference = $1, amount = $2, payment_type = $3, description = $4,
			status = $5, processed_by = $6, paid_at = $7
		WHERE id = $8`,
		payment.Reference, payment.Amount, payment.PaymentType, payment.Description,
		payment.Status, payment.ProcessedBy, payment.PaidAt, existing.ID)
	if err != nil {
		return fmt.Errorf("error updating payment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}

	// Reverse the old effect, apply the new one.
	var delta float64
	if existing.Status == finance.PaymentCompleted {
		delta += existing.Amount
	}
	if payment.Status == finance.PaymentCompleted {
		delta -= payment.Amount
	}
	if delta != 0 {
		if err := adjustBalance(ctx, tx, studentID, delta); err != nil {
			return err
		}
	}

	payment.ID = existing.ID
	payment.StudentID = studentID
	payment.CreatedAt = existing.CreatedAt

	return tx.Commit(ctx)
}

// Delete removes a payment entry by its original reference and adds the
// deleted amount back onto the student's balance in the same transaction.
// Returns the removed entry.
func (r *PaymentRepository) Delete(ctx context.Context, studentID int64, reference string) (*models.Payment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	existing, err := lockPayment(ctx, tx, studentID, reference)
	if err != nil {
		return nil, err
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM payments WHERE id = $1`, existing.ID)
	if err != nil {
		return nil, fmt.Errorf("error deleting payment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, ErrPaymentNotFound
	}

	if existing.Status == finance.PaymentCompleted {
		if err := adjustBalance(ctx, tx, studentID, existing.Amount); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return existing, nil
}

// lockPayment reads and row-locks one payment inside a transaction
func lockPayment(ctx context.Context, tx pgx.Tx, studentID int64, reference string) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE student_id = $1 AND reference = $2 FOR UPDATE`

	var p models.Payment
	err := scanPayment(tx.QueryRow(ctx, query, studentID, reference), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("error locking payment: %w", err)
	}

	return &p, nil
}

func adjustBalance(ctx context.Context, tx pgx.Tx, studentID int64, delta float64) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE students SET balance = balance + $1, updated_at = NOW() WHERE id = $2`,
		delta, studentID)
	if err != nil {
		return fmt.Errorf("error adjusting student balance: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}
	return nil
}

func scanPayment(row rowScanner, p *models.Payment) error {
	return row.Scan(
		&p.ID,
		&p.StudentID,
		&p.Reference,
		&p.Amount,
		&p.PaymentType,
		&p.Description,
		&p.Status,
		&p.ProcessedBy,
		&p.PaidAt,
		&p.CreatedAt,
	)
}
