package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/schooldesk/api/internal/app/models"
	"github.com/schooldesk/api/internal/app/models/dto"
	"github.com/schooldesk/api/internal/app/repositories"
	"github.com/schooldesk/api/internal/pkg/apperrors"
	"github.com/schooldesk/api/internal/pkg/export"
	"github.com/schooldesk/api/internal/pkg/finance"
)

// SchoolName appears on printed receipts and enrollment forms.
const SchoolName = "St. Peter's College"

// PaymentService implements the payment ledger: recording, editing and
// deleting payments, each followed by a financial-summary recompute, plus
// the printable receipt and the CSV export.
type PaymentService struct {
	payments PaymentStore
	students *StudentService
	activity *ActivityService
	logoURL  string
}

// NewPaymentService creates a new payment service
func NewPaymentService(payments PaymentStore, students *StudentService, activity *ActivityService, logoURL string) *PaymentService {
	return &PaymentService{
		payments: payments,
		students: students,
		activity: activity,
		logoURL:  logoURL,
	}
}

// ListPayments returns a student's payment history, oldest first.
func (s *PaymentService) ListPayments(ctx context.Context, studentID int64) ([]*models.Payment, error) {
	if _, err := s.students.GetStudent(ctx, studentID); err != nil {
		return nil, err
	}
	return s.payments.ListByStudent(ctx, studentID)
}

// AddPayment records a payment. A completed payment reduces the stored
// balance; either way the financial summary is recomputed afterwards.
func (s *PaymentService) AddPayment(ctx context.Context, req dto.CreatePaymentRequest) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, apperrors.ErrInvalidPaymentAmount
	}

	student, err := s.students.GetStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		StudentID:   req.StudentID,
		Reference:   req.Reference,
		Amount:      req.Amount,
		PaymentType: req.PaymentType,
		Description: req.Description,
		Status:      req.Status,
		ProcessedBy: req.ProcessedBy,
		PaidAt:      time.Now().UTC(),
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		if errors.Is(err, repositories.ErrPaymentRefExists) {
			return nil, apperrors.ErrPaymentRefExists
		}
		return nil, err
	}

	if _, err := s.students.RecomputeSummary(ctx, req.StudentID); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "Payment recorded",
		fmt.Sprintf("%s paid %.2f (%s) for %s", payment.Reference, payment.Amount,
			payment.PaymentType, student.FullName()),
		payment.ProcessedBy, "", models.ActivityPayment)

	return payment, nil
}

// UpdatePayment edits an existing payment, addressed by its original
// receipt reference. The balance delta and the summary are re-applied.
func (s *PaymentService) UpdatePayment(ctx context.Context, studentID int64, reference string, req dto.UpdatePaymentRequest) (*models.Payment, error) {
	existing, err := s.payments.GetByReference(ctx, studentID, reference)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, err
	}

	updated := *existing
	if req.Reference != nil {
		updated.Reference = *req.Reference
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, apperrors.ErrInvalidPaymentAmount
		}
		updated.Amount = *req.Amount
	}
	if req.PaymentType != nil {
		updated.PaymentType = *req.PaymentType
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Status != nil {
		updated.Status = *req.Status
	}

	if err := s.payments.Update(ctx, studentID, reference, &updated); err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, err
	}

	if _, err := s.students.RecomputeSummary(ctx, studentID); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "Payment updated",
		fmt.Sprintf("%s now %.2f, %s", updated.Reference, updated.Amount, updated.Status),
		"", "", models.ActivityPayment)

	return &updated, nil
}

// DeletePayment removes a payment by its original reference. A completed
// payment's amount goes back onto the balance, then the summary is
// recomputed.
func (s *PaymentService) DeletePayment(ctx context.Context, studentID int64, reference string) (*models.Payment, error) {
	removed, err := s.payments.Delete(ctx, studentID, reference)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, err
	}

	if _, err := s.students.RecomputeSummary(ctx, studentID); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "Payment deleted",
		fmt.Sprintf("%s, %.2f reversed", removed.Reference, removed.Amount),
		"", "", models.ActivityPayment)

	return removed, nil
}

// Receipt assembles the printable receipt for one payment.
func (s *PaymentService) Receipt(ctx context.Context, studentID int64, reference string) ([]byte, error) {
	student, err := s.students.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	payment, err := s.payments.GetByReference(ctx, studentID, reference)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, err
	}

	course := ""
	if student.Enrollment != nil {
		course = student.Enrollment.Course
	}

	balance := student.Balance
	if student.FinancialSummary != nil {
		balance = student.FinancialSummary.RemainingBalance
	}

	return export.RenderReceipt(export.Receipt{
		SchoolName:  SchoolName,
		LogoURL:     s.logoURL,
		StudentNo:   student.StudentNo,
		StudentName: student.FullName(),
		Department:  string(student.Department),
		Course:      course,
		Reference:   payment.Reference,
		PaymentType: payment.PaymentType,
		Amount:      payment.Amount,
		Balance:     balance,
		ProcessedBy: payment.ProcessedBy,
		PaidAt:      payment.PaidAt,
	})
}

// ExportCSV renders the full payment ledger as a CSV download, one row
// per payment across every student.
func (s *PaymentService) ExportCSV(ctx context.Context) ([]byte, string, error) {
	students, err := s.students.students.GetAll(ctx)
	if err != nil {
		return nil, "", err
	}

	var rows [][]string
	for _, student := range students {
		payments, err := s.payments.ListByStudent(ctx, student.ID)
		if err != nil {
			return nil, "", err
		}

		remaining := 0.0
		if student.FinancialSummary != nil {
			remaining = student.FinancialSummary.RemainingBalance
		}

		for _, p := range payments {
			rows = append(rows, []string{
				student.StudentNo,
				student.FullName(),
				p.Reference,
				p.PaymentType,
				formatAmount(p.Amount),
				formatAmount(remaining),
				p.PaidAt.Format("2006-01-02"),
				p.ProcessedBy,
				p.Status,
			})
		}
	}

	return export.CSV(export.PaymentHeaders, rows), export.Filename("payments", time.Now()), nil
}

// PaymentEntries maps a payment history onto the calculator's input.
func PaymentEntries(payments []*models.Payment) []finance.PaymentEntry {
	entries := make([]finance.PaymentEntry, 0, len(payments))
	for _, p := range payments {
		entries = append(entries, finance.PaymentEntry{Amount: p.Amount, Status: p.Status})
	}
	return entries
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
