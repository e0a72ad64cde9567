package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/schooldesk/api/internal/app/models/dto"
	"github.com/schooldesk/api/internal/pkg/apperrors"
	"github.com/schooldesk/api/internal/pkg/finance"
)

func TestAddPaymentReducesRemainingBalance(t *testing.T) {
	f := newFixture()
	student := f.seedCollegeStudent(t)
	ctx := context.Background()

	_, err := f.paymentService.AddPayment(ctx, dto.CreatePaymentRequest{
		StudentID: student.ID, Reference: "OR-1001", Amount: 5000,
		PaymentType: "tuition", Status: finance.PaymentCompleted,
	})
	if err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}

	student, err = f.studentService.GetStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("GetStudent() error = %v", err)
	}
	s := student.FinancialSummary
	if s.TotalPaid != 5000 {
		t.Errorf("TotalPaid = %v, want 5000", s.TotalPaid)
	}
	if got, want := s.RemainingBalance, 9460.0; got != want {
		t.Errorf("RemainingBalance = %v, want %v", got, want)
	}
	if got, want := student.Balance, 9460.0; got != want {
		t.Errorf("stored balance = %v, want %v", got, want)
	}
}

func TestAddPaymentPendingDoesNotCount(t *testing.T) {
	f := newFixture()
	student := f.seedCollegeStudent(t)
	ctx := context.Background()

	_, err := f.paymentService.AddPayment(ctx, dto.CreatePaymentRequest{
		StudentID: student.ID, Reference: "OR-1002", Amount: 2000,
		PaymentType: "tuition", Status: finance.PaymentPending,
	})
	if err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}

	student, _ = f.studentService.GetStudent(ctx, student.ID)
	if student.FinancialSummary.TotalPaid != 0 {
		t.Errorf("TotalPaid = %v, want 0 for a pending payment", student.FinancialSummary.TotalPaid)
	}
	if got, want := student.Balance, 14460.0; got != want {
		t.Errorf("stored balance = %v, want the full amount due %v", got, want)
	}
}

func TestAddPaymentDuplicateReference(t *testing.T) {
	f := newFixture()
	student := f.seedCollegeStudent(t)
	ctx := context.Background()

	req := dto.CreatePaymentRequest{
		StudentID: student.ID, Reference: "OR-1003", Amount: 100,
		PaymentType: "misc", Status: finance.PaymentCompleted,
	}
	if _, err := f.paymentService.AddPayment(ctx, req); err != nil {
		t.Fatalf("first AddPayment() error = %v", err)
	}
	if _, err := f.paymentService.AddPayment(ctx, req); !errors.Is(err, apperrors.ErrPaymentRefExists) {
		t.Errorf("AddPayment() error = %v, want %v", err, apperrors.ErrPaymentRefExists)
	}
}

func TestDeletePaymentReversesItsEffect(t *testing.T) {
	f := newFixture()
	student := f.seedCollegeStudent(t)
	ctx := context.Background()

	for ref, amount := range map[string]float64{"OR-2001": 5000, "OR-2002": 1500} {
		_, err := f.paymentService.AddPayment(ctx, dto.CreatePaymentRequest{
			StudentID: student.ID, Reference: ref, Amount: amount,
			PaymentType: "tuition", Status: finance.PaymentCompleted,
		})
		if err != nil {
			t.Fatalf("AddPayment(%s) error = %v", ref, err)
		}
	}

	removed, err := f.paymentService.DeletePayment(ctx, student.ID, "OR-2002")
	if err != nil {
		t.Fatalf("DeletePayment() error = %v", err)
	}
	if removed.Amount != 1500 {
		t.Errorf("removed amount = %v, want 1500", removed.Amount)
	}

	student, _ = f.studentService.GetStudent(ctx, student.ID)
	if got, want := student.FinancialSummary.TotalPaid, 5000.0; got != want {
		t.Errorf("TotalPaid after delete = %v, want %v", got, want)
	}
	if got, want := student.Balance, 9460.0; got != want {
		t.Errorf("stored balance after delete = %v, want %v", got, want)
	}

	// The deleted entry is gone from the history.
	payments, err := f.paymentService.ListPayments(ctx, student.ID)
	if err != nil {
		t.Fatalf("ListPayments() error = %v", err)
	}
	if len(payments) != 1 || payments[0].Reference != "OR-2001" {
		t.Errorf("history after delete = %v, want only OR-2001", payments)
	}
}

func TestUpdatePaymentLookedUpByOriginalReference(t *testing.T) {
	f := newFixture()
	student := f.seedCollegeStudent(t)
	ctx := context.Background()

	_, err := f.paymentService.AddPayment(ctx, dto.CreatePaymentRequest{
		StudentID: student.ID, Reference: "OR-3001", Amount: 1000,
		PaymentType: "tuition", Status: finance.PaymentCompleted,
	})
	if err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}

	// The edit renames the receipt and changes the amount; the lookup
	// must use the original reference.
	newRef := "OR-3001-A"
	newAmount := 2500.0
	updated, err := f.paymentService.UpdatePayment(ctx, student.ID, "OR-3001", dto.UpdatePaymentRequest{
		Reference: &newRef,
		Amount:    &newAmount,
	})
	if err != nil {
		t.Fatalf("UpdatePayment() error = %v", err)
	}
	if updated.Reference != newRef || updated.Amount != newAmount {
		t.Errorf("updated = %+v, want reference %s amount %v", updated, newRef, newAmount)
	}

	student, _ = f.studentService.GetStudent(ctx, student.ID)
	if got, want := student.Balance, 11960.0; got != want {
		t.Errorf("stored balance = %v, want %v", got, want)
	}
	if got, want := student.FinancialSummary.TotalPaid, 2500.0; got != want {
		t.Errorf("TotalPaid = %v, want %v", got, want)
	}

	// Old reference no longer resolves.
	if _, err := f.paymentService.UpdatePayment(ctx, student.ID, "OR-3001", dto.UpdatePaymentRequest{}); !errors.Is(err, apperrors.ErrPaymentNotFound) {
		t.Errorf("second update by stale reference error = %v, want %v", err, apperrors.ErrPaymentNotFound)
	}
}

func TestReceiptContainsPaymentDetails(t *testing.T) {
	f := newFixture()
	student := f.seedCollegeStudent(t)
	ctx := context.Background()

	_, err := f.paymentService.AddPayment(ctx, dto.CreatePaymentRequest{
		StudentID: student.ID, Reference: "OR-4001", Amount: 5000,
		PaymentType: "tuition", Status: finance.PaymentCompleted, ProcessedBy: "cashier@school.edu",
	})
	if err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}

	html, err := f.paymentService.Receipt(ctx, student.ID, "OR-4001")
	if err != nil {
		t.Fatalf("Receipt() error = %v", err)
	}
	// 14460 due less the 5000 payment leaves 9460 outstanding.
	for _, want := range []string{"OR-4001", "SPC25-0001", "Maria Dela Cruz", "PHP 5000.00", "PHP 9460.00"} {
		if !strings.Contains(string(html), want) {
			t.Errorf("receipt missing %q", want)
		}
	}
}

func TestExportCSVLedger(t *testing.T) {
	f := newFixture()
	student := f.seedCollegeStudent(t)
	ctx := context.Background()

	_, err := f.paymentService.AddPayment(ctx, dto.CreatePaymentRequest{
		StudentID: student.ID, Reference: "OR-5001", Amount: 1200.5,
		PaymentType: "misc", Status: finance.PaymentCompleted, ProcessedBy: "cashier@school.edu",
	})
	if err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}

	data, filename, err := f.paymentService.ExportCSV(ctx)
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("csv has %d lines, want header plus one row", len(lines))
	}
	wantHeader := `"Student ID","Student Name","OR Number","Payment Type","Amount Paid","Remaining Balance","Date Paid","Processed By","Status"`
	if lines[0] != wantHeader {
		t.Errorf("header = %s, want %s", lines[0], wantHeader)
	}
	if !strings.Contains(lines[1], `"OR-5001"`) || !strings.Contains(lines[1], `"1200.50"`) {
		t.Errorf("row = %s, want OR-5001 and 1200.50", lines[1])
	}
	if !strings.HasPrefix(filename, "payments_") || !strings.HasSuffix(filename, ".csv") {
		t.Errorf("filename = %s, want payments_<date>.csv", filename)
	}
}
