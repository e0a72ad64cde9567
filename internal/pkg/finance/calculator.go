package finance

import "time"

// PaymentStatus values a payment entry may carry. The set is open ended;
// only StatusCompleted counts toward the paid total.
const (
	PaymentCompleted = "completed"
	PaymentPending   = "pending"
)

// Account status derived from a computed summary.
type AccountStatus string

const (
	AccountNotEnrolled AccountStatus = "not-enrolled"
	AccountPaid        AccountStatus = "paid"
	AccountPartial     AccountStatus = "partial"
	AccountOverdue     AccountStatus = "overdue"
)

// Rates holds the fee schedule figures for a single department.
// FixedTuition selects between the fixed-fee model (SHS/JHS) and the
// per-unit model (college/TVET); only one of FixedFee and PerUnit is
// meaningful for a given department.
type Rates struct {
	PerUnit         float64
	FixedFee        float64
	FixedTuition    bool
	MiscFee         float64
	LabFeePerUnit   float64
	LibraryFee      float64
	AthleticFee     float64
	MedicalFee      float64
	RegistrationFee float64
}

// Enrollment is the slice of a student record the calculator needs.
type Enrollment struct {
	Enrolled   bool
	TotalUnits int
	LabUnits   int
	Discount   float64
}

// PaymentEntry is a single payment-history row as seen by the calculator.
type PaymentEntry struct {
	Amount float64
	Status string
}

// Summary is the derived financial summary for a student.
type Summary struct {
	TotalTuition     float64   `json:"totalTuition"`
	TotalFees        float64   `json:"totalFees"`
	TotalDiscount    float64   `json:"totalDiscount"`
	TotalAmountDue   float64   `json:"totalAmountDue"`
	TotalPaid        float64   `json:"totalPaid"`
	RemainingBalance float64   `json:"remainingBalance"`
	LastUpdated      time.Time `json:"lastUpdated"`
}

// ComputeSummary derives the financial summary for one student from their
// enrollment, the department fee schedule and the payment history. It is a
// pure function; callers decide whether to persist the result.
//
// A student without an active enrollment owes nothing, but the paid total
// still reflects completed payments.
func ComputeSummary(enr Enrollment, rates Rates, payments []PaymentEntry) Summary {
	var s Summary

	for _, p := range payments {
		if p.Status == PaymentCompleted {
			s.TotalPaid += p.Amount
		}
	}

	if !enr.Enrolled {
		return s
	}

	if rates.FixedTuition {
		s.TotalTuition = rates.FixedFee
	} else {
		s.TotalTuition = float64(enr.TotalUnits) * rates.PerUnit
	}

	labFee := 0.0
	if !rates.FixedTuition {
		labFee = float64(enr.LabUnits) * rates.LabFeePerUnit
	}

	s.TotalFees = s.TotalTuition +
		rates.MiscFee +
		labFee +
		rates.LibraryFee +
		rates.AthleticFee +
		rates.MedicalFee +
		rates.RegistrationFee

	s.TotalDiscount = enr.Discount

	s.TotalAmountDue = s.TotalFees - s.TotalDiscount
	if s.TotalAmountDue < 0 {
		s.TotalAmountDue = 0
	}

	s.RemainingBalance = s.TotalAmountDue - s.TotalPaid
	if s.RemainingBalance < 0 {
		s.RemainingBalance = 0
	}

	return s
}

// Classify maps a summary onto the account status shown in the student list.
func Classify(s Summary) AccountStatus {
	switch {
	case s.TotalAmountDue == 0:
		return AccountNotEnrolled
	case s.RemainingBalance == 0:
		return AccountPaid
	case s.RemainingBalance < s.TotalAmountDue:
		return AccountPartial
	default:
		return AccountOverdue
	}
}
