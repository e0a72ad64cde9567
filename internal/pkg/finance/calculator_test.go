package finance

import (
	"testing"
)

var collegeRates = Rates{
	PerUnit:         365,
	MiscFee:         2500,
	LabFeePerUnit:   150,
	LibraryFee:      500,
	AthleticFee:     200,
	MedicalFee:      300,
	RegistrationFee: 1000,
}

func TestComputeSummaryNotEnrolled(t *testing.T) {
	payments := []PaymentEntry{
		{Amount: 5000, Status: PaymentCompleted},
		{Amount: 1200, Status: PaymentPending},
		{Amount: 800, Status: PaymentCompleted},
	}

	s := ComputeSummary(Enrollment{Enrolled: false, TotalUnits: 24}, collegeRates, payments)

	if s.TotalAmountDue != 0 {
		t.Errorf("TotalAmountDue = %v, want 0", s.TotalAmountDue)
	}
	if s.RemainingBalance != 0 {
		t.Errorf("RemainingBalance = %v, want 0", s.RemainingBalance)
	}
	if s.TotalPaid != 5800 {
		t.Errorf("TotalPaid = %v, want 5800 (completed entries only)", s.TotalPaid)
	}
	if Classify(s) != AccountNotEnrolled {
		t.Errorf("Classify() = %v, want %v", Classify(s), AccountNotEnrolled)
	}
}

func TestComputeSummaryPerUnitTuition(t *testing.T) {
	tests := []struct {
		name        string
		units       int
		wantTuition float64
	}{
		{name: "24 units", units: 24, wantTuition: 8760},
		{name: "zero units", units: 0, wantTuition: 0},
		{name: "one unit", units: 1, wantTuition: 365},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ComputeSummary(Enrollment{Enrolled: true, TotalUnits: tt.units}, collegeRates, nil)
			if s.TotalTuition != tt.wantTuition {
				t.Errorf("TotalTuition = %v, want %v", s.TotalTuition, tt.wantTuition)
			}
		})
	}
}

func TestComputeSummaryFixedTuition(t *testing.T) {
	rates := Rates{FixedFee: 9000, FixedTuition: true, MiscFee: 1500}

	// Unit counts must not change fixed-fee tuition.
	for _, units := range []int{0, 12, 24, 30} {
		s := ComputeSummary(Enrollment{Enrolled: true, TotalUnits: units, LabUnits: units / 2}, rates, nil)
		if s.TotalTuition != 9000 {
			t.Errorf("units=%d: TotalTuition = %v, want 9000", units, s.TotalTuition)
		}
		if s.TotalFees != 10500 {
			t.Errorf("units=%d: TotalFees = %v, want 10500 (no lab fee for fixed departments)", units, s.TotalFees)
		}
	}
}

func TestComputeSummaryWorkedScenario(t *testing.T) {
	// 24 units at 365/unit with the full surcharge set and one completed
	// payment of 5000.
	enr := Enrollment{Enrolled: true, TotalUnits: 24}
	payments := []PaymentEntry{{Amount: 5000, Status: PaymentCompleted}}

	s := ComputeSummary(enr, collegeRates, payments)

	if s.TotalTuition != 8760 {
		t.Fatalf("TotalTuition = %v, want 8760", s.TotalTuition)
	}
	if s.TotalFees != 13260 {
		t.Fatalf("TotalFees = %v, want 13260", s.TotalFees)
	}
	if s.TotalAmountDue != 13260 {
		t.Fatalf("TotalAmountDue = %v, want 13260", s.TotalAmountDue)
	}
	if want := s.TotalAmountDue - 5000; s.RemainingBalance != want {
		t.Fatalf("RemainingBalance = %v, want %v", s.RemainingBalance, want)
	}
	if Classify(s) != AccountPartial {
		t.Fatalf("Classify() = %v, want %v", Classify(s), AccountPartial)
	}
}

func TestComputeSummaryLabUnits(t *testing.T) {
	enr := Enrollment{Enrolled: true, TotalUnits: 18, LabUnits: 6}
	s := ComputeSummary(enr, collegeRates, nil)

	wantTuition := 18.0 * 365
	wantFees := wantTuition + 2500 + 6*150 + 500 + 200 + 300 + 1000
	if s.TotalTuition != wantTuition {
		t.Errorf("TotalTuition = %v, want %v", s.TotalTuition, wantTuition)
	}
	if s.TotalFees != wantFees {
		t.Errorf("TotalFees = %v, want %v", s.TotalFees, wantFees)
	}
}

func TestComputeSummaryNeverNegative(t *testing.T) {
	tests := []struct {
		name     string
		enr      Enrollment
		payments []PaymentEntry
	}{
		{
			name: "discount exceeds fees",
			enr:  Enrollment{Enrolled: true, TotalUnits: 3, Discount: 100000},
		},
		{
			name:     "overpayment",
			enr:      Enrollment{Enrolled: true, TotalUnits: 24},
			payments: []PaymentEntry{{Amount: 999999, Status: PaymentCompleted}},
		},
		{
			name: "not enrolled with payments",
			enr:  Enrollment{Enrolled: false},
			payments: []PaymentEntry{
				{Amount: 5000, Status: PaymentCompleted},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ComputeSummary(tt.enr, collegeRates, tt.payments)
			if s.TotalAmountDue < 0 {
				t.Errorf("TotalAmountDue = %v, want >= 0", s.TotalAmountDue)
			}
			if s.RemainingBalance < 0 {
				t.Errorf("RemainingBalance = %v, want >= 0", s.RemainingBalance)
			}
		})
	}
}

func TestComputeSummaryIdempotent(t *testing.T) {
	enr := Enrollment{Enrolled: true, TotalUnits: 21, LabUnits: 3, Discount: 500}
	payments := []PaymentEntry{
		{Amount: 2500, Status: PaymentCompleted},
		{Amount: 700, Status: PaymentPending},
	}

	first := ComputeSummary(enr, collegeRates, payments)
	second := ComputeSummary(enr, collegeRates, payments)
	if first != second {
		t.Errorf("recomputation changed result: first=%+v second=%+v", first, second)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		s    Summary
		want AccountStatus
	}{
		{name: "no dues", s: Summary{}, want: AccountNotEnrolled},
		{name: "fully paid", s: Summary{TotalAmountDue: 5000, TotalPaid: 5000}, want: AccountPaid},
		{name: "partially paid", s: Summary{TotalAmountDue: 5000, TotalPaid: 2000, RemainingBalance: 3000}, want: AccountPartial},
		{name: "nothing paid", s: Summary{TotalAmountDue: 5000, RemainingBalance: 5000}, want: AccountOverdue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.s); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}
