package models

import (
	"time"

	"github.com/schooldesk/api/internal/pkg/finance"
)

// FeeSchedule is one department's row of the fee structure. Exactly one
// of PerUnit and FixedFee is meaningful, selected by the department kind.
type FeeSchedule struct {
	Department      Department `json:"department" db:"department"`
	PerUnit         float64    `json:"perUnit" db:"per_unit"`
	FixedFee        float64    `json:"fixedFee" db:"fixed_fee"`
	MiscFee         float64    `json:"miscFee" db:"misc_fee"`
	LabFeePerUnit   float64    `json:"labFeePerUnit" db:"lab_fee_per_unit"`
	LibraryFee      float64    `json:"libraryFee" db:"library_fee"`
	AthleticFee     float64    `json:"athleticFee" db:"athletic_fee"`
	MedicalFee      float64    `json:"medicalFee" db:"medical_fee"`
	RegistrationFee float64    `json:"registrationFee" db:"registration_fee"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
}

// Rates maps the schedule onto the fee calculator's input.
func (f FeeSchedule) Rates() finance.Rates {
	return finance.Rates{
		PerUnit:         f.PerUnit,
		FixedFee:        f.FixedFee,
		FixedTuition:    f.Department.FixedTuition(),
		MiscFee:         f.MiscFee,
		LabFeePerUnit:   f.LabFeePerUnit,
		LibraryFee:      f.LibraryFee,
		AthleticFee:     f.AthleticFee,
		MedicalFee:      f.MedicalFee,
		RegistrationFee: f.RegistrationFee,
	}
}

// DefaultFeeSchedules are the hard-coded defaults used to initialize the
// fee structure on first read and by the reset-to-defaults operation.
func DefaultFeeSchedules() []FeeSchedule {
	return []FeeSchedule{
		{
			Department:      DepartmentCollege,
			PerUnit:         365,
			MiscFee:         2500,
			LabFeePerUnit:   150,
			LibraryFee:      500,
			AthleticFee:     200,
			MedicalFee:      300,
			RegistrationFee: 1000,
		},
		{
			Department:      DepartmentTVET,
			PerUnit:         300,
			MiscFee:         2000,
			LabFeePerUnit:   200,
			LibraryFee:      400,
			AthleticFee:     150,
			MedicalFee:      250,
			RegistrationFee: 800,
		},
		{
			Department:      DepartmentSHS,
			FixedFee:        9000,
			MiscFee:         1500,
			LibraryFee:      300,
			AthleticFee:     150,
			MedicalFee:      200,
			RegistrationFee: 500,
		},
		{
			Department:      DepartmentJHS,
			FixedFee:        7500,
			MiscFee:         1200,
			LibraryFee:      250,
			AthleticFee:     100,
			MedicalFee:      200,
			RegistrationFee: 500,
		},
	}
}
