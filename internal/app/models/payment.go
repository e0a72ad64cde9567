package models

import "time"

// Payment is one entry in a student's payment history, based on the
// 'payments' table. History is append-only from the UI's perspective;
// an explicit delete also reverses the entry's effect on the balance.
type Payment struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   int64     `json:"studentId" db:"student_id"`
	Reference   string    `json:"reference" db:"reference" example:"OR-2025-0001"` // Official receipt number
	Amount      float64   `json:"amount" db:"amount"`
	PaymentType string    `json:"paymentType" db:"payment_type" example:"Tuition"`
	Description string    `json:"description,omitempty" db:"description"`
	Status      string    `json:"status" db:"status" example:"completed"`
	ProcessedBy string    `json:"processedBy" db:"processed_by"`
	PaidAt      time.Time `json:"paidAt" db:"paid_at"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
