package models

import "time"

// Activity type tags used by the dashboard feed filter.
const (
	ActivityUser       = "user"
	ActivityStudent    = "student"
	ActivitySubject    = "subject"
	ActivityEnrollment = "enrollment"
	ActivityPayment    = "payment"
	ActivityFee        = "fee"
)

// Activity is one immutable entry of the activity log, based on the
// 'activities' table. Entries are appended after successful business
// mutations and never modified.
type Activity struct {
	ID             int64     `json:"id" db:"id"`
	Action         string    `json:"action" db:"action" example:"Student created"`
	Details        string    `json:"details" db:"details"`
	PerformedBy    string    `json:"performedBy" db:"performed_by"`
	PerformedEmail string    `json:"performedByEmail" db:"performed_by_email"`
	Type           string    `json:"type" db:"type" example:"student"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"` // Server-assigned
}
