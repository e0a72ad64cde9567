package models

import "time"

// Announcement is a calendar entry based on the 'announcements' table.
type Announcement struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	Date      time.Time `json:"date" db:"date"`
	Audience  string    `json:"audience,omitempty" db:"audience" example:"all"`
	CreatedBy string    `json:"createdBy" db:"created_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
