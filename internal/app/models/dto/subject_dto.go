package dto

import (
	"github.com/schooldesk/api/internal/app/models"
)

// CreateSubjectRequest represents a request to create a curriculum offering
type CreateSubjectRequest struct {
	Course     string       `json:"course" binding:"required" example:"BS Information Technology"`
	YearLevel  string       `json:"yearLevel" binding:"required" example:"1st Year"`
	Semester   string       `json:"semester" binding:"required" example:"First Semester"`
	SchoolYear string       `json:"schoolYear" binding:"required" example:"2026-2027"`
	Terms      models.Terms `json:"terms"`
}

// UpdateSubjectRequest represents a request to update a curriculum offering
type UpdateSubjectRequest struct {
	Course     *string       `json:"course,omitempty"`
	YearLevel  *string       `json:"yearLevel,omitempty"`
	Semester   *string       `json:"semester,omitempty"`
	SchoolYear *string       `json:"schoolYear,omitempty"`
	Terms      *models.Terms `json:"terms,omitempty"`
}

// SubjectListQuery captures list parameters for curriculum offerings
type SubjectListQuery struct {
	Search   string `form:"search"`
	Course   string `form:"course"`
	Semester string `form:"semester"`
	SortKey  string `form:"sortKey"`
	SortDesc bool   `form:"sortDesc"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"pageSize,default=10"`
}
