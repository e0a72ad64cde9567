package dto

import (
	"github.com/schooldesk/api/internal/app/models"
)

// CreateStudentRequest represents a request to register a new student record
type CreateStudentRequest struct {
	StudentNo  string `json:"studentNo" binding:"required" example:"SPC25-0001"`
	FirstName  string `json:"firstName" binding:"required" example:"Maria"`
	MiddleName string `json:"middleName" example:"Santos"`
	LastName   string `json:"lastName" binding:"required" example:"Dela Cruz"`
	Email      string `json:"email" binding:"omitempty,email" example:"maria@example.com"`
	Phone      string `json:"phone" example:"09171234567"`
	Address    string `json:"address" example:"123 Mabini St."`
	Department string `json:"department" binding:"required" example:"college"`
}

// UpdateStudentRequest represents a request to update a student's profile fields
type UpdateStudentRequest struct {
	FirstName  *string `json:"firstName,omitempty"`
	MiddleName *string `json:"middleName,omitempty"`
	LastName   *string `json:"lastName,omitempty"`
	Email      *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
	Department *string `json:"department,omitempty"`
	Status     *string `json:"status,omitempty"`
}

// EnrollStudentRequest represents a request to enroll a student into a term
type EnrollStudentRequest struct {
	Course     string                 `json:"course" binding:"required" example:"BS Information Technology"`
	YearLevel  string                 `json:"yearLevel" binding:"required" example:"1st Year"`
	Semester   string                 `json:"semester" binding:"required" example:"First Semester"`
	SchoolYear string                 `json:"schoolYear" binding:"required" example:"2026-2027"`
	Discount   float64                `json:"discount" binding:"gte=0" example:"0"`
	Subjects   []models.CourseLoadRow `json:"subjects,omitempty"`
}

// DeleteStudentsRequest represents a bulk delete request
type DeleteStudentsRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}

// StudentListQuery captures search, filter, sort and pagination parameters
// for the student list endpoint
type StudentListQuery struct {
	Search     string `form:"search"`
	Department string `form:"department"`
	Status     string `form:"status"`
	Course     string `form:"course"`
	YearLevel  string `form:"yearLevel"`
	SortKey    string `form:"sortKey"`
	SortDesc   bool   `form:"sortDesc"`
	Page       int    `form:"page,default=1"`
	PageSize   int    `form:"pageSize,default=10"`
}
