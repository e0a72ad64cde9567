package dto

// CreateUserRequest represents a request to create a staff account
type CreateUserRequest struct {
	FirstName   string   `json:"firstName" binding:"required" example:"Ana"`
	LastName    string   `json:"lastName" binding:"required" example:"Reyes"`
	Email       string   `json:"email" binding:"required,email" example:"ana@school.edu"`
	Password    string   `json:"password" binding:"required,min=8" example:"s3cret-pass"`
	Role        string   `json:"role" binding:"required,oneof=ADMIN REGISTRAR CASHIER VIEWER" example:"REGISTRAR"`
	Permissions []string `json:"permissions"`
}

// UpdateUserRequest represents a request to update a staff account
type UpdateUserRequest struct {
	FirstName   *string   `json:"firstName,omitempty"`
	LastName    *string   `json:"lastName,omitempty"`
	Email       *string   `json:"email,omitempty" binding:"omitempty,email"`
	Password    *string   `json:"password,omitempty" binding:"omitempty,min=8"`
	Role        *string   `json:"role,omitempty" binding:"omitempty,oneof=ADMIN REGISTRAR CASHIER VIEWER"`
	Status      *string   `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
	Permissions *[]string `json:"permissions,omitempty"`
}

// UserListQuery captures list parameters for staff accounts
type UserListQuery struct {
	Search   string `form:"search"`
	Role     string `form:"role"`
	Status   string `form:"status"`
	SortKey  string `form:"sortKey"`
	SortDesc bool   `form:"sortDesc"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"pageSize,default=10"`
}
