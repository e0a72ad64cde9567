package dto

// CreatePaymentRequest represents a request to record a payment for a student
type CreatePaymentRequest struct {
	StudentID   int64   `json:"studentId" binding:"required" example:"42"`
	Reference   string  `json:"reference" binding:"required" example:"OR-1001"`
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"1500"`
	PaymentType string  `json:"paymentType" binding:"required" example:"tuition"`
	Description string  `json:"description" example:"Midterm installment"`
	Status      string  `json:"status" binding:"required,oneof=completed pending" example:"completed"`
	ProcessedBy string  `json:"processedBy" example:"cashier@school.edu"`
}

// UpdatePaymentRequest represents a request to edit an existing payment,
// addressed by its original receipt reference
type UpdatePaymentRequest struct {
	Reference   *string  `json:"reference,omitempty"`
	Amount      *float64 `json:"amount,omitempty" binding:"omitempty,gt=0"`
	PaymentType *string  `json:"paymentType,omitempty"`
	Description *string  `json:"description,omitempty"`
	Status      *string  `json:"status,omitempty" binding:"omitempty,oneof=completed pending"`
}

// PaymentListQuery captures list parameters for the payment ledger
type PaymentListQuery struct {
	Search      string `form:"search"`
	Status      string `form:"status"`
	PaymentType string `form:"paymentType"`
	SortKey     string `form:"sortKey"`
	SortDesc    bool   `form:"sortDesc"`
	Page        int    `form:"page,default=1"`
	PageSize    int    `form:"pageSize,default=10"`
}
