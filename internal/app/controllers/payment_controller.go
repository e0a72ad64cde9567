package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schooldesk/api/internal/app/models/dto"
	"github.com/schooldesk/api/internal/app/services"
	"github.com/schooldesk/api/internal/middleware"
)

// PaymentController handles payment ledger operations
type PaymentController struct {
	paymentService *services.PaymentService
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(paymentService *services.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

// ListPayments returns a student's payment history
// @Summary List a student's payments
// @Tags payments
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Payment} "Payments retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/payments [get]
func (c *PaymentController) ListPayments(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	payments, err := c.paymentService.ListPayments(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, payments)
}

// AddPayment records a payment for a student
// @Summary Record a payment
// @Description Records a payment; a completed payment reduces the student's balance
// @Tags payments
// @Accept json
// @Produce json
// @Param request body dto.CreatePaymentRequest true "Payment information"
// @Success 201 {object} dto.APIResponse{data=models.Payment} "Payment recorded successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Payment reference already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments [post]
func (c *PaymentController) AddPayment(ctx *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	payment, err := c.paymentService.AddPayment(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, payment)
}

// UpdatePayment edits a payment, addressed by its original reference
// @Summary Update a payment
// @Tags payments
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param reference path string true "Original receipt reference"
// @Param request body dto.UpdatePaymentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Payment} "Payment updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/payments/{reference} [put]
func (c *PaymentController) UpdatePayment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	payment, err := c.paymentService.UpdatePayment(ctx, id, ctx.Param("reference"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, payment)
}

// DeletePayment removes a payment and reverses its balance effect
// @Summary Delete a payment
// @Tags payments
// @Produce json
// @Param id path int true "Student ID"
// @Param reference path string true "Original receipt reference"
// @Success 200 {object} dto.APIResponse{data=models.Payment} "Removed payment entry"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/payments/{reference} [delete]
func (c *PaymentController) DeletePayment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	removed, err := c.paymentService.DeletePayment(ctx, id, ctx.Param("reference"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, removed)
}

// Receipt renders the printable receipt for one payment
// @Summary Print a receipt
// @Description Returns a self-contained printable receipt document
// @Tags payments
// @Produce html
// @Param id path int true "Student ID"
// @Param reference path string true "Receipt reference"
// @Success 200 {string} string "HTML document"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/payments/{reference}/receipt [get]
func (c *PaymentController) Receipt(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	html, err := c.paymentService.Receipt(ctx, id, ctx.Param("reference"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

// ExportCSV downloads the full payment ledger as CSV
// @Summary Export payments as CSV
// @Tags payments
// @Produce text/csv
// @Success 200 {string} string "CSV document"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/export [get]
func (c *PaymentController) ExportCSV(ctx *gin.Context) {
	data, filename, err := c.paymentService.ExportCSV(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "text/csv", data)
}
