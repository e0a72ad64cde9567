package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schooldesk/api/internal/app/models"
	"github.com/schooldesk/api/internal/app/models/dto"
	"github.com/schooldesk/api/internal/app/services"
	"github.com/schooldesk/api/internal/middleware"
)

// FeeController handles fee structure operations
type FeeController struct {
	feeService *services.FeeScheduleService
}

// NewFeeController creates a new FeeController
func NewFeeController(feeService *services.FeeScheduleService) *FeeController {
	return &FeeController{
		feeService: feeService,
	}
}

// GetSchedules returns the fee schedule for every department
// @Summary Get fee schedules
// @Description Returns the fee structure, writing the defaults first when none exist yet
// @Tags fees
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.FeeSchedule} "Fee schedules retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fees [get]
func (c *FeeController) GetSchedules(ctx *gin.Context) {
	schedules, err := c.feeService.GetSchedules(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, schedules)
}

// UpdateDepartment replaces one department's fee schedule
// @Summary Update a department's fees
// @Description Replaces the department's fee-schedule sub-record in full
// @Tags fees
// @Accept json
// @Produce json
// @Param department path string true "Department" Enums(college, tvet, shs, jhs)
// @Param request body dto.UpdateFeeScheduleRequest true "Replacement fee schedule"
// @Success 200 {object} dto.APIResponse{data=models.FeeSchedule} "Fee schedule updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Unknown department or invalid data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fees/{department} [put]
func (c *FeeController) UpdateDepartment(ctx *gin.Context) {
	var req dto.UpdateFeeScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	schedule, err := c.feeService.UpdateDepartment(ctx, models.Department(ctx.Param("department")), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, schedule)
}

// ResetDefaults restores the hard-coded fee structure
// @Summary Reset fee schedules to defaults
// @Tags fees
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.FeeSchedule} "Fee schedules reset successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fees/reset [post]
func (c *FeeController) ResetDefaults(ctx *gin.Context) {
	schedules, err := c.feeService.ResetDefaults(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, schedules)
}
