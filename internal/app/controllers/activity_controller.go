package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/schooldesk/api/internal/app/models/dto"
	"github.com/schooldesk/api/internal/app/services"
	"github.com/schooldesk/api/internal/middleware"
	"github.com/schooldesk/api/internal/pkg/listview"
)

// ActivityController serves the dashboard activity feed
type ActivityController struct {
	activityService *services.ActivityService
}

// NewActivityController creates a new ActivityController
func NewActivityController(activityService *services.ActivityService) *ActivityController {
	return &ActivityController{
		activityService: activityService,
	}
}

// List returns one page of the activity log, newest first
// @Summary List activities
// @Tags activities
// @Produce json
// @Param type query string false "Type tag filter" Enums(user, student, subject, enrollment, payment, fee)
// @Param page query int false "1-based page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Activities retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /activities [get]
func (c *ActivityController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", strconv.Itoa(listview.DefaultPageSize)))

	activities, pagination, err := c.activityService.List(ctx, ctx.Query("type"), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, dto.PaginatedResponse{
		Items:      activities,
		Pagination: pagination,
	})
}
