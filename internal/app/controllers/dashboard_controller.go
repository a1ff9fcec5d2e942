package controllers

import (
	"github.com/bathudi/admissions/internal/app/services"
	"github.com/bathudi/admissions/internal/middleware"
	"github.com/gin-gonic/gin"
)

// DashboardController serves the admin dashboard counters
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// Stats returns dashboard counters
// @Summary Dashboard statistics
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.DashboardStats}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /dashboard/stats [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	stats, err := c.dashboardService.Stats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, stats)
}
