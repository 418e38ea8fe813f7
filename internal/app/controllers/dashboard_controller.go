package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/consultdesk/internal/middleware"
)

// DashboardController serves aggregate statistics
type DashboardController struct {
	dashboardService DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// GetStats returns dashboard statistics
// @Summary Dashboard statistics
// @Description Branch users always get their own branch; global users may pass branchId
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param branchId query int false "Branch filter"
// @Success 200 {object} dto.APIResponse{data=models.DashboardStats}
// @Failure 403 {object} dto.ErrorResponse "Another branch"
// @Router /dashboard/stats [get]
func (c *DashboardController) GetStats(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	branchID, ok := branchQuery(ctx)
	if !ok {
		return
	}
	stats, err := c.dashboardService.Stats(ctx.Request.Context(), actor, branchID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, stats, "")
}

// GetBranchComparison compares activity across branches
// @Summary Branch comparison
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.BranchStats}
// @Failure 403 {object} dto.ErrorResponse "Global role required"
// @Router /dashboard/branch-comparison [get]
func (c *DashboardController) GetBranchComparison(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	rows, err := c.dashboardService.BranchComparison(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, rows, "")
}
