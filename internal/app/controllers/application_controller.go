package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/app/models/dto"
	"github.com/yigit/consultdesk/internal/middleware"
	"github.com/yigit/consultdesk/internal/pkg/helpers"
)

// ApplicationController handles course application operations
type ApplicationController struct {
	applicationService ApplicationService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService ApplicationService) *ApplicationController {
	return &ApplicationController{applicationService: applicationService}
}

// ListApplications lists applications
// @Summary List applications
// @Description Paginated and filtered; branch users only see their own branch
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter" Enums(draft, submitted, processing, visa_applied, approved, rejected)
// @Param branchId query int false "Branch filter (global users only)"
// @Param studentId query int false "Student filter"
// @Param countryId query int false "Destination country filter"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.Application}}
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /applications [get]
func (c *ApplicationController) ListApplications(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}

	filter := models.ApplicationFilter{}
	if raw := ctx.Query("status"); raw != "" {
		status, err := models.ParseApplicationStatus(raw)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		filter.Status = &status
	}
	if filter.BranchID, ok = branchQuery(ctx); !ok {
		return
	}
	var err error
	if filter.StudentID, err = helpers.ParseOptionalIDQuery(ctx, "studentId"); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if filter.CountryID, err = helpers.ParseOptionalIDQuery(ctx, aliasedQuery(ctx, "countryId", "country")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	filter.Page, filter.Size = helpers.ParsePaginationParams(ctx)

	apps, pagination, err := c.applicationService.List(ctx.Request.Context(), actor, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.PaginatedResponse{Items: apps, Pagination: pagination}, "")
}

// GetApplication returns an application with its documents and checklist
// @Summary Get application
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=models.ApplicationDetail}
// @Failure 403 {object} dto.ErrorResponse "Another branch"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id} [get]
func (c *ApplicationController) GetApplication(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	detail, err := c.applicationService.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, detail, "")
}

// CreateApplication opens a draft application
// @Summary Create application
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateApplicationRequest true "Student and course"
// @Success 201 {object} dto.APIResponse{data=models.Application}
// @Failure 403 {object} dto.ErrorResponse "Student belongs to another branch"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Router /applications [post]
func (c *ApplicationController) CreateApplication(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	var req dto.CreateApplicationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	app, err := c.applicationService.Create(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, app, "Application created successfully")
}

// UpdateApplicationStatus moves an application to a new status
// @Summary Update application status
// @Description Any known status may be set; submittedAt is stamped the first time the application is submitted
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Application}
// @Failure 400 {object} dto.ErrorResponse "Unknown status"
// @Failure 403 {object} dto.ErrorResponse "Another branch"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id}/status [put]
func (c *ApplicationController) UpdateApplicationStatus(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateApplicationStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	app, err := c.applicationService.UpdateStatus(ctx.Request.Context(), actor, id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, app, "Application status updated successfully")
}

// DeleteApplication removes an application and its documents
// @Summary Delete application
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Another branch"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id} [delete]
func (c *ApplicationController) DeleteApplication(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.applicationService.Delete(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse("Application deleted successfully"))
}
