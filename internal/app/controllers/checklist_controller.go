package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/consultdesk/internal/app/models/dto"
	"github.com/yigit/consultdesk/internal/middleware"
)

// ChecklistController handles per-country document checklists
type ChecklistController struct {
	checklistService ChecklistService
}

// NewChecklistController creates a new ChecklistController
func NewChecklistController(checklistService ChecklistService) *ChecklistController {
	return &ChecklistController{checklistService: checklistService}
}

// ListChecklists lists every checklist with its items
// @Summary List checklists
// @Tags checklists
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Checklist}
// @Router /checklists [get]
func (c *ChecklistController) ListChecklists(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	checklists, err := c.checklistService.List(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, checklists, "")
}

// GetChecklist returns one checklist
// @Summary Get checklist
// @Tags checklists
// @Produce json
// @Security BearerAuth
// @Param id path int true "Checklist ID"
// @Success 200 {object} dto.APIResponse{data=models.Checklist}
// @Failure 404 {object} dto.ErrorResponse "Checklist not found"
// @Router /checklists/{id} [get]
func (c *ChecklistController) GetChecklist(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	checklist, err := c.checklistService.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, checklist, "")
}

// ListCountryChecklists lists the checklists of one destination country
// @Summary Checklists by country
// @Tags checklists
// @Produce json
// @Security BearerAuth
// @Param id path int true "Country ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Checklist}
// @Failure 404 {object} dto.ErrorResponse "Country not found"
// @Router /checklists/country/{id} [get]
func (c *ChecklistController) ListCountryChecklists(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	checklists, err := c.checklistService.ListByCountry(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, checklists, "")
}

// ListCountries lists destination countries
// @Summary List countries
// @Tags checklists
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Country}
// @Router /checklists/countries [get]
func (c *ChecklistController) ListCountries(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	countries, err := c.checklistService.Countries(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, countries, "")
}

// CreateChecklist adds a checklist
// @Summary Create checklist
// @Description Items default to required when the flag is omitted
// @Tags checklists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChecklistRequest true "Checklist"
// @Success 201 {object} dto.APIResponse{data=models.Checklist}
// @Failure 400 {object} dto.ErrorResponse "Invalid checklist"
// @Failure 403 {object} dto.ErrorResponse "Global role required"
// @Router /checklists [post]
func (c *ChecklistController) CreateChecklist(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	var req dto.ChecklistRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	checklist, err := c.checklistService.Create(ctx.Request.Context(), actor, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, checklist, "Checklist created successfully")
}

// UpdateChecklist replaces a checklist and its items
// @Summary Update checklist
// @Tags checklists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Checklist ID"
// @Param request body dto.ChecklistRequest true "Checklist"
// @Success 200 {object} dto.APIResponse{data=models.Checklist}
// @Failure 403 {object} dto.ErrorResponse "Global role required"
// @Failure 404 {object} dto.ErrorResponse "Checklist not found"
// @Router /checklists/{id} [put]
func (c *ChecklistController) UpdateChecklist(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ChecklistRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	checklist, err := c.checklistService.Update(ctx.Request.Context(), actor, id, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, checklist, "Checklist updated successfully")
}

// DeleteChecklist removes a checklist and its items
// @Summary Delete checklist
// @Tags checklists
// @Produce json
// @Security BearerAuth
// @Param id path int true "Checklist ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Global role required"
// @Failure 404 {object} dto.ErrorResponse "Checklist not found"
// @Router /checklists/{id} [delete]
func (c *ChecklistController) DeleteChecklist(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.checklistService.Delete(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse("Checklist deleted successfully"))
}
