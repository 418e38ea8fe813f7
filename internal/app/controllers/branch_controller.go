package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/consultdesk/internal/app/models/dto"
	"github.com/yigit/consultdesk/internal/middleware"
)

// BranchController handles branch office operations
type BranchController struct {
	branchService BranchService
}

// NewBranchController creates a new BranchController
func NewBranchController(branchService BranchService) *BranchController {
	return &BranchController{branchService: branchService}
}

// ListBranches lists branches
// @Summary List branches
// @Description Global users see every branch; branch users see only their own
// @Tags branches
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Branch}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /branches [get]
func (c *BranchController) ListBranches(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	branches, err := c.branchService.List(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, branches, "")
}

// GetBranch returns one branch
// @Summary Get branch
// @Tags branches
// @Produce json
// @Security BearerAuth
// @Param id path int true "Branch ID"
// @Success 200 {object} dto.APIResponse{data=models.Branch}
// @Failure 403 {object} dto.ErrorResponse "Another branch"
// @Failure 404 {object} dto.ErrorResponse "Branch not found"
// @Router /branches/{id} [get]
func (c *BranchController) GetBranch(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	branch, err := c.branchService.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, branch, "")
}

// CreateBranch adds a branch
// @Summary Create branch
// @Tags branches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BranchRequest true "Branch"
// @Success 201 {object} dto.APIResponse{data=models.Branch}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 403 {object} dto.ErrorResponse "Global role required"
// @Failure 409 {object} dto.ErrorResponse "Branch name taken"
// @Router /branches [post]
func (c *BranchController) CreateBranch(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	var req dto.BranchRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	branch, err := c.branchService.Create(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, branch, "Branch created successfully")
}

// UpdateBranch edits a branch
// @Summary Update branch
// @Tags branches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Branch ID"
// @Param request body dto.BranchRequest true "Branch"
// @Success 200 {object} dto.APIResponse{data=models.Branch}
// @Failure 403 {object} dto.ErrorResponse "Global role required"
// @Failure 404 {object} dto.ErrorResponse "Branch not found"
// @Router /branches/{id} [put]
func (c *BranchController) UpdateBranch(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.BranchRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	branch, err := c.branchService.Update(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, branch, "Branch updated successfully")
}

// DeleteBranch removes an unused branch
// @Summary Delete branch
// @Tags branches
// @Produce json
// @Security BearerAuth
// @Param id path int true "Branch ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "Branch still has users or students"
// @Failure 403 {object} dto.ErrorResponse "Global role required"
// @Failure 404 {object} dto.ErrorResponse "Branch not found"
// @Router /branches/{id} [delete]
func (c *BranchController) DeleteBranch(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.branchService.Delete(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse("Branch deleted successfully"))
}

// ListStaff lists the users of a branch
// @Summary Branch staff
// @Tags branches
// @Produce json
// @Security BearerAuth
// @Param id path int true "Branch ID"
// @Success 200 {object} dto.APIResponse{data=[]models.User}
// @Failure 403 {object} dto.ErrorResponse "Another branch"
// @Router /branches/{id}/staff [get]
func (c *BranchController) ListStaff(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	staff, err := c.branchService.Staff(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, staff, "")
}
