package controllers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/middleware"
	"github.com/yigit/consultdesk/internal/pkg/filestorage"
	"github.com/yigit/consultdesk/internal/pkg/helpers"
)

const csvContentType = "text/csv; charset=utf-8"

// BulkController handles CSV import and export
type BulkController struct {
	bulkService BulkService
	csvPolicy   filestorage.UploadPolicy
}

// NewBulkController creates a new BulkController
func NewBulkController(bulkService BulkService, csvPolicy filestorage.UploadPolicy) *BulkController {
	return &BulkController{
		bulkService: bulkService,
		csvPolicy:   csvPolicy,
	}
}

// ImportStudents registers students from a CSV file
// @Summary Import students
// @Description CSV with header full_name,email,phone. Rows whose email already exists are skipped and reported.
// @Tags bulk
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param csv formData file true "CSV file"
// @Param branchId formData int false "Target branch (global users only)"
// @Success 200 {object} dto.APIResponse{data=dto.ImportResult}
// @Failure 400 {object} dto.ErrorResponse "Missing file or invalid rows"
// @Failure 403 {object} dto.ErrorResponse "Missing bulk_transfer capability"
// @Router /bulk/import/students [post]
func (c *BulkController) ImportStudents(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	fileHeader, _ := ctx.FormFile("csv")
	if err := c.csvPolicy.Validate(fileHeader); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	branchID, err := helpers.ParseOptionalIDForm(ctx, "branchId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, fmt.Errorf("failed to open uploaded csv: %w", err))
		return
	}
	defer file.Close()

	result, err := c.bulkService.ImportStudents(ctx.Request.Context(), actor, file, branchID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, result, fmt.Sprintf("Imported %d students", result.Imported))
}

// ExportStudents downloads the visible students as CSV
// @Summary Export students
// @Tags bulk
// @Produce text/csv
// @Security BearerAuth
// @Param branchId query int false "Branch filter (global users only)"
// @Success 200 {file} file
// @Failure 403 {object} dto.ErrorResponse "Missing bulk_transfer capability"
// @Router /bulk/export/students [get]
func (c *BulkController) ExportStudents(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	branchID, ok := branchQuery(ctx)
	if !ok {
		return
	}
	c.sendCSV(ctx, "students", func(w io.Writer) error {
		return c.bulkService.ExportStudents(ctx.Request.Context(), actor, w, branchID)
	})
}

// ExportApplications downloads the visible applications as CSV
// @Summary Export applications
// @Tags bulk
// @Produce text/csv
// @Security BearerAuth
// @Param branchId query int false "Branch filter (global users only)"
// @Param status query string false "Status filter"
// @Success 200 {file} file
// @Failure 403 {object} dto.ErrorResponse "Missing bulk_transfer capability"
// @Router /bulk/export/applications [get]
func (c *BulkController) ExportApplications(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	branchID, ok := branchQuery(ctx)
	if !ok {
		return
	}
	var status *models.ApplicationStatus
	if raw := ctx.Query("status"); raw != "" {
		parsed, err := models.ParseApplicationStatus(raw)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		status = &parsed
	}
	c.sendCSV(ctx, "applications", func(w io.Writer) error {
		return c.bulkService.ExportApplications(ctx.Request.Context(), actor, w, branchID, status)
	})
}

// ExportDocumentChecklist downloads an application's document checklist as CSV
// @Summary Export document checklist
// @Tags bulk
// @Produce text/csv
// @Security BearerAuth
// @Param applicationId path int true "Application ID"
// @Success 200 {file} file
// @Failure 403 {object} dto.ErrorResponse "Another branch"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /bulk/export/documents/{applicationId} [get]
func (c *BulkController) ExportDocumentChecklist(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	applicationID, ok := idParam(ctx, "applicationId")
	if !ok {
		return
	}
	c.sendCSV(ctx, fmt.Sprintf("application-%d-documents", applicationID), func(w io.Writer) error {
		return c.bulkService.ExportDocumentChecklist(ctx.Request.Context(), actor, w, applicationID)
	})
}

// sendCSV buffers the export so a failure can still be reported as JSON
func (c *BulkController) sendCSV(ctx *gin.Context, name string, write func(w io.Writer) error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	filename := fmt.Sprintf("%s-%s.csv", name, time.Now().Format("20060102"))
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, csvContentType, buf.Bytes())
}
