package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/consultdesk/internal/app/models/dto"
	"github.com/yigit/consultdesk/internal/middleware"
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
	"github.com/yigit/consultdesk/internal/pkg/helpers"
)

const defaultExpiringDays = 30

// DocumentController handles uploaded documents and document types
type DocumentController struct {
	documentService DocumentService
}

// NewDocumentController creates a new DocumentController
func NewDocumentController(documentService DocumentService) *DocumentController {
	return &DocumentController{documentService: documentService}
}

// UploadDocument stores a file for an application's document requirement
// @Summary Upload document
// @Description Uploads or replaces the file for (application, document type). Without expiryDate the expiry is derived from the type's validity period.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param applicationId path int true "Application ID"
// @Param documentId path int true "Document type ID"
// @Param document formData file true "Document file (jpeg, png, pdf, doc, docx, xls, xlsx)"
// @Param expiryDate formData string false "Expiry date (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.UploadDocumentResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing, too large or disallowed file"
// @Failure 403 {object} dto.ErrorResponse "Another branch"
// @Failure 404 {object} dto.ErrorResponse "Application or document type not found"
// @Router /documents/upload/{applicationId}/{documentId} [post]
func (c *DocumentController) UploadDocument(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	applicationID, ok := idParam(ctx, "applicationId")
	if !ok {
		return
	}
	documentID, ok := idParam(ctx, "documentId")
	if !ok {
		return
	}
	fileHeader, err := ctx.FormFile("document")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrFileRequired)
		return
	}

	doc, err := c.documentService.Upload(
		ctx.Request.Context(), actor, applicationID, documentID,
		fileHeader, helpers.OptionalPostForm(ctx, "expiryDate"),
	)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.NewUploadDocumentResponse(doc), "Document uploaded successfully")
}

// ListApplicationDocuments lists the uploaded documents of an application
// @Summary Application documents
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=[]models.ApplicationDocument}
// @Failure 403 {object} dto.ErrorResponse "Another branch"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /documents/application/{id} [get]
func (c *DocumentController) ListApplicationDocuments(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	docs, err := c.documentService.ListByApplication(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, docs, "")
}

// UpdateDocumentStatus records a review decision
// @Summary Review document
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param appDocId path int true "Application document ID"
// @Param request body dto.UpdateDocumentStatusRequest true "Review status"
// @Success 200 {object} dto.APIResponse{data=models.ApplicationDocument}
// @Failure 400 {object} dto.ErrorResponse "Unknown status"
// @Failure 403 {object} dto.ErrorResponse "Another branch"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Router /documents/status/{appDocId} [put]
func (c *DocumentController) UpdateDocumentStatus(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "appDocId")
	if !ok {
		return
	}
	var req dto.UpdateDocumentStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	doc, err := c.documentService.UpdateStatus(ctx.Request.Context(), actor, id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, doc, "Document status updated successfully")
}

// UpdateDocumentExpiry edits or clears the expiry date of a document
// @Summary Update document expiry
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param appDocId path int true "Application document ID"
// @Param request body dto.UpdateDocumentExpiryRequest true "Expiry date, null clears it"
// @Success 200 {object} dto.APIResponse{data=models.ApplicationDocument}
// @Failure 400 {object} dto.ErrorResponse "Invalid date"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Router /documents/expiry/{appDocId} [put]
func (c *DocumentController) UpdateDocumentExpiry(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "appDocId")
	if !ok {
		return
	}
	var req dto.UpdateDocumentExpiryRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	doc, err := c.documentService.UpdateExpiry(ctx.Request.Context(), actor, id, req.ExpiryDate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, doc, "Document expiry updated successfully")
}

// ListExpiringDocuments lists documents expiring within a window
// @Summary Expiring documents
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param days query int false "Window in days" default(30)
// @Param branchId query int false "Branch filter (global users only)"
// @Success 200 {object} dto.APIResponse{data=[]models.ExpiringDocument}
// @Failure 400 {object} dto.ErrorResponse "Invalid window"
// @Router /documents/expiring [get]
func (c *DocumentController) ListExpiringDocuments(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	days, err := helpers.ParseIntQuery(ctx, "days", defaultExpiringDays, 1, 365)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	branchID, ok := branchQuery(ctx)
	if !ok {
		return
	}
	docs, err := c.documentService.Expiring(ctx.Request.Context(), actor, days, branchID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, docs, "")
}

// DeleteDocument removes an uploaded document
// @Summary Delete document
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param appDocId path int true "Application document ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Another branch"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Router /documents/{appDocId} [delete]
func (c *DocumentController) DeleteDocument(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "appDocId")
	if !ok {
		return
	}
	if err := c.documentService.Delete(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse("Document deleted successfully"))
}

// ListDocumentTypes lists the catalogue of document types
// @Summary List document types
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.DocumentType}
// @Router /documents/types [get]
func (c *DocumentController) ListDocumentTypes(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	types, err := c.documentService.ListTypes(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, types, "")
}

// CreateDocumentType adds a document type
// @Summary Create document type
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DocumentTypeRequest true "Document type"
// @Success 201 {object} dto.APIResponse{data=models.DocumentType}
// @Failure 403 {object} dto.ErrorResponse "Global role required"
// @Failure 409 {object} dto.ErrorResponse "Name taken"
// @Router /documents/types [post]
func (c *DocumentController) CreateDocumentType(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	var req dto.DocumentTypeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	docType, err := c.documentService.CreateType(ctx.Request.Context(), actor, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, docType, "Document type created successfully")
}

// UpdateDocumentType edits a document type
// @Summary Update document type
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document type ID"
// @Param request body dto.DocumentTypeRequest true "Document type"
// @Success 200 {object} dto.APIResponse{data=models.DocumentType}
// @Failure 403 {object} dto.ErrorResponse "Global role required"
// @Failure 404 {object} dto.ErrorResponse "Document type not found"
// @Router /documents/types/{id} [put]
func (c *DocumentController) UpdateDocumentType(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.DocumentTypeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	docType, err := c.documentService.UpdateType(ctx.Request.Context(), actor, id, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, docType, "Document type updated successfully")
}
