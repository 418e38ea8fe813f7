package dto

import "github.com/yigit/consultdesk/internal/app/models"

// UploadDocumentResponse is returned after a document upload
type UploadDocumentResponse struct {
	ID         int64                 `json:"id" example:"31"`
	FilePath   string                `json:"filePath" example:"/uploads/documents/1713950000000-passport.pdf"`
	Status     models.DocumentStatus `json:"status" example:"pending"`
	ExpiryDate *string               `json:"expiryDate" example:"2034-04-24"`
}

// NewUploadDocumentResponse builds the upload response from the stored row
func NewUploadDocumentResponse(doc *models.ApplicationDocument) *UploadDocumentResponse {
	return &UploadDocumentResponse{
		ID:         doc.ID,
		FilePath:   doc.FilePath,
		Status:     doc.Status,
		ExpiryDate: models.FormatDate(doc.ExpiryDate),
	}
}

// UpdateDocumentStatusRequest sets the review status of an uploaded document
type UpdateDocumentStatusRequest struct {
	Status string `json:"status" binding:"required,docstatus" example:"approved"`
}

// UpdateDocumentExpiryRequest edits the expiry date of an uploaded document.
// A null expiryDate clears it.
type UpdateDocumentExpiryRequest struct {
	ExpiryDate *string `json:"expiryDate" binding:"omitempty,date" example:"2026-01-31"`
}

// DocumentTypeRequest creates or updates a document type
type DocumentTypeRequest struct {
	Name                 string  `json:"name" binding:"required,min=2,max=100" example:"Passport"`
	Description          *string `json:"description,omitempty" example:"Valid machine readable passport"`
	HasExpiry            bool    `json:"hasExpiry" example:"true"`
	ValidityPeriodMonths *int    `json:"validityPeriodMonths,omitempty" binding:"omitempty,min=1,max=600" example:"120"`
}

// ToModel converts the request into a document type
func (r *DocumentTypeRequest) ToModel() *models.DocumentType {
	docType := &models.DocumentType{
		Name:        r.Name,
		Description: r.Description,
		HasExpiry:   r.HasExpiry,
	}
	if r.HasExpiry {
		docType.ValidityPeriodMonths = r.ValidityPeriodMonths
	}
	return docType
}
