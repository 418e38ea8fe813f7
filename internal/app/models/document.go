package models

import (
	"fmt"
	"time"

	"github.com/yigit/consultdesk/internal/pkg/apperrors"
)

// DateLayout is the wire format of calendar dates such as expiry dates
const DateLayout = "2006-01-02"

// DocumentStatus is the review state of an uploaded document
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusApproved DocumentStatus = "approved"
	DocumentStatusRejected DocumentStatus = "rejected"
)

// Valid reports whether s is one of the three review states
func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentStatusPending, DocumentStatusApproved, DocumentStatusRejected:
		return true
	}
	return false
}

// ParseDocumentStatus validates a raw document status. Every state is reachable from every other.
func ParseDocumentStatus(raw string) (DocumentStatus, error) {
	status := DocumentStatus(raw)
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidDocumentStatus, raw)
	}
	return status, nil
}

// DocumentType describes a kind of document that checklists can require
type DocumentType struct {
	ID                   int64   `json:"id" example:"1"`
	Name                 string  `json:"name" example:"Passport"`
	Description          *string `json:"description,omitempty" example:"Valid machine readable passport"`
	HasExpiry            bool    `json:"hasExpiry" example:"true"`
	ValidityPeriodMonths *int    `json:"validityPeriodMonths,omitempty" example:"120"`
}

// ApplicationDocument is the single uploaded instance of one document type for one application
type ApplicationDocument struct {
	ID                     int64          `json:"id" example:"31"`
	ApplicationID          int64          `json:"applicationId" example:"7"`
	DocumentID             int64          `json:"documentId" example:"1"`
	FilePath               string         `json:"filePath" example:"uploads/documents/1713950000000-passport.pdf"`
	Status                 DocumentStatus `json:"status" example:"pending"`
	UploadedAt             time.Time      `json:"uploadedAt"`
	ExpiryDate             *time.Time     `json:"expiryDate,omitempty"`
	ExpiryNotificationSent bool           `json:"expiryNotificationSent"`

	// Derived through application and student
	BranchID     int64  `json:"branchId,omitempty"`
	DocumentName string `json:"documentName,omitempty"`
}

// EffectiveBranchID returns the branch of the owning application's student
func (d *ApplicationDocument) EffectiveBranchID() int64 {
	return d.BranchID
}

// ComputeExpiry resolves the expiry date of a freshly uploaded document.
// An explicit date wins, then the document type's validity period counted from
// today, otherwise the document never expires.
func ComputeExpiry(explicit *time.Time, docType *DocumentType, today time.Time) *time.Time {
	if explicit != nil {
		date := truncateToDate(*explicit)
		return &date
	}
	if docType != nil && docType.HasExpiry && docType.ValidityPeriodMonths != nil && *docType.ValidityPeriodMonths > 0 {
		date := truncateToDate(today).AddDate(0, *docType.ValidityPeriodMonths, 0)
		return &date
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar date
func ParseDate(raw string) (time.Time, error) {
	date, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: expected date in YYYY-MM-DD format", apperrors.ErrValidationFailed)
	}
	return date, nil
}

// FormatDate renders a nullable date in wire format
func FormatDate(date *time.Time) *string {
	if date == nil {
		return nil
	}
	formatted := date.Format(DateLayout)
	return &formatted
}

// truncateToDate returns midnight UTC of the UTC calendar day containing t
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ExpiringDocument is an application document joined with everything the expiry scan needs
type ExpiringDocument struct {
	ApplicationDocumentID int64     `json:"id"`
	ApplicationID         int64     `json:"applicationId"`
	DocumentID            int64     `json:"documentId"`
	DocumentName          string    `json:"documentName"`
	ExpiryDate            time.Time `json:"expiryDate"`
	StudentID             int64     `json:"studentId"`
	StudentName           string    `json:"studentName"`
	BranchID              int64     `json:"branchId"`
	BranchName            string    `json:"branchName"`
	CounselorID           *int64    `json:"counselorId,omitempty"`
	CounselorName         *string   `json:"counselorName,omitempty"`
	CounselorEmail        *string   `json:"counselorEmail,omitempty"`
	NotificationSent      bool      `json:"expiryNotificationSent"`
}

// EffectiveBranchID returns the branch of the document's student
func (d *ExpiringDocument) EffectiveBranchID() int64 {
	return d.BranchID
}

// ChecklistDocument is one checklist requirement merged with the uploaded document, if any
type ChecklistDocument struct {
	DocumentID            int64           `json:"documentId"`
	DocumentName          string          `json:"documentName"`
	Required              bool            `json:"required"`
	ApplicationDocumentID *int64          `json:"applicationDocumentId,omitempty"`
	FilePath              *string         `json:"filePath,omitempty"`
	Status                *DocumentStatus `json:"status,omitempty"`
	UploadedAt            *time.Time      `json:"uploadedAt,omitempty"`
	ExpiryDate            *time.Time      `json:"expiryDate,omitempty"`
}
