package models

import "time"

// Audit actions recorded by bulk transfers
const (
	AuditActionImportStudents     = "IMPORT_STUDENTS"
	AuditActionExportStudents     = "EXPORT_STUDENTS"
	AuditActionExportApplications = "EXPORT_APPLICATIONS"
	AuditActionExportChecklist    = "EXPORT_DOCUMENT_CHECKLIST"
)

// AuditLog records a bulk operation performed by a user
type AuditLog struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   *int64    `json:"entityId,omitempty"`
	Details    string    `json:"details"`
	BranchID   *int64    `json:"branchId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
