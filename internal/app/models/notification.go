package models

import "time"

// Notification types emitted by system events
const (
	NotificationTypeDocumentExpiry = "DOCUMENT_EXPIRY"
)

// Notification entity kinds
const (
	EntityTypeDocument    = "document"
	EntityTypeApplication = "application"
	EntityTypeStudent     = "student"
)

// Notification is an in-app message addressed to one user
type Notification struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	Type       string    `json:"type" example:"DOCUMENT_EXPIRY"`
	Message    string    `json:"message"`
	EntityID   *int64    `json:"entityId,omitempty"`
	EntityType *string   `json:"entityType,omitempty" example:"document"`
	BranchID   *int64    `json:"branchId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	IsRead     bool      `json:"isRead"`
}
