package models

import "time"

// Checklist defines which document types applications to a country must provide
type Checklist struct {
	ID          int64           `json:"id" example:"2"`
	CountryID   int64           `json:"countryId" example:"3"`
	CountryName string          `json:"countryName,omitempty" example:"Australia"`
	Name        string          `json:"name" example:"Australia student visa"`
	CreatedBy   *int64          `json:"createdBy,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	Items       []ChecklistItem `json:"items"`
}

// ChecklistItem is one document requirement within a checklist
type ChecklistItem struct {
	ID           int64  `json:"id,omitempty"`
	ChecklistID  int64  `json:"checklistId,omitempty"`
	DocumentID   int64  `json:"documentId" example:"1"`
	DocumentName string `json:"documentName,omitempty" example:"Passport"`
	Required     bool   `json:"required" example:"true"`
}
