package dto

import "github.com/yigit/consultdesk/internal/app/models"

// ChecklistItemRequest is one document type on a checklist. Required defaults to true.
type ChecklistItemRequest struct {
	DocumentID int64 `json:"documentId" binding:"required,min=1" example:"1"`
	Required   *bool `json:"required,omitempty" example:"true"`
}

// ChecklistRequest creates or replaces a country checklist
type ChecklistRequest struct {
	CountryID int64                  `json:"countryId" binding:"required,min=1" example:"3"`
	Name      string                 `json:"name" binding:"required,min=2,max=150" example:"Canada student visa"`
	Items     []ChecklistItemRequest `json:"items" binding:"dive"`
}

// ToModel converts the request into a checklist with its items
func (r *ChecklistRequest) ToModel() *models.Checklist {
	checklist := &models.Checklist{
		CountryID: r.CountryID,
		Name:      r.Name,
		Items:     make([]models.ChecklistItem, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		required := true
		if item.Required != nil {
			required = *item.Required
		}
		checklist.Items = append(checklist.Items, models.ChecklistItem{
			DocumentID: item.DocumentID,
			Required:   required,
		})
	}
	return checklist
}
