package dto

// BranchRequest is used to create or update a branch office
type BranchRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=100" example:"Istanbul Office"`
	Address *string `json:"address,omitempty" example:"Bagdat Cd. 10"`
	Phone   *string `json:"phone,omitempty" example:"+90 212 000 00 00"`
	Email   *string `json:"email,omitempty" binding:"omitempty,email" example:"istanbul@consultdesk.local"`
}
