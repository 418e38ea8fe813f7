package dto

import "github.com/yigit/consultdesk/internal/app/models"

// UpdateUserRequest carries the editable profile fields of a staff user
type UpdateUserRequest struct {
	FullName string `json:"fullName" binding:"required,min=2,max=100" example:"Jane Doe"`
	Email    string `json:"email" binding:"required,email" example:"jane@consultdesk.local"`
	BranchID *int64 `json:"branchId,omitempty" binding:"omitempty,min=1" example:"2"`
}

// UpdateRoleRequest reassigns a user's role
type UpdateRoleRequest struct {
	Role     models.RoleType `json:"role" binding:"required,role" example:"branch_manager"`
	BranchID *int64          `json:"branchId,omitempty" binding:"omitempty,min=1" example:"2"`
}

// RoleResponse describes one role and what it may do
type RoleResponse struct {
	Role         models.RoleType `json:"role" example:"counselor"`
	Scope        string          `json:"scope" example:"branch"`
	Capabilities []string        `json:"capabilities"`
}
