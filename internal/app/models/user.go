package models

import (
	"time"
)

// User defines the staff user model based on the 'users' table
type User struct {
	ID         int64     `json:"id" db:"id" example:"1"`
	FullName   string    `json:"fullName" db:"full_name" example:"Jane Doe"`
	Email      string    `json:"email" db:"email" example:"jane@consultdesk.local"`
	Password   string    `json:"-" db:"password_hash"`
	Role       RoleType  `json:"role" db:"role" example:"counselor"`
	BranchID   *int64    `json:"branchId,omitempty" db:"branch_id" example:"1"`
	BranchName *string   `json:"branchName,omitempty" db:"-"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`
}

// Actor returns the authorization view of the user
func (u *User) Actor() *Actor {
	return &Actor{
		UserID:   u.ID,
		Email:    u.Email,
		Role:     u.Role,
		BranchID: u.BranchID,
	}
}

// EffectiveBranchID returns the branch the user is attached to, zero for global users
func (u *User) EffectiveBranchID() int64 {
	if u.BranchID == nil {
		return 0
	}
	return *u.BranchID
}
