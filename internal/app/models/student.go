package models

import "time"

// Student is a prospective study-abroad client registered at one branch for its lifetime
type Student struct {
	ID           int64     `json:"id" example:"12"`
	FullName     string    `json:"fullName" example:"Sita Sharma"`
	Email        string    `json:"email" example:"sita@example.com"`
	Phone        *string   `json:"phone,omitempty" example:"+977-9800000000"`
	BranchID     int64     `json:"branchId" example:"1"`
	BranchName   string    `json:"branchName,omitempty"`
	RegisteredBy *int64    `json:"registeredBy,omitempty" example:"3"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// EffectiveBranchID returns the branch the student is registered at
func (s *Student) EffectiveBranchID() int64 {
	return s.BranchID
}
