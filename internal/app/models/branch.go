package models

import "time"

// Branch is a physical office and the unit of data isolation
type Branch struct {
	ID        int64     `json:"id" example:"1"`
	Name      string    `json:"name" example:"Kathmandu Head Office"`
	Address   *string   `json:"address,omitempty" example:"Putalisadak, Kathmandu"`
	Phone     *string   `json:"phone,omitempty" example:"+977-1-4000000"`
	Email     *string   `json:"email,omitempty" example:"ktm@consultdesk.local"`
	CreatedAt time.Time `json:"createdAt"`
}

// EffectiveBranchID returns the branch's own id
func (b *Branch) EffectiveBranchID() int64 {
	return b.ID
}

// BranchStats holds aggregate counts used by the branch comparison dashboard
type BranchStats struct {
	BranchID             int64  `json:"branchId"`
	BranchName           string `json:"branchName"`
	TotalStudents        int64  `json:"totalStudents"`
	TotalApplications    int64  `json:"totalApplications"`
	ApprovedApplications int64  `json:"approvedApplications"`
	RejectedApplications int64  `json:"rejectedApplications"`
	CompleteDocuments    int64  `json:"completeDocuments"`
}
