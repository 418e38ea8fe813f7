package dto

// CreateStudentRequest registers a new student
type CreateStudentRequest struct {
	FullName string  `json:"fullName" binding:"required,min=2,max=100" example:"Ali Veli"`
	Email    string  `json:"email" binding:"required,email" example:"ali@example.com"`
	Phone    *string `json:"phone,omitempty" example:"+90 555 000 00 00"`
	BranchID *int64  `json:"branchId,omitempty" binding:"omitempty,min=1" example:"1"`
}

// UpdateStudentRequest updates a student's contact details
type UpdateStudentRequest struct {
	FullName     string  `json:"fullName" binding:"required,min=2,max=100" example:"Ali Veli"`
	Email        string  `json:"email" binding:"required,email" example:"ali@example.com"`
	Phone        *string `json:"phone,omitempty" example:"+90 555 000 00 00"`
	RegisteredBy *int64  `json:"registeredBy,omitempty" binding:"omitempty,min=1" example:"4"`
}
