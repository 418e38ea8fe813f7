package dto

// CreateApplicationRequest opens a draft application for a student and course
type CreateApplicationRequest struct {
	StudentID int64 `json:"studentId" binding:"required,min=1" example:"12"`
	CourseID  int64 `json:"courseId" binding:"required,min=1" example:"5"`
}

// UpdateApplicationStatusRequest moves an application to a new status
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,appstatus" example:"submitted"`
}
