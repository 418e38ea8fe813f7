package models

import (
	"fmt"
	"time"

	"github.com/yigit/consultdesk/internal/pkg/apperrors"
)

// ApplicationStatus is the closed set of states an application can be in
type ApplicationStatus string

const (
	ApplicationStatusDraft       ApplicationStatus = "draft"
	ApplicationStatusSubmitted   ApplicationStatus = "submitted"
	ApplicationStatusProcessing  ApplicationStatus = "processing"
	ApplicationStatusVisaApplied ApplicationStatus = "visa_applied"
	ApplicationStatusApproved    ApplicationStatus = "approved"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

// ApplicationStatuses lists every application state in lifecycle order
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusDraft,
	ApplicationStatusSubmitted,
	ApplicationStatusProcessing,
	ApplicationStatusVisaApplied,
	ApplicationStatusApproved,
	ApplicationStatusRejected,
}

// Valid reports whether s is a member of the status set
func (s ApplicationStatus) Valid() bool {
	for _, known := range ApplicationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseApplicationStatus validates a raw status value at the boundary
func ParseApplicationStatus(raw string) (ApplicationStatus, error) {
	status := ApplicationStatus(raw)
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidApplicationStatus, raw)
	}
	return status, nil
}

// Application is a student's application to one course
type Application struct {
	ID          int64             `json:"id" example:"7"`
	StudentID   int64             `json:"studentId" example:"12"`
	CourseID    int64             `json:"courseId" example:"4"`
	CounselorID *int64            `json:"counselorId,omitempty" example:"3"`
	Status      ApplicationStatus `json:"status" example:"draft"`
	SubmittedAt *time.Time        `json:"submittedAt,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`

	// Derived through the student, never stored on the application row
	BranchID       int64   `json:"branchId" example:"1"`
	BranchName     string  `json:"branchName,omitempty"`
	StudentName    string  `json:"studentName,omitempty"`
	CourseName     string  `json:"courseName,omitempty"`
	UniversityName string  `json:"universityName,omitempty"`
	CountryID      int64   `json:"countryId,omitempty"`
	CountryName    string  `json:"countryName,omitempty"`
	CounselorName  *string `json:"counselorName,omitempty"`
}

// EffectiveBranchID returns the branch of the application's student
func (a *Application) EffectiveBranchID() int64 {
	return a.BranchID
}

// Transition moves the application to the requested status.
// Any member of the status set is accepted from any state. The submission
// timestamp is stamped on the first entry into submitted and never rewritten.
func (a *Application) Transition(requested ApplicationStatus, now time.Time) error {
	if !requested.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidApplicationStatus, requested)
	}

	if requested == ApplicationStatusSubmitted && a.Status != ApplicationStatusSubmitted && a.SubmittedAt == nil {
		stamp := now
		a.SubmittedAt = &stamp
	}
	a.Status = requested
	a.UpdatedAt = now
	return nil
}

// ApplicationFilter narrows application listings
type ApplicationFilter struct {
	BranchID  *int64
	StudentID *int64
	Status    *ApplicationStatus
	CountryID *int64
	Page      int
	Size      int
}

// ApplicationDetail is an application together with its checklist-derived document view
type ApplicationDetail struct {
	Application
	Documents []ChecklistDocument `json:"documents"`
}
