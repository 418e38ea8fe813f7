package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// User Errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrLastGlobalUser     = errors.New("cannot delete the last administrator")
)

// Branch Errors
var (
	ErrBranchNotFound     = errors.New("branch not found")
	ErrBranchHasRelations = errors.New("cannot delete branch with associated users or students")
)

// Student Errors
var (
	ErrStudentNotFound        = errors.New("student not found")
	ErrStudentHasApplications = errors.New("cannot delete student with existing applications")
)

// Application Errors
var (
	ErrApplicationNotFound      = errors.New("application not found")
	ErrInvalidApplicationStatus = errors.New("invalid application status")
	ErrCourseNotFound           = errors.New("course not found")
)

// Document Errors
var (
	ErrDocumentNotFound      = errors.New("document not found")
	ErrDocumentTypeNotFound  = errors.New("document type not found")
	ErrInvalidDocumentStatus = errors.New("invalid document status")
	ErrFileRequired          = errors.New("file is required")
	ErrFileTypeNotAllowed    = errors.New("file type not allowed")
	ErrFileTooLarge          = errors.New("file exceeds the upload size limit")
)

// Checklist and notification Errors
var (
	ErrChecklistNotFound    = errors.New("checklist not found")
	ErrCountryNotFound      = errors.New("country not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// CustomError carries a client facing message on top of a sentinel.
// errors.Is matches the sentinel; Error returns the message.
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

func (e *CustomError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError attaches a client facing message to err
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// WithDetails attaches structured context, such as per-field problems
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

func NewResourceNotFoundError(message string) error {
	return NewCustomError(ErrResourceNotFound, message)
}

func NewForbiddenError(message string) error {
	return NewCustomError(ErrPermissionDenied, message)
}

func NewBadRequestError(message string) error {
	return NewCustomError(ErrBadRequest, message)
}

// NewValidationError reports input that failed a domain rule
func NewValidationError(message string) error {
	return NewCustomError(ErrValidationFailed, message)
}
