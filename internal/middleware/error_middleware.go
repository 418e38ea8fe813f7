package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/consultdesk/internal/app/models/dto"
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
	"github.com/yigit/consultdesk/internal/pkg/logger"
)

type errorMapping struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// errorMappings is checked in order; the first sentinel matched by errors.Is wins
var errorMappings = []errorMapping{
	// authentication
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrInvalidFormat, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token format"},
	{apperrors.ErrUnauthenticated, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required"},

	// authorization
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},

	// not found
	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found"},
	{apperrors.ErrBranchNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Branch not found"},
	{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found"},
	{apperrors.ErrApplicationNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Application not found"},
	{apperrors.ErrCourseNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found"},
	{apperrors.ErrDocumentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Document not found"},
	{apperrors.ErrDocumentTypeNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Document type not found"},
	{apperrors.ErrChecklistNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Checklist not found"},
	{apperrors.ErrCountryNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Country not found"},
	{apperrors.ErrNotificationNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Notification not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},

	// guards
	{apperrors.ErrBranchHasRelations, http.StatusBadRequest, dto.ErrorCodeResourceInUse, "Branch is still in use"},
	{apperrors.ErrStudentHasApplications, http.StatusBadRequest, dto.ErrorCodeResourceInUse, "Student has applications"},
	{apperrors.ErrLastGlobalUser, http.StatusBadRequest, dto.ErrorCodeResourceInUse, "Cannot remove the last administrator"},
	{apperrors.ErrEmailAlreadyExists, http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, "Email already exists"},

	// validation
	{apperrors.ErrInvalidApplicationStatus, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid application status"},
	{apperrors.ErrInvalidDocumentStatus, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid document status"},
	{apperrors.ErrFileRequired, http.StatusBadRequest, dto.ErrorCodeInvalidFile, "File is required"},
	{apperrors.ErrFileTypeNotAllowed, http.StatusBadRequest, dto.ErrorCodeInvalidFile, "File type not allowed"},
	{apperrors.ErrFileTooLarge, http.StatusBadRequest, dto.ErrorCodeInvalidFile, "File too large"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Bad request"},

	// conflicts
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Conflict"},
}

// HandleAPIError writes the error response matching err and aborts the request
func HandleAPIError(c *gin.Context, err error) {
	status, detail := ResolveAPIError(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

// ResolveAPIError maps err to a status code and error detail. The message of a
// CustomError wrapping a known sentinel is passed through to the client.
func ResolveAPIError(err error) (int, *dto.ErrorDetail) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		detail := dto.NewErrorDetail(m.code, m.message)
		var custom *apperrors.CustomError
		if errors.As(err, &custom) {
			if custom.Message != "" {
				detail.Message = custom.Message
			}
			if len(custom.Details) > 0 {
				detail.WithDetails(custom.Details)
			}
		}
		return m.status, detail
	}
	return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
}
