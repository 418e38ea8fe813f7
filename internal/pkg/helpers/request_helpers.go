package helpers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
)

// ParseIDParam reads a positive int64 path parameter
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(fmt.Sprintf("Invalid %s", name))
	}
	return id, nil
}

// ParseOptionalIDQuery reads an optional positive int64 query parameter
func ParseOptionalIDQuery(c *gin.Context, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Invalid %s query parameter", name))
	}
	return &id, nil
}

// ParseIntQuery reads an integer query parameter bounded to [min, max]
func ParseIntQuery(c *gin.Context, name string, defaultValue, min, max int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < min || value > max {
		return 0, apperrors.NewValidationError(fmt.Sprintf("%s must be between %d and %d", name, min, max))
	}
	return value, nil
}

// ParseOptionalIDForm reads an optional positive int64 multipart form value
func ParseOptionalIDForm(c *gin.Context, name string) (*int64, error) {
	raw := c.PostForm(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Invalid %s form value", name))
	}
	return &id, nil
}

// OptionalPostForm returns a trimmed form value, nil when it is absent or blank
func OptionalPostForm(c *gin.Context, name string) *string {
	value := strings.TrimSpace(c.PostForm(name))
	if value == "" {
		return nil
	}
	return &value
}
