package helpers

import (
	"strings"

	"github.com/Masterminds/squirrel"
)

// NullIfEmpty returns nil for blank strings so they are stored as NULL
func NullIfEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

// WhereBranch narrows a query to one branch when branchID is set
func WhereBranch(query squirrel.SelectBuilder, column string, branchID *int64) squirrel.SelectBuilder {
	if branchID == nil {
		return query
	}
	return query.Where(squirrel.Eq{column: *branchID})
}

// WhereOptional adds an equality filter only when value is non-nil
func WhereOptional[T any](query squirrel.SelectBuilder, column string, value *T) squirrel.SelectBuilder {
	if value == nil {
		return query
	}
	return query.Where(squirrel.Eq{column: *value})
}
