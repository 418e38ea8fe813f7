package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/consultdesk/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1
)

// normalizePage replaces out of range values with the defaults
func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}

// CalculateOffsetLimit converts a 1-based page into SQL offset and limit
func CalculateOffsetLimit(page, size int) (offset uint64, limit uint64) {
	page, size = normalizePage(page, size)
	return uint64((page - 1) * size), uint64(size)
}

// NewPaginationInfo describes a page of a result set of totalItems rows.
// An empty result still has one page; a page past the end reports the last page.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	page, size = normalizePage(page, size)

	totalPages := 1
	if totalItems > 0 {
		totalPages = int((totalItems + int64(size) - 1) / int64(size))
	}

	return dto.PaginationInfo{
		CurrentPage: min(page, totalPages),
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}

// ParsePaginationParams reads page and size query parameters
func ParsePaginationParams(c *gin.Context) (page, size int) {
	return normalizePage(queryInt(c, "page", DefaultPage), queryInt(c, "size", DefaultPageSize))
}

// ParseLimitOffset reads limit/offset style paging used by feeds such as notifications
func ParseLimitOffset(c *gin.Context, defaultLimit int) (limit, offset uint64) {
	l := queryInt(c, "limit", defaultLimit)
	if l < 1 || l > MaxPageSize {
		l = defaultLimit
	}
	return uint64(l), uint64(max(queryInt(c, "offset", 0), 0))
}

// queryInt returns fallback when the parameter is missing or not a number
func queryInt(c *gin.Context, name string, fallback int) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return n
}
