package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
)

func testContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(3, 20)
	assert.Equal(t, uint64(40), offset)
	assert.Equal(t, uint64(20), limit)

	offset, limit = CalculateOffsetLimit(0, 1000)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, uint64(DefaultPageSize), limit)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(37, 2, 10)
	assert.Equal(t, 4, info.TotalPages)
	assert.Equal(t, 2, info.CurrentPage)

	info = NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, info.TotalPages)

	info = NewPaginationInfo(5, 9, 10)
	assert.Equal(t, 1, info.CurrentPage)
}

func TestParsePaginationParams(t *testing.T) {
	page, size := ParsePaginationParams(testContext(t, "/students?page=3&size=25"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, size)

	page, size = ParsePaginationParams(testContext(t, "/students?page=-1&size=abc"))
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPageSize, size)
}

func TestParseOptionalIDQuery(t *testing.T) {
	id, err := ParseOptionalIDQuery(testContext(t, "/applications?branch=4"), "branch")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(4), *id)

	id, err = ParseOptionalIDQuery(testContext(t, "/applications"), "branch")
	require.NoError(t, err)
	assert.Nil(t, id)

	_, err = ParseOptionalIDQuery(testContext(t, "/applications?branch=x"), "branch")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestParseIntQuery(t *testing.T) {
	days, err := ParseIntQuery(testContext(t, "/documents/expiring?days=45"), "days", 30, 1, 365)
	require.NoError(t, err)
	assert.Equal(t, 45, days)

	days, err = ParseIntQuery(testContext(t, "/documents/expiring"), "days", 30, 1, 365)
	require.NoError(t, err)
	assert.Equal(t, 30, days)

	_, err = ParseIntQuery(testContext(t, "/documents/expiring?days=0"), "days", 30, 1, 365)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestExpiryWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 17, 45, 0, 0, time.UTC)
	from, to := ExpiryWindow(now, 30)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 4, 9, 0, 0, 0, 0, time.UTC), to)
}

func TestNullIfEmpty(t *testing.T) {
	blank := "   "
	assert.Nil(t, NullIfEmpty(&blank))
	assert.Nil(t, NullIfEmpty(nil))

	value := " +90 555 "
	got := NullIfEmpty(&value)
	require.NotNil(t, got)
	assert.Equal(t, "+90 555", *got)
}
