package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/consultdesk/internal/app/auth"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/app/models/dto"
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
)

const validToken = "header.payload.signature"

type stubResolver struct {
	actor *models.Actor
	err   error
	seen  string
}

func (r *stubResolver) ResolveActor(_ context.Context, token string) (*models.Actor, error) {
	r.seen = token
	return r.actor, r.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func newAuthRouter(resolver ActorResolver, handlers ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	m := NewAuthMiddleware(resolver)
	chain := append([]gin.HandlerFunc{m.JWTAuth()}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		actor, _ := GetActor(c)
		c.JSON(http.StatusOK, gin.H{"userID": actor.UserID})
	})
	router.GET("/private", chain...)
	return router
}

func TestJWTAuthStoresActor(t *testing.T) {
	resolver := &stubResolver{actor: &models.Actor{UserID: 7, Role: models.RoleCounselor, BranchID: new(int64)}}
	router := newAuthRouter(resolver)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userID":7}`, w.Body.String())
	assert.Equal(t, validToken, resolver.seen)
}

func TestJWTAuthAcceptsQueryToken(t *testing.T) {
	resolver := &stubResolver{actor: &models.Actor{UserID: 7, Role: models.RoleAdmin}}
	router := newAuthRouter(resolver)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private?token="+validToken, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, validToken, resolver.seen)
}

func TestJWTAuthRejects(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		resolver *stubResolver
		wantCode dto.ErrorCode
	}{
		{"missing header", "", &stubResolver{}, dto.ErrorCodeUnauthorized},
		{"malformed header", "Bearer nope", &stubResolver{}, dto.ErrorCodeInvalidToken},
		{"expired token", "Bearer " + validToken, &stubResolver{err: apperrors.ErrTokenExpired}, dto.ErrorCodeExpiredToken},
		{"deleted user", "Bearer " + validToken, &stubResolver{err: apperrors.NewCustomError(apperrors.ErrUnauthenticated, "User no longer exists")}, dto.ErrorCodeUnauthorized},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthRouter(tt.resolver)
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			body := decodeError(t, w)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	resolver := &stubResolver{actor: &models.Actor{UserID: 3, Role: models.RoleAdmin}}
	router := gin.New()
	router.POST("/register", NewAuthMiddleware(resolver).OptionalAuth(), func(c *gin.Context) {
		if actor, ok := GetActor(c); ok {
			c.JSON(http.StatusOK, gin.H{"caller": actor.UserID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"caller": nil})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/register", nil))
	assert.JSONEq(t, `{"caller":null}`, w.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/register", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.JSONEq(t, `{"caller":3}`, w.Body.String())

	resolver.err = apperrors.ErrTokenInvalid
	req = httptest.NewRequest(http.MethodPost, "/register", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireCapability(t *testing.T) {
	branch := int64(1)
	resolver := &stubResolver{actor: &models.Actor{UserID: 9, Role: models.RoleCounselor, BranchID: &branch}}
	m := NewAuthMiddleware(resolver)
	router := newAuthRouter(resolver, m.RequireCapability(auth.CapManageBranches))

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrorCodeForbidden, decodeError(t, w).Error.Code)

	resolver.actor = &models.Actor{UserID: 1, Role: models.RoleSuperAdmin}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCronAPIKey(t *testing.T) {
	newRouter := func(key string) *gin.Engine {
		router := gin.New()
		router.POST("/cron", CronAPIKey(key), func(c *gin.Context) { c.Status(http.StatusOK) })
		return router
	}

	tests := []struct {
		name     string
		key      string
		provided string
		want     int
	}{
		{"matching key", "s3cret", "s3cret", http.StatusOK},
		{"wrong key", "s3cret", "guess", http.StatusUnauthorized},
		{"missing key", "s3cret", "", http.StatusUnauthorized},
		{"disabled", "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/cron", nil)
			if tt.provided != "" {
				req.Header.Set(CronAPIKeyHeader, tt.provided)
			}
			w := httptest.NewRecorder()
			newRouter(tt.key).ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    dto.ErrorCode
		wantMessage string
	}{
		{"forbidden keeps message", apperrors.NewForbiddenError("not authorized to access data of this branch"), http.StatusForbidden, dto.ErrorCodeForbidden, "not authorized to access data of this branch"},
		{"not found", apperrors.ErrApplicationNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Application not found"},
		{"wrapped not found", errors.Join(errors.New("loading"), apperrors.ErrStudentNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found"},
		{"branch in use", apperrors.ErrBranchHasRelations, http.StatusBadRequest, dto.ErrorCodeResourceInUse, "Branch is still in use"},
		{"last admin", apperrors.ErrLastGlobalUser, http.StatusBadRequest, dto.ErrorCodeResourceInUse, "Cannot remove the last administrator"},
		{"duplicate email", apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "A user with this email already exists"), http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, "A user with this email already exists"},
		{"validation", apperrors.NewValidationError("branchId is required"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "branchId is required"},
		{"file type", apperrors.ErrFileTypeNotAllowed, http.StatusBadRequest, dto.ErrorCodeInvalidFile, "File type not allowed"},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
		{"name taken", apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists, "A branch with this name already exists"), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "A branch with this name already exists"},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.True(t, c.IsAborted())
			body := decodeError(t, w)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantMessage, body.Error.Message)
		})
	}
}

func TestHandleAPIErrorPassesDetails(t *testing.T) {
	err := apperrors.NewCustomError(apperrors.ErrValidationFailed, "Validation failed").
		WithDetails(map[string]interface{}{"rows": []string{"Row 3: Missing email"}})

	status, detail := ResolveAPIError(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, map[string]interface{}{"rows": []string{"Row 3: Missing email"}}, detail.Details)
}

type statusBody struct {
	Status     string  `json:"status" binding:"required,appstatus"`
	ExpiryDate *string `json:"expiryDate" binding:"omitempty,date"`
}

func TestBindJSONUsesCustomRules(t *testing.T) {
	require.NoError(t, RegisterValidators())

	router := gin.New()
	router.PUT("/status", func(c *gin.Context) {
		var body statusBody
		if !BindJSON(c, &body) {
			return
		}
		c.Status(http.StatusOK)
	})

	tests := []struct {
		body      string
		want      int
		wantField string
	}{
		{`{"status":"submitted","expiryDate":"2027-01-31"}`, http.StatusOK, ""},
		{`{"status":"shipped"}`, http.StatusBadRequest, "status"},
		{`{"status":"draft","expiryDate":"tomorrow"}`, http.StatusBadRequest, "expiryDate"},
		{`{`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/status", strings.NewReader(tt.body)))
		assert.Equal(t, tt.want, w.Code, tt.body)
		if tt.wantField != "" {
			assert.Equal(t, tt.wantField, decodeError(t, w).Error.Field, tt.body)
		}
	}
}

func TestRequestLoggerRecordsActor(t *testing.T) {
	var buf bytes.Buffer
	router := gin.New()
	router.Use(RequestLogger(zerolog.New(&buf)))
	router.GET("/x", func(c *gin.Context) {
		c.Set(actorKey, &models.Actor{UserID: 42, Role: models.RoleAdmin})
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, float64(404), entry["status"])
	assert.Equal(t, float64(42), entry["actorID"])
	assert.Equal(t, "/x", entry["path"])
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"https://app.consultdesk.local"}))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.consultdesk.local")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.consultdesk.local", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
