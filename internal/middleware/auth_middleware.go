package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/consultdesk/internal/app/auth"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/app/models/dto"
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
	jwtauth "github.com/yigit/consultdesk/internal/pkg/auth"
)

const (
	actorKey  = "actor"
	userIDKey = "userID"

	// CronAPIKeyHeader carries the shared secret of scheduler callbacks
	CronAPIKeyHeader = "x-api-key"
)

// ActorResolver turns a bearer token into the calling actor
type ActorResolver interface {
	ResolveActor(ctx context.Context, token string) (*models.Actor, error)
}

// AuthMiddleware authenticates requests and enforces capabilities
type AuthMiddleware struct {
	resolver ActorResolver
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(resolver ActorResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// tokenFromRequest reads the bearer token from the Authorization header, or from
// the token query parameter used by websocket clients
func tokenFromRequest(c *gin.Context) (string, error) {
	if header := c.GetHeader("Authorization"); header != "" {
		return jwtauth.ExtractBearerToken(strings.Trim(header, "\"'"))
	}
	if token := c.Query("token"); token != "" {
		return token, nil
	}
	return "", apperrors.NewCustomError(apperrors.ErrUnauthenticated, "Authorization header missing")
}

// JWTAuth requires a valid token and stores the resolved actor on the context
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := tokenFromRequest(c)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		actor, err := m.resolver.ResolveActor(c.Request.Context(), token)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Set(actorKey, actor)
		c.Set(userIDKey, actor.UserID)
		c.Next()
	}
}

// OptionalAuth resolves the actor when a token is present and lets anonymous
// requests through. An invalid token is still rejected.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" && c.Query("token") == "" {
			c.Next()
			return
		}
		m.JWTAuth()(c)
	}
}

// RequireCapability rejects actors whose role lacks the capability
func (m *AuthMiddleware) RequireCapability(capability auth.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			HandleAPIError(c, apperrors.ErrUnauthenticated)
			return
		}
		if err := auth.Authorize(actor, capability); err != nil {
			HandleAPIError(c, err)
			return
		}
		c.Next()
	}
}

// CronAPIKey guards scheduler callbacks with a shared secret. An empty key
// disables the endpoint.
func CronAPIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(CronAPIKeyHeader)
		if key == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Invalid API key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
			return
		}
		c.Next()
	}
}

// GetActor returns the actor stored by JWTAuth
func GetActor(c *gin.Context) (*models.Actor, bool) {
	value, exists := c.Get(actorKey)
	if !exists {
		return nil, false
	}
	actor, ok := value.(*models.Actor)
	return actor, ok && actor != nil
}

// MustGetActor returns the actor or writes a 401 and returns false
func MustGetActor(c *gin.Context) (*models.Actor, bool) {
	actor, ok := GetActor(c)
	if !ok {
		HandleAPIError(c, apperrors.ErrUnauthenticated)
	}
	return actor, ok
}
