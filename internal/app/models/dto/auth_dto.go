package dto

import "github.com/yigit/consultdesk/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@consultdesk.local"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

// RegisterRequest represents a staff registration request
type RegisterRequest struct {
	FullName string          `json:"fullName" binding:"required,min=2,max=100" example:"Jane Doe"`
	Email    string          `json:"email" binding:"required,email" example:"jane@consultdesk.local"`
	Password string          `json:"password" binding:"required,min=8" example:"s3cret-pass"`
	Role     models.RoleType `json:"role,omitempty" binding:"omitempty,role" example:"counselor"`
	BranchID *int64          `json:"branchId,omitempty" binding:"omitempty,min=1" example:"1"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"2592000"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  *models.User  `json:"user"`
}

// NewAuthResponse pairs a user with a freshly issued bearer token
func NewAuthResponse(user *models.User, token string, expiresIn int) *AuthResponse {
	return &AuthResponse{
		Token: TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User: user,
	}
}
