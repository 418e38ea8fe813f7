package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/consultdesk/internal/app/auth"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/app/models/dto"
	jwtauth "github.com/yigit/consultdesk/internal/pkg/auth"
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
	"github.com/yigit/consultdesk/internal/pkg/validation"
)

// AuthService handles authentication, registration and identity resolution
type AuthService struct {
	userRepo   UserStore
	branchRepo BranchStore
	jwtService *jwtauth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo UserStore,
	branchRepo BranchStore,
	jwtService *jwtauth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		branchRepo: branchRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// validatePassword checks if password meets requirements
func (s *AuthService) validatePassword(password string) error {
	if len(password) < validation.PasswordMinLength {
		return apperrors.NewValidationError(fmt.Sprintf("Password must be at least %d characters long", validation.PasswordMinLength))
	}
	if !validation.StrongPassword(password) {
		return apperrors.NewValidationError("Password must contain at least one letter and one digit")
	}
	return nil
}

// ResolveActor validates a bearer token and refreshes role and branch from the
// database. This is the only place an Actor is built from a credential.
func (s *AuthService) ResolveActor(ctx context.Context, token string) (*models.Actor, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrUnauthenticated, "User no longer exists")
		}
		return nil, err
	}
	return user.Actor(), nil
}

// Register creates a staff account. callerID is the authenticated user making
// the request, if any; global roles are only granted when that user, re-read
// from the database, holds a global role.
func (s *AuthService) Register(ctx context.Context, callerID *int64, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleCounselor
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Unknown role %q", role))
	}

	branchID := req.BranchID
	if auth.IsGlobal(role) {
		if err := s.verifyGlobalCaller(ctx, callerID, role); err != nil {
			return nil, err
		}
		branchID = nil
	} else {
		if branchID == nil {
			return nil, apperrors.NewValidationError("branchId is required for branch roles")
		}
		exists, err := s.branchRepo.Exists(ctx, *branchID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.ErrBranchNotFound
		}
	}

	hashed, err := jwtauth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hashed,
		Role:     role,
		BranchID: branchID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "A user with this email already exists")
		}
		return nil, err
	}

	s.logger.Info().
		Int64("userID", user.ID).
		Str("role", string(user.Role)).
		Msg("User registered")

	return s.issue(user)
}

func (s *AuthService) verifyGlobalCaller(ctx context.Context, callerID *int64, role models.RoleType) error {
	if callerID == nil {
		return apperrors.NewForbiddenError("Only administrators can create administrator accounts")
	}
	caller, err := s.userRepo.GetByID(ctx, *callerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrUnauthenticated
		}
		return err
	}
	if err := auth.AuthorizeRoleAssignment(caller.Actor(), role); err != nil {
		return apperrors.NewForbiddenError("Only administrators can create administrator accounts")
	}
	return nil
}

// Login authenticates a user
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !jwtauth.CheckPassword(user.Password, req.Password) {
		s.logger.Warn().Str("email", req.Email).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issue(user)
}

// Me returns the caller's current record
func (s *AuthService) Me(ctx context.Context, actor *models.Actor) (*models.User, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return s.userRepo.GetByID(ctx, actor.UserID)
}

func (s *AuthService) issue(user *models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate access token")
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	return dto.NewAuthResponse(user, token, expiresIn), nil
}
