package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/consultdesk/internal/app/auth"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/app/models/dto"
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
)

// UserService manages staff accounts
type UserService struct {
	userRepo   UserStore
	branchRepo BranchStore
	logger     zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo UserStore, branchRepo BranchStore, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo:   userRepo,
		branchRepo: branchRepo,
		logger:     logger,
	}
}

// List returns the users visible to the actor
func (s *UserService) List(ctx context.Context, actor *models.Actor, requestedBranch *int64) ([]*models.User, error) {
	if err := auth.Authorize(actor, auth.CapReadRecords); err != nil {
		return nil, err
	}
	branchID, err := auth.ScopeBranchFilter(actor, requestedBranch)
	if err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx, branchID)
}

// Get returns one user if it belongs to a branch the actor can see
func (s *UserService) Get(ctx context.Context, actor *models.Actor, id int64) (*models.User, error) {
	if err := auth.Authorize(actor, auth.CapReadRecords); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Guard(actor, auth.CapReadRecords, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update edits a user's name, email and branch
func (s *UserService) Update(ctx context.Context, actor *models.Actor, id int64, req *dto.UpdateUserRequest) (*models.User, error) {
	if err := auth.Authorize(actor, auth.CapManageUsers); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	branchID, err := s.branchForRole(ctx, user.Role, req.BranchID, user.BranchID)
	if err != nil {
		return nil, err
	}

	user.FullName = strings.TrimSpace(req.FullName)
	user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	user.BranchID = branchID
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "A user with this email already exists")
		}
		return nil, err
	}
	return s.userRepo.GetByID(ctx, id)
}

// UpdateRole reassigns a user's role. Demoting the last global user is refused.
func (s *UserService) UpdateRole(ctx context.Context, actor *models.Actor, id int64, req *dto.UpdateRoleRequest) (*models.User, error) {
	if err := auth.Authorize(actor, auth.CapManageUsers); err != nil {
		return nil, err
	}
	if err := auth.AuthorizeRoleAssignment(actor, req.Role); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if auth.IsGlobal(user.Role) && !auth.IsGlobal(req.Role) {
		if err := s.ensureAnotherGlobal(ctx); err != nil {
			return nil, err
		}
	}

	branchID, err := s.branchForRole(ctx, req.Role, req.BranchID, user.BranchID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateRole(ctx, id, req.Role, branchID); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("actorID", actor.UserID).
		Int64("userID", id).
		Str("from", string(user.Role)).
		Str("to", string(req.Role)).
		Msg("User role changed")

	return s.userRepo.GetByID(ctx, id)
}

// Delete removes a user. The last global user can never be deleted.
func (s *UserService) Delete(ctx context.Context, actor *models.Actor, id int64) error {
	if err := auth.Authorize(actor, auth.CapManageUsers); err != nil {
		return err
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if auth.IsGlobal(user.Role) {
		if err := s.ensureAnotherGlobal(ctx); err != nil {
			return err
		}
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("actorID", actor.UserID).Int64("userID", id).Msg("User deleted")
	return nil
}

// Roles lists every role with its scope and capabilities
func (s *UserService) Roles() []dto.RoleResponse {
	table := auth.Roles()
	roles := make([]dto.RoleResponse, 0, len(table))
	for _, role := range models.AllRoles {
		policy := table[role]
		capabilities := make([]string, 0, len(policy.Capabilities))
		for _, capability := range policy.Capabilities {
			capabilities = append(capabilities, string(capability))
		}
		roles = append(roles, dto.RoleResponse{
			Role:         role,
			Scope:        string(policy.Scope),
			Capabilities: capabilities,
		})
	}
	return roles
}

func (s *UserService) ensureAnotherGlobal(ctx context.Context) error {
	count, err := s.userRepo.CountGlobal(ctx)
	if err != nil {
		return err
	}
	if count <= 1 {
		return apperrors.ErrLastGlobalUser
	}
	return nil
}

// branchForRole resolves the branch a user of the given role must carry.
// Global roles carry none; branch roles need an existing branch.
func (s *UserService) branchForRole(ctx context.Context, role models.RoleType, requested, current *int64) (*int64, error) {
	if auth.IsGlobal(role) {
		return nil, nil
	}
	branchID := requested
	if branchID == nil {
		branchID = current
	}
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
	return branchID, nil
}
