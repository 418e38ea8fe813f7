package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/consultdesk/internal/app/auth"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/app/models/dto"
	"github.com/yigit/consultdesk/internal/pkg/helpers"
)

// BranchService manages branch offices
type BranchService struct {
	branchRepo BranchStore
	userRepo   UserStore
	logger     zerolog.Logger
}

// NewBranchService creates a new BranchService
func NewBranchService(branchRepo BranchStore, userRepo UserStore, logger zerolog.Logger) *BranchService {
	return &BranchService{
		branchRepo: branchRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// List returns every branch for global actors and only the own branch otherwise
func (s *BranchService) List(ctx context.Context, actor *models.Actor) ([]*models.Branch, error) {
	if err := auth.Authorize(actor, auth.CapReadRecords); err != nil {
		return nil, err
	}
	onlyID, err := auth.ScopeBranchFilter(actor, nil)
	if err != nil {
		return nil, err
	}
	return s.branchRepo.List(ctx, onlyID)
}

// Get returns one branch
func (s *BranchService) Get(ctx context.Context, actor *models.Actor, id int64) (*models.Branch, error) {
	if err := auth.Authorize(actor, auth.CapReadRecords); err != nil {
		return nil, err
	}
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Guard(actor, auth.CapReadRecords, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// Create adds a branch
func (s *BranchService) Create(ctx context.Context, actor *models.Actor, req *dto.BranchRequest) (*models.Branch, error) {
	if err := auth.Authorize(actor, auth.CapManageBranches); err != nil {
		return nil, err
	}
	branch := branchFromRequest(req)
	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("branchID", branch.ID).Str("name", branch.Name).Msg("Branch created")
	return branch, nil
}

// Update edits a branch
func (s *BranchService) Update(ctx context.Context, actor *models.Actor, id int64, req *dto.BranchRequest) (*models.Branch, error) {
	if err := auth.Authorize(actor, auth.CapManageBranches); err != nil {
		return nil, err
	}
	branch := branchFromRequest(req)
	branch.ID = id
	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, err
	}
	return s.branchRepo.GetByID(ctx, id)
}

// Delete removes a branch that owns no users and no students
func (s *BranchService) Delete(ctx context.Context, actor *models.Actor, id int64) error {
	if err := auth.Authorize(actor, auth.CapManageBranches); err != nil {
		return err
	}
	if err := s.branchRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("actorID", actor.UserID).Int64("branchID", id).Msg("Branch deleted")
	return nil
}

// Staff lists the users attached to a branch
func (s *BranchService) Staff(ctx context.Context, actor *models.Actor, id int64) ([]*models.User, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx, &id)
}

func branchFromRequest(req *dto.BranchRequest) *models.Branch {
	return &models.Branch{
		Name:    strings.TrimSpace(req.Name),
		Address: helpers.NullIfEmpty(req.Address),
		Phone:   helpers.NullIfEmpty(req.Phone),
		Email:   helpers.NullIfEmpty(req.Email),
	}
}
