package services

import (
	"context"

	"github.com/yigit/consultdesk/internal/app/auth"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
)

// DashboardService serves aggregate statistics
type DashboardService struct {
	dashboardRepo DashboardStore
	branchRepo    BranchStore
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(dashboardRepo DashboardStore, branchRepo BranchStore) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		branchRepo:    branchRepo,
	}
}

// Stats returns the dashboard of one branch, or of every branch for global actors
// who do not ask for one. Branch actors naming another branch are refused.
func (s *DashboardService) Stats(ctx context.Context, actor *models.Actor, requestedBranch *int64) (*models.DashboardStats, error) {
	if err := auth.Authorize(actor, auth.CapReadRecords); err != nil {
		return nil, err
	}
	if requestedBranch != nil {
		if err := auth.CheckBranchAccess(actor, *requestedBranch); err != nil {
			return nil, err
		}
		if auth.IsGlobal(actor.Role) {
			exists, err := s.branchRepo.Exists(ctx, *requestedBranch)
			if err != nil {
				return nil, err
			}
			if !exists {
				return nil, apperrors.ErrBranchNotFound
			}
		}
	}

	branchID, err := auth.ScopeBranchFilter(actor, requestedBranch)
	if err != nil {
		return nil, err
	}
	return s.dashboardRepo.Stats(ctx, branchID)
}

// BranchComparison returns per-branch totals side by side
func (s *DashboardService) BranchComparison(ctx context.Context, actor *models.Actor) ([]models.BranchStats, error) {
	if err := auth.Authorize(actor, auth.CapViewGlobalAnalytics); err != nil {
		return nil, err
	}
	return s.dashboardRepo.BranchComparison(ctx)
}
