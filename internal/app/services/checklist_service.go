package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/consultdesk/internal/app/auth"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
)

// ChecklistService manages per-country document checklists
type ChecklistService struct {
	checklistRepo ChecklistStore
	courseRepo    CourseStore
	logger        zerolog.Logger
}

// NewChecklistService creates a new ChecklistService
func NewChecklistService(checklistRepo ChecklistStore, courseRepo CourseStore, logger zerolog.Logger) *ChecklistService {
	return &ChecklistService{
		checklistRepo: checklistRepo,
		courseRepo:    courseRepo,
		logger:        logger,
	}
}

// List returns every checklist with its items
func (s *ChecklistService) List(ctx context.Context, actor *models.Actor) ([]*models.Checklist, error) {
	if err := auth.Authorize(actor, auth.CapReadRecords); err != nil {
		return nil, err
	}
	return s.checklistRepo.List(ctx)
}

// Get returns one checklist
func (s *ChecklistService) Get(ctx context.Context, actor *models.Actor, id int64) (*models.Checklist, error) {
	if err := auth.Authorize(actor, auth.CapReadRecords); err != nil {
		return nil, err
	}
	return s.checklistRepo.GetByID(ctx, id)
}

// ListByCountry returns the checklists of one destination country
func (s *ChecklistService) ListByCountry(ctx context.Context, actor *models.Actor, countryID int64) ([]*models.Checklist, error) {
	if err := auth.Authorize(actor, auth.CapReadRecords); err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.GetCountry(ctx, countryID); err != nil {
		return nil, err
	}
	return s.checklistRepo.ListByCountry(ctx, countryID)
}

// Countries lists the destination countries checklists can target
func (s *ChecklistService) Countries(ctx context.Context, actor *models.Actor) ([]models.Country, error) {
	if err := auth.Authorize(actor, auth.CapReadRecords); err != nil {
		return nil, err
	}
	return s.courseRepo.ListCountries(ctx)
}

// Create stores a checklist and its items in one transaction
func (s *ChecklistService) Create(ctx context.Context, actor *models.Actor, checklist *models.Checklist) (*models.Checklist, error) {
	if err := auth.Authorize(actor, auth.CapManageChecklists); err != nil {
		return nil, err
	}
	if err := validateChecklist(checklist); err != nil {
		return nil, err
	}

	createdBy := actor.UserID
	checklist.CreatedBy = &createdBy
	if err := s.checklistRepo.Create(ctx, checklist); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("checklistID", checklist.ID).
		Int64("countryID", checklist.CountryID).
		Int("items", len(checklist.Items)).
		Msg("Checklist created")
	return s.checklistRepo.GetByID(ctx, checklist.ID)
}

// Update replaces a checklist's fields and items in one transaction
func (s *ChecklistService) Update(ctx context.Context, actor *models.Actor, id int64, checklist *models.Checklist) (*models.Checklist, error) {
	if err := auth.Authorize(actor, auth.CapManageChecklists); err != nil {
		return nil, err
	}
	if err := validateChecklist(checklist); err != nil {
		return nil, err
	}

	checklist.ID = id
	if err := s.checklistRepo.Update(ctx, checklist); err != nil {
		return nil, err
	}
	return s.checklistRepo.GetByID(ctx, id)
}

// Delete removes a checklist and its items in one transaction
func (s *ChecklistService) Delete(ctx context.Context, actor *models.Actor, id int64) error {
	if err := auth.Authorize(actor, auth.CapManageChecklists); err != nil {
		return err
	}
	return s.checklistRepo.Delete(ctx, id)
}

func validateChecklist(checklist *models.Checklist) error {
	checklist.Name = strings.TrimSpace(checklist.Name)
	if checklist.Name == "" {
		return apperrors.NewValidationError("name is required")
	}
	seen := make(map[int64]struct{}, len(checklist.Items))
	for _, item := range checklist.Items {
		if _, dup := seen[item.DocumentID]; dup {
			return apperrors.NewValidationError(fmt.Sprintf("document %d is listed more than once", item.DocumentID))
		}
		seen[item.DocumentID] = struct{}{}
	}
	return nil
}
