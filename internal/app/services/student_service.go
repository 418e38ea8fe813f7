package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/consultdesk/internal/app/auth"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/app/models/dto"
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
	"github.com/yigit/consultdesk/internal/pkg/helpers"
)

// StudentService manages students within the actor's branch scope
type StudentService struct {
	studentRepo     StudentStore
	branchRepo      BranchStore
	applicationRepo ApplicationStore
	logger          zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo StudentStore,
	branchRepo BranchStore,
	applicationRepo ApplicationStore,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo:     studentRepo,
		branchRepo:      branchRepo,
		applicationRepo: applicationRepo,
		logger:          logger,
	}
}

// List returns a page of students visible to the actor
func (s *StudentService) List(ctx context.Context, actor *models.Actor, requestedBranch *int64, page, size int) ([]*models.Student, dto.PaginationInfo, error) {
	if err := auth.Authorize(actor, auth.CapReadRecords); err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	branchID, err := auth.ScopeBranchFilter(actor, requestedBranch)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	students, total, err := s.studentRepo.List(ctx, branchID, page, size)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return students, helpers.NewPaginationInfo(total, page, size), nil
}

// Get returns one student
func (s *StudentService) Get(ctx context.Context, actor *models.Actor, id int64) (*models.Student, error) {
	return s.load(ctx, actor, auth.CapReadRecords, id)
}

func (s *StudentService) load(ctx context.Context, actor *models.Actor, capability auth.Capability, id int64) (*models.Student, error) {
	if err := auth.Authorize(actor, capability); err != nil {
		return nil, err
	}
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Guard(actor, capability, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Create registers a student. Branch actors always register into their own
// branch; global actors must name one.
func (s *StudentService) Create(ctx context.Context, actor *models.Actor, req *dto.CreateStudentRequest) (*models.Student, error) {
	if err := auth.Authorize(actor, auth.CapWriteRecords); err != nil {
		return nil, err
	}

	branchID, err := s.targetBranch(ctx, actor, req.BranchID)
	if err != nil {
		return nil, err
	}

	registeredBy := actor.UserID
	student := &models.Student{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        helpers.NullIfEmpty(req.Phone),
		BranchID:     branchID,
		RegisteredBy: &registeredBy,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("studentID", student.ID).
		Int64("branchID", student.BranchID).
		Int64("actorID", actor.UserID).
		Msg("Student created")
	return s.studentRepo.GetByID(ctx, student.ID)
}

// targetBranch resolves the branch a new record is created in
func (s *StudentService) targetBranch(ctx context.Context, actor *models.Actor, requested *int64) (int64, error) {
	if !auth.IsGlobal(actor.Role) {
		if actor.BranchID == nil {
			return 0, apperrors.NewForbiddenError("user is not assigned to a branch")
		}
		if requested != nil && *requested != *actor.BranchID {
			return 0, apperrors.NewForbiddenError("not authorized to create records in another branch")
		}
		return *actor.BranchID, nil
	}

	if requested == nil {
		return 0, apperrors.NewValidationError("branchId is required")
	}
	exists, err := s.branchRepo.Exists(ctx, *requested)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, apperrors.ErrBranchNotFound
	}
	return *requested, nil
}

// Update edits a student's contact details. Only global actors may change who registered the student.
func (s *StudentService) Update(ctx context.Context, actor *models.Actor, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.load(ctx, actor, auth.CapWriteRecords, id)
	if err != nil {
		return nil, err
	}

	student.FullName = strings.TrimSpace(req.FullName)
	student.Email = strings.ToLower(strings.TrimSpace(req.Email))
	student.Phone = helpers.NullIfEmpty(req.Phone)
	if req.RegisteredBy != nil && auth.IsGlobal(actor.Role) {
		student.RegisteredBy = req.RegisteredBy
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Delete removes a student that has no applications
func (s *StudentService) Delete(ctx context.Context, actor *models.Actor, id int64) error {
	if _, err := s.load(ctx, actor, auth.CapWriteRecords, id); err != nil {
		return err
	}
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("studentID", id).Int64("actorID", actor.UserID).Msg("Student deleted")
	return nil
}

// Applications lists every application of one student
func (s *StudentService) Applications(ctx context.Context, actor *models.Actor, id int64) ([]*models.Application, error) {
	student, err := s.load(ctx, actor, auth.CapReadRecords, id)
	if err != nil {
		return nil, err
	}
	apps, _, err := s.applicationRepo.List(ctx, models.ApplicationFilter{StudentID: &student.ID})
	return apps, err
}
