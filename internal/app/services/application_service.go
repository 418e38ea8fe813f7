package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/consultdesk/internal/app/auth"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/app/models/dto"
	"github.com/yigit/consultdesk/internal/pkg/filestorage"
	"github.com/yigit/consultdesk/internal/pkg/helpers"
)

// ApplicationService drives applications through their lifecycle
type ApplicationService struct {
	applicationRepo ApplicationStore
	studentRepo     StudentStore
	courseRepo      CourseStore
	checklistRepo   ChecklistStore
	documentRepo    DocumentStore
	files           filestorage.FileStorage
	logger          zerolog.Logger
	now             func() time.Time
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	applicationRepo ApplicationStore,
	studentRepo StudentStore,
	courseRepo CourseStore,
	checklistRepo ChecklistStore,
	documentRepo DocumentStore,
	files filestorage.FileStorage,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		studentRepo:     studentRepo,
		courseRepo:      courseRepo,
		checklistRepo:   checklistRepo,
		documentRepo:    documentRepo,
		files:           files,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *ApplicationService) load(ctx context.Context, actor *models.Actor, capability auth.Capability, id int64) (*models.Application, error) {
	if err := auth.Authorize(actor, capability); err != nil {
		return nil, err
	}
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Guard(actor, capability, app); err != nil {
		return nil, err
	}
	return app, nil
}

// Create opens a draft application for a student of the actor's branch.
// The creating user becomes the counselor.
func (s *ApplicationService) Create(ctx context.Context, actor *models.Actor, req *dto.CreateApplicationRequest) (*models.Application, error) {
	if err := auth.Authorize(actor, auth.CapWriteRecords); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if err := auth.Guard(actor, auth.CapWriteRecords, student); err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.GetCourse(ctx, req.CourseID); err != nil {
		return nil, err
	}

	counselorID := actor.UserID
	app := &models.Application{
		StudentID:   student.ID,
		CourseID:    req.CourseID,
		CounselorID: &counselorID,
		Status:      models.ApplicationStatusDraft,
	}
	if err := s.applicationRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("applicationID", app.ID).
		Int64("studentID", student.ID).
		Int64("actorID", actor.UserID).
		Msg("Application created")
	return s.applicationRepo.GetByID(ctx, app.ID)
}

// Get returns an application with every checklist document of its destination
// country, merged with what has been uploaded so far
func (s *ApplicationService) Get(ctx context.Context, actor *models.Actor, id int64) (*models.ApplicationDetail, error) {
	app, err := s.load(ctx, actor, auth.CapReadRecords, id)
	if err != nil {
		return nil, err
	}

	requirements, err := s.checklistRepo.Requirements(ctx, app.CountryID)
	if err != nil {
		return nil, err
	}
	uploaded, err := s.documentRepo.ListByApplication(ctx, app.ID)
	if err != nil {
		return nil, err
	}

	return &models.ApplicationDetail{
		Application: *app,
		Documents:   mergeChecklist(requirements, uploaded),
	}, nil
}

// mergeChecklist left-joins checklist requirements with uploaded documents.
// Uploads outside the checklist are appended as optional entries.
func mergeChecklist(requirements []models.ChecklistItem, uploaded []*models.ApplicationDocument) []models.ChecklistDocument {
	byDocument := make(map[int64]*models.ApplicationDocument, len(uploaded))
	for _, doc := range uploaded {
		byDocument[doc.DocumentID] = doc
	}

	view := make([]models.ChecklistDocument, 0, len(requirements)+len(uploaded))
	for _, item := range requirements {
		entry := models.ChecklistDocument{
			DocumentID:   item.DocumentID,
			DocumentName: item.DocumentName,
			Required:     item.Required,
		}
		if doc, ok := byDocument[item.DocumentID]; ok {
			fillUpload(&entry, doc)
			delete(byDocument, item.DocumentID)
		}
		view = append(view, entry)
	}

	for _, doc := range uploaded {
		if _, extra := byDocument[doc.DocumentID]; !extra {
			continue
		}
		entry := models.ChecklistDocument{
			DocumentID:   doc.DocumentID,
			DocumentName: doc.DocumentName,
		}
		fillUpload(&entry, doc)
		view = append(view, entry)
	}
	return view
}

func fillUpload(entry *models.ChecklistDocument, doc *models.ApplicationDocument) {
	id, path, status, uploadedAt := doc.ID, doc.FilePath, doc.Status, doc.UploadedAt
	entry.ApplicationDocumentID = &id
	entry.FilePath = &path
	entry.Status = &status
	entry.UploadedAt = &uploadedAt
	entry.ExpiryDate = doc.ExpiryDate
}

// List returns a page of applications visible to the actor
func (s *ApplicationService) List(ctx context.Context, actor *models.Actor, filter models.ApplicationFilter) ([]*models.Application, dto.PaginationInfo, error) {
	if err := auth.Authorize(actor, auth.CapReadRecords); err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	branchID, err := auth.ScopeBranchFilter(actor, filter.BranchID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	filter.BranchID = branchID

	apps, total, err := s.applicationRepo.List(ctx, filter)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return apps, helpers.NewPaginationInfo(total, filter.Page, filter.Size), nil
}

// UpdateStatus applies a status transition. The branch check runs against the
// student's branch before anything is written.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor *models.Actor, id int64, rawStatus string) (*models.Application, error) {
	status, err := models.ParseApplicationStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	app, err := s.load(ctx, actor, auth.CapWriteRecords, id)
	if err != nil {
		return nil, err
	}

	previous := app.Status
	if err := app.Transition(status, s.now()); err != nil {
		return nil, err
	}
	if err := s.applicationRepo.SaveStatus(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("applicationID", app.ID).
		Str("from", string(previous)).
		Str("to", string(app.Status)).
		Int64("actorID", actor.UserID).
		Msg("Application status changed")
	return app, nil
}

// Delete removes an application and its documents atomically, then removes
// the stored files. File cleanup failures are logged only.
func (s *ApplicationService) Delete(ctx context.Context, actor *models.Actor, id int64) error {
	if _, err := s.load(ctx, actor, auth.CapWriteRecords, id); err != nil {
		return err
	}

	filePaths, err := s.applicationRepo.Delete(ctx, id)
	if err != nil {
		return err
	}

	for _, path := range filePaths {
		if err := s.files.Delete(path); err != nil {
			s.logger.Warn().Err(err).
				Int64("applicationID", id).
				Str("filePath", path).
				Msg("Failed to delete document file of removed application")
		}
	}

	s.logger.Info().
		Int64("applicationID", id).
		Int("documents", len(filePaths)).
		Int64("actorID", actor.UserID).
		Msg("Application deleted")
	return nil
}
