package services

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/consultdesk/internal/app/auth"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/app/repositories"
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
	"github.com/yigit/consultdesk/internal/pkg/filestorage"
	"github.com/yigit/consultdesk/internal/pkg/helpers"
)

// documentsSubDir is where application documents are stored below the upload root
const documentsSubDir = "documents"

// DocumentService manages uploaded application documents and document types
type DocumentService struct {
	documentRepo    DocumentStore
	applicationRepo ApplicationStore
	files           filestorage.FileStorage
	policy          filestorage.UploadPolicy
	logger          zerolog.Logger
	now             func() time.Time
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	documentRepo DocumentStore,
	applicationRepo ApplicationStore,
	files filestorage.FileStorage,
	policy filestorage.UploadPolicy,
	logger zerolog.Logger,
) *DocumentService {
	return &DocumentService{
		documentRepo:    documentRepo,
		applicationRepo: applicationRepo,
		files:           files,
		policy:          policy,
		logger:          logger,
		now:             time.Now,
	}
}

// parseOptionalDate parses a YYYY-MM-DD value; blank means no date
func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	date, err := models.ParseDate(strings.TrimSpace(*raw))
	if err != nil {
		return nil, apperrors.NewValidationError("expiryDate must be a date in YYYY-MM-DD format")
	}
	return &date, nil
}

// Upload stores a file for (application, document type). A re-upload replaces
// the existing row, resets its review and notification state and removes the
// superseded file on a best-effort basis.
func (s *DocumentService) Upload(
	ctx context.Context,
	actor *models.Actor,
	applicationID, documentID int64,
	fileHeader *multipart.FileHeader,
	rawExpiry *string,
) (*models.ApplicationDocument, error) {
	if err := auth.Authorize(actor, auth.CapWriteRecords); err != nil {
		return nil, err
	}
	if err := s.policy.Validate(fileHeader); err != nil {
		return nil, err
	}
	explicitExpiry, err := parseOptionalDate(rawExpiry)
	if err != nil {
		return nil, err
	}

	app, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := auth.Guard(actor, auth.CapWriteRecords, app); err != nil {
		return nil, err
	}
	docType, err := s.documentRepo.GetType(ctx, documentID)
	if err != nil {
		return nil, err
	}

	filePath, err := s.files.Save(fileHeader, documentsSubDir)
	if err != nil {
		return nil, err
	}

	now := s.now()
	doc := &models.ApplicationDocument{
		ApplicationID: app.ID,
		DocumentID:    docType.ID,
		FilePath:      filePath,
		UploadedAt:    now,
		ExpiryDate:    models.ComputeExpiry(explicitExpiry, docType, now),
		BranchID:      app.BranchID,
		DocumentName:  docType.Name,
	}

	previous, err := s.documentRepo.Upsert(ctx, doc)
	if err != nil {
		s.removeFile(filePath, "Failed to remove file of rejected upload")
		return nil, err
	}
	if previous != nil && *previous != filePath {
		s.removeFile(*previous, "Failed to delete superseded document file")
	}

	s.logger.Info().
		Int64("applicationDocumentID", doc.ID).
		Int64("applicationID", app.ID).
		Int64("documentID", docType.ID).
		Bool("replaced", previous != nil).
		Msg("Document uploaded")
	return doc, nil
}

// removeFile deletes a stored file. Failures are logged, never returned.
func (s *DocumentService) removeFile(path, msg string) {
	if err := s.files.Delete(path); err != nil {
		s.logger.Warn().Err(err).Str("filePath", path).Msg(msg)
	}
}

// ListByApplication returns the uploaded documents of one application
func (s *DocumentService) ListByApplication(ctx context.Context, actor *models.Actor, applicationID int64) ([]*models.ApplicationDocument, error) {
	if err := auth.Authorize(actor, auth.CapReadRecords); err != nil {
		return nil, err
	}
	app, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := auth.Guard(actor, auth.CapReadRecords, app); err != nil {
		return nil, err
	}
	return s.documentRepo.ListByApplication(ctx, app.ID)
}

func (s *DocumentService) load(ctx context.Context, actor *models.Actor, capability auth.Capability, id int64) (*models.ApplicationDocument, error) {
	if err := auth.Authorize(actor, capability); err != nil {
		return nil, err
	}
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Guard(actor, capability, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// UpdateStatus sets any of the three review states
func (s *DocumentService) UpdateStatus(ctx context.Context, actor *models.Actor, id int64, rawStatus string) (*models.ApplicationDocument, error) {
	status, err := models.ParseDocumentStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	doc, err := s.load(ctx, actor, auth.CapReviewDocuments, id)
	if err != nil {
		return nil, err
	}
	if err := s.documentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	doc.Status = status

	s.logger.Info().
		Int64("applicationDocumentID", id).
		Str("status", string(status)).
		Int64("actorID", actor.UserID).
		Msg("Document status changed")
	return doc, nil
}

// UpdateExpiry edits the expiry date and returns the document to the notification pool
func (s *DocumentService) UpdateExpiry(ctx context.Context, actor *models.Actor, id int64, rawExpiry *string) (*models.ApplicationDocument, error) {
	expiry, err := parseOptionalDate(rawExpiry)
	if err != nil {
		return nil, err
	}
	doc, err := s.load(ctx, actor, auth.CapWriteRecords, id)
	if err != nil {
		return nil, err
	}
	if err := s.documentRepo.UpdateExpiry(ctx, id, expiry); err != nil {
		return nil, err
	}
	doc.ExpiryDate = expiry
	doc.ExpiryNotificationSent = false
	return doc, nil
}

// Expiring lists documents expiring within the next days, scoped to the actor's branch
func (s *DocumentService) Expiring(ctx context.Context, actor *models.Actor, days int, requestedBranch *int64) ([]*models.ExpiringDocument, error) {
	if err := auth.Authorize(actor, auth.CapReadRecords); err != nil {
		return nil, err
	}
	branchID, err := auth.ScopeBranchFilter(actor, requestedBranch)
	if err != nil {
		return nil, err
	}
	from, to := helpers.ExpiryWindow(s.now(), days)
	return s.documentRepo.ListExpiring(ctx, repositories.ExpiringQuery{
		From:     from,
		To:       to,
		BranchID: branchID,
	})
}

// Delete removes an uploaded document and then its file
func (s *DocumentService) Delete(ctx context.Context, actor *models.Actor, id int64) error {
	if _, err := s.load(ctx, actor, auth.CapWriteRecords, id); err != nil {
		return err
	}
	filePath, err := s.documentRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.removeFile(filePath, "Failed to delete document file")
	return nil
}

// ListTypes returns every document type
func (s *DocumentService) ListTypes(ctx context.Context, actor *models.Actor) ([]*models.DocumentType, error) {
	if err := auth.Authorize(actor, auth.CapReadRecords); err != nil {
		return nil, err
	}
	return s.documentRepo.ListTypes(ctx)
}

// CreateType adds a document type
func (s *DocumentService) CreateType(ctx context.Context, actor *models.Actor, docType *models.DocumentType) (*models.DocumentType, error) {
	if err := auth.Authorize(actor, auth.CapManageDocumentTypes); err != nil {
		return nil, err
	}
	if err := validateDocumentType(docType); err != nil {
		return nil, err
	}
	if err := s.documentRepo.CreateType(ctx, docType); err != nil {
		return nil, err
	}
	return docType, nil
}

// UpdateType edits a document type
func (s *DocumentService) UpdateType(ctx context.Context, actor *models.Actor, id int64, docType *models.DocumentType) (*models.DocumentType, error) {
	if err := auth.Authorize(actor, auth.CapManageDocumentTypes); err != nil {
		return nil, err
	}
	if err := validateDocumentType(docType); err != nil {
		return nil, err
	}
	docType.ID = id
	if err := s.documentRepo.UpdateType(ctx, docType); err != nil {
		return nil, err
	}
	return docType, nil
}

func validateDocumentType(docType *models.DocumentType) error {
	docType.Name = strings.TrimSpace(docType.Name)
	if docType.Name == "" {
		return apperrors.NewValidationError("name is required")
	}
	if !docType.HasExpiry {
		docType.ValidityPeriodMonths = nil
	}
	return nil
}
