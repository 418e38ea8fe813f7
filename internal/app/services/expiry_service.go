package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/app/repositories"
	"github.com/yigit/consultdesk/internal/pkg/email"
	"github.com/yigit/consultdesk/internal/pkg/helpers"
)

// DefaultExpiryWindowDays is how far ahead the scan looks when not configured
const DefaultExpiryWindowDays = 30

// Notifier is the part of the notification service the expiry scan needs
type Notifier interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	CreateBranchNotification(ctx context.Context, branchID int64, template models.Notification) (*FanOutResult, error)
}

// ScanResult reports what one expiry scan did
type ScanResult struct {
	DocumentCount int `json:"documentCount"`
	Notified      int `json:"notified"`
	Failed        int `json:"failed"`
}

// ExpiryService finds documents about to expire and notifies their branch once per expiry
type ExpiryService struct {
	documentRepo DocumentStore
	notifier     Notifier
	mailer       email.EmailService
	windowDays   int
	logger       zerolog.Logger
	now          func() time.Time

	// runs are serialized so the notified flag is read and written by one scan at a time
	mu sync.Mutex
}

// NewExpiryService creates a new ExpiryService
func NewExpiryService(
	documentRepo DocumentStore,
	notifier Notifier,
	mailer email.EmailService,
	windowDays int,
	logger zerolog.Logger,
) *ExpiryService {
	if windowDays <= 0 {
		windowDays = DefaultExpiryWindowDays
	}
	return &ExpiryService{
		documentRepo: documentRepo,
		notifier:     notifier,
		mailer:       mailer,
		windowDays:   windowDays,
		logger:       logger,
		now:          time.Now,
	}
}

// Scan notifies every unflagged document expiring within the window and flags it.
// A document whose notifications did not all succeed stays unflagged for the next run.
func (s *ExpiryService) Scan(ctx context.Context) (*ScanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	from, to := helpers.ExpiryWindow(now, s.windowDays)
	docs, err := s.documentRepo.ListExpiring(ctx, repositories.ExpiringQuery{
		From:           from,
		To:             to,
		OnlyUnnotified: true,
	})
	if err != nil {
		return nil, err
	}

	result := &ScanResult{DocumentCount: len(docs)}
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if !s.notify(ctx, doc, from) {
			result.Failed++
			continue
		}

		marked, err := s.documentRepo.MarkExpiryNotified(ctx, doc.ApplicationDocumentID)
		if err != nil {
			result.Failed++
			continue
		}
		if !marked {
			s.logger.Warn().
				Int64("applicationDocumentID", doc.ApplicationDocumentID).
				Msg("Document was flagged by another run")
			continue
		}
		result.Notified++
	}

	s.logger.Info().
		Int("documents", result.DocumentCount).
		Int("notified", result.Notified).
		Int("failed", result.Failed).
		Msg("Expiry scan finished")
	return result, nil
}

// notify sends every notification for one document and reports whether all were stored.
// The counselor email is best effort and never affects the outcome.
func (s *ExpiryService) notify(ctx context.Context, doc *models.ExpiringDocument, today time.Time) bool {
	daysLeft := int(doc.ExpiryDate.Sub(today).Hours() / 24)
	entityID := doc.ApplicationDocumentID
	entityType := models.EntityTypeDocument
	branchID := doc.BranchID

	template := models.Notification{
		Type: models.NotificationTypeDocumentExpiry,
		Message: fmt.Sprintf("%s of student %s expires on %s (%d days left)",
			doc.DocumentName, doc.StudentName, doc.ExpiryDate.Format(models.DateLayout), daysLeft),
		EntityID:   &entityID,
		EntityType: &entityType,
		BranchID:   &branchID,
	}

	ok := true
	log := s.logger.With().Int64("applicationDocumentID", doc.ApplicationDocumentID).Logger()

	if doc.CounselorID != nil {
		personal := template
		personal.UserID = *doc.CounselorID
		if err := s.notifier.CreateNotification(ctx, &personal); err != nil {
			log.Error().Err(err).Int64("counselorID", *doc.CounselorID).Msg("Failed to notify counselor of expiring document")
			ok = false
		}
	}

	fanOut, err := s.notifier.CreateBranchNotification(ctx, doc.BranchID, template)
	switch {
	case err != nil:
		log.Error().Err(err).Int64("branchID", doc.BranchID).Msg("Failed to notify branch of expiring document")
		ok = false
	case len(fanOut.Failures) > 0:
		ok = false
	}

	if doc.CounselorEmail != nil && *doc.CounselorEmail != "" {
		counselorName := ""
		if doc.CounselorName != nil {
			counselorName = *doc.CounselorName
		}
		reminder := email.ExpiryReminder{
			StudentName:  doc.StudentName,
			DocumentName: doc.DocumentName,
			ExpiryDate:   doc.ExpiryDate,
			DaysLeft:     daysLeft,
		}
		if err := s.mailer.SendDocumentExpiryEmail(ctx, *doc.CounselorEmail, counselorName, reminder); err != nil {
			log.Warn().Err(err).Str("to", *doc.CounselorEmail).Msg("Failed to send expiry email")
		}
	}

	return ok
}
