package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/app/models/dto"
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
	"golang.org/x/sync/errgroup"
)

// fanOutLimit bounds concurrent inserts of one branch notification
const fanOutLimit = 8

// NotificationService stores in-app notifications and pushes them to connected clients
type NotificationService struct {
	notificationRepo NotificationStore
	userRepo         UserStore
	publisher        NotificationPublisher
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService. publisher may be nil.
func NewNotificationService(
	notificationRepo NotificationStore,
	userRepo UserStore,
	publisher NotificationPublisher,
	logger zerolog.Logger,
) *NotificationService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		publisher:        publisher,
		logger:           logger,
	}
}

// FanOutFailure is one recipient whose notification could not be stored
type FanOutFailure struct {
	UserID int64
	Err    error
}

// FanOutResult summarizes a branch notification
type FanOutResult struct {
	Recipients int
	Delivered  int
	Failures   []FanOutFailure
}

// Err joins every per-recipient failure, nil when all succeeded
func (r *FanOutResult) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, fmt.Errorf("user %d: %w", f.UserID, f.Err))
	}
	return errors.Join(errs...)
}

// CreateNotification stores one notification and publishes it
func (s *NotificationService) CreateNotification(ctx context.Context, notification *models.Notification) error {
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}
	s.publisher.PublishNotification(notification)
	return nil
}

// CreateBranchNotification sends a copy of template to every user of a branch.
// Inserts run concurrently; the call returns once all of them have finished.
// Individual failures are collected in the result rather than aborting the rest.
func (s *NotificationService) CreateBranchNotification(ctx context.Context, branchID int64, template models.Notification) (*FanOutResult, error) {
	userIDs, err := s.userRepo.ListIDsByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}

	result := &FanOutResult{Recipients: len(userIDs)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)
	for _, userID := range userIDs {
		userID := userID
		g.Go(func() error {
			notification := template
			notification.UserID = userID
			notification.BranchID = &branchID

			err := s.CreateNotification(gctx, &notification)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failures = append(result.Failures, FanOutFailure{UserID: userID, Err: err})
				return nil
			}
			result.Delivered++
			return nil
		})
	}
	_ = g.Wait()

	if len(result.Failures) > 0 {
		s.logger.Warn().
			Err(result.Err()).
			Int64("branchID", branchID).
			Int("recipients", result.Recipients).
			Int("failed", len(result.Failures)).
			Msg("Branch notification partially failed")
	}
	return result, nil
}

// List returns the caller's notifications with the unread count
func (s *NotificationService) List(ctx context.Context, actor *models.Actor, limit, offset uint64) (*dto.NotificationListResponse, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	notifications, err := s.notificationRepo.ListByUser(ctx, actor.UserID, limit, offset)
	if err != nil {
		return nil, err
	}
	unread, err := s.notificationRepo.CountUnread(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return &dto.NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

// MarkRead marks one of the caller's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, actor *models.Actor, id int64) error {
	if actor == nil {
		return apperrors.ErrUnauthenticated
	}
	return s.notificationRepo.MarkRead(ctx, id, actor.UserID)
}
