package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/consultdesk/internal/app/models/dto"
	"github.com/yigit/consultdesk/internal/middleware"
	"github.com/yigit/consultdesk/internal/pkg/helpers"
)

const defaultNotificationLimit = 20

// expiryScanTimeout bounds a scan that outlives the triggering request
const expiryScanTimeout = 10 * time.Minute

// NotificationController handles the notification feed and expiry reminder triggers
type NotificationController struct {
	notificationService NotificationService
	expiryScanner       ExpiryScanner
	logger              zerolog.Logger
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService NotificationService, expiryScanner ExpiryScanner, logger zerolog.Logger) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		expiryScanner:       expiryScanner,
		logger:              logger,
	}
}

// ListNotifications returns the caller's notifications, newest first
// @Summary My notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.APIResponse{data=dto.NotificationListResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /notifications [get]
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	limit, offset := helpers.ParseLimitOffset(ctx, defaultNotificationLimit)
	feed, err := c.notificationService.List(ctx.Request.Context(), actor, limit, offset)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, feed, "")
}

// MarkNotificationRead marks one of the caller's notifications as read
// @Summary Mark notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id}/read [put]
func (c *NotificationController) MarkNotificationRead(ctx *gin.Context) {
	actor, ok := middleware.MustGetActor(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.notificationService.MarkRead(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse("Notification marked as read"))
}

// SendExpiryReminders runs the expiry scan on demand
// @Summary Send expiry reminders
// @Description Notifies branches about documents expiring within the configured window
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ExpiryScanResponse}
// @Failure 403 {object} dto.ErrorResponse "Missing trigger_expiry_scan capability"
// @Router /notifications/send-expiry-reminders [post]
func (c *NotificationController) SendExpiryReminders(ctx *gin.Context) {
	c.runExpiryScan(ctx, "manual")
}

// CronSendExpiryReminders runs the expiry scan for an external scheduler
// @Summary Send expiry reminders (cron)
// @Tags notifications
// @Produce json
// @Param x-api-key header string true "Cron API key"
// @Success 200 {object} dto.APIResponse{data=dto.ExpiryScanResponse}
// @Failure 401 {object} dto.ErrorResponse "Invalid API key"
// @Router /notifications/cron/send-expiry-reminders [post]
func (c *NotificationController) CronSendExpiryReminders(ctx *gin.Context) {
	c.runExpiryScan(ctx, "cron")
}

// runExpiryScan detaches the scan from the request so a client disconnect
// cannot leave a document notified but unflagged
func (c *NotificationController) runExpiryScan(ctx *gin.Context, trigger string) {
	scanCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx.Request.Context()), expiryScanTimeout)
	defer cancel()

	result, err := c.expiryScanner.Scan(scanCtx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().
		Str("trigger", trigger).
		Int("documentCount", result.DocumentCount).
		Int("notified", result.Notified).
		Int("failed", result.Failed).
		Msg("Expiry reminders processed")

	respondOK(ctx, dto.ExpiryScanResponse{
		Message:       "Expiry reminders processed",
		DocumentCount: result.DocumentCount,
		Notified:      result.Notified,
		Failed:        result.Failed,
	}, "Expiry reminders processed")
}
