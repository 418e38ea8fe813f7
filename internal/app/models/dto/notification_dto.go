package dto

import "github.com/yigit/consultdesk/internal/app/models"

// NotificationListResponse is the caller's notification feed
type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unreadCount" example:"3"`
}

// ExpiryScanResponse reports the outcome of an expiry reminder run
type ExpiryScanResponse struct {
	Message       string `json:"message" example:"Expiry reminders processed"`
	DocumentCount int    `json:"documentCount" example:"4"`
	Notified      int    `json:"notified" example:"4"`
	Failed        int    `json:"failed" example:"0"`
}
