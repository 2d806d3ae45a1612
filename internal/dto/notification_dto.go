package dto

import "github.com/ideasnet/server/internal/model"

type NotificationListResponse struct {
	Notifications []model.Notification `json:"notifications"`
	UnreadCount   int64                `json:"unreadCount"`
}
