package dto

import "github.com/ideasnet/server/internal/model"

type SendMessageRequest struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

type MessageResponse struct {
	model.Message
	Sender   model.UserSummary `json:"sender"`
	Receiver model.UserSummary `json:"receiver"`
}

// ConversationResponse summarizes one counterpart: profile, last message
// exchanged and how many of their messages are still unread.
type ConversationResponse struct {
	User        model.UserSummary `json:"user"`
	LastMessage *MessageResponse  `json:"lastMessage"`
	UnreadCount int64             `json:"unreadCount"`
}
