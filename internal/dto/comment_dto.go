package dto

import "github.com/ideasnet/server/internal/model"

type CreateCommentRequest struct {
	Content  string `json:"content"`
	IdeaID   string `json:"ideaId"`
	ParentID string `json:"parentId"`
	Type     string `json:"type"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CommentResponse struct {
	model.Comment
	Author  model.UserSummary `json:"author"`
	Replies []CommentResponse `json:"replies,omitempty"`
}
