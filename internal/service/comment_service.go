package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/ideasnet/server/internal/dto"
	"github.com/ideasnet/server/internal/model"
	"github.com/ideasnet/server/internal/repository"
	"github.com/ideasnet/server/pkg/apperror"
	"gorm.io/gorm"
)

type CommentService interface {
	Create(ctx context.Context, authorID uuid.UUID, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListByIdea(ctx context.Context, ideaID uuid.UUID) ([]*dto.CommentResponse, error)
	Update(ctx context.Context, userID, commentID uuid.UUID, req dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	Delete(ctx context.Context, userID, commentID uuid.UUID) error
}

type commentService struct {
	commentRepo     repository.CommentRepository
	ideaRepo        repository.IdeaRepository
	notificationSvc NotificationService
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	ideaRepo repository.IdeaRepository,
	notificationSvc NotificationService,
) CommentService {
	return &commentService{
		commentRepo:     commentRepo,
		ideaRepo:        ideaRepo,
		notificationSvc: notificationSvc,
	}
}

func (s *commentService) Create(ctx context.Context, authorID uuid.UUID, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if req.Content == "" || req.IdeaID == "" {
		return nil, apperror.New(http.StatusBadRequest, "Missing required fields: content, ideaId", "", apperror.ErrInvalidInput)
	}

	ideaID, err := uuid.Parse(req.IdeaID)
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, "Invalid idea ID", "", apperror.ErrInvalidInput)
	}

	idea, err := s.ideaRepo.FindByID(ctx, ideaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Idea not found", "", apperror.ErrNotFound)
		}
		return nil, err
	}

	commentType := req.Type
	switch commentType {
	case "":
		commentType = model.CommentTypeFeedback
	case model.CommentTypeFeedback, model.CommentTypeQuestion, model.CommentTypeSuggestion:
	default:
		return nil, apperror.New(http.StatusBadRequest, "Invalid comment type", "", apperror.ErrInvalidInput)
	}

	var parentID *uuid.UUID
	if req.ParentID != "" {
		pid, err := uuid.Parse(req.ParentID)
		if err != nil {
			return nil, apperror.New(http.StatusBadRequest, "Invalid parent comment ID", "", apperror.ErrInvalidInput)
		}

		parent, err := s.commentRepo.FindByID(ctx, pid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.New(http.StatusNotFound, "Parent comment not found", "", apperror.ErrNotFound)
			}
			return nil, err
		}
		if parent.IdeaID != ideaID {
			return nil, apperror.New(http.StatusBadRequest, "Parent comment belongs to a different idea", "", apperror.ErrInvalidInput)
		}
		// Threads are one level deep. A reply to a reply attaches to the
		// top-level comment instead.
		if parent.ParentID != nil {
			pid = *parent.ParentID
		}
		parentID = &pid
	}

	comment := &model.Comment{
		Content:  req.Content,
		IdeaID:   ideaID,
		ParentID: parentID,
		AuthorID: authorID,
		Type:     commentType,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	created, err := s.commentRepo.FindByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	if s.notificationSvc != nil && idea.AuthorID != authorID {
		notification := &model.Notification{
			UserID:  idea.AuthorID,
			ActorID: &authorID,
			Type:    model.NotificationComment,
			Content: fmt.Sprintf("%s commented on your idea \"%s\"", created.Author.Username, idea.Title),
		}
		// Notification failure never fails the comment.
		_ = s.notificationSvc.Notify(ctx, notification)
	}

	resp := toCommentResponse(created)
	return &resp, nil
}

func (s *commentService) ListByIdea(ctx context.Context, ideaID uuid.UUID) ([]*dto.CommentResponse, error) {
	comments, err := s.commentRepo.FindTopLevelByIdea(ctx, ideaID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		resp := toCommentResponse(comment)
		responses = append(responses, &resp)
	}
	return responses, nil
}

func (s *commentService) Update(ctx context.Context, userID, commentID uuid.UUID, req dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.findOwned(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}

	comment.Content = req.Content
	comment.IsEdited = true

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	resp := toCommentResponse(comment)
	return &resp, nil
}

// Delete soft-deletes: replies under the comment stay visible.
func (s *commentService) Delete(ctx context.Context, userID, commentID uuid.UUID) error {
	if _, err := s.findOwned(ctx, userID, commentID); err != nil {
		return err
	}
	return s.commentRepo.SoftDelete(ctx, commentID)
}

func (s *commentService) findOwned(ctx context.Context, userID, commentID uuid.UUID) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Comment not found", "", apperror.ErrNotFound)
		}
		return nil, err
	}
	if comment.IsDeleted {
		return nil, apperror.New(http.StatusNotFound, "Comment not found", "", apperror.ErrNotFound)
	}
	if comment.AuthorID != userID {
		return nil, apperror.New(http.StatusForbidden, "Not authorized", "", apperror.ErrForbidden)
	}
	return comment, nil
}

func toCommentResponse(comment *model.Comment) dto.CommentResponse {
	resp := dto.CommentResponse{
		Comment: *comment,
		Author:  comment.Author.Summary(),
	}
	for i := range comment.Replies {
		reply := comment.Replies[i]
		resp.Replies = append(resp.Replies, dto.CommentResponse{
			Comment: reply,
			Author:  reply.Author.Summary(),
		})
	}
	return resp
}
