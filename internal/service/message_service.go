package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ideasnet/server/internal/config"
	"github.com/ideasnet/server/internal/dto"
	"github.com/ideasnet/server/internal/model"
	"github.com/ideasnet/server/internal/repository"
	"github.com/ideasnet/server/pkg/apperror"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type MessageService interface {
	Send(ctx context.Context, senderID uuid.UUID, req dto.SendMessageRequest) (*dto.MessageResponse, error)
	Conversations(ctx context.Context, userID uuid.UUID) ([]*dto.ConversationResponse, error)
	History(ctx context.Context, userID, partnerID uuid.UUID, limit, offset int) ([]*dto.MessageResponse, error)
	MarkConversationRead(ctx context.Context, userID, partnerID uuid.UUID) error
}

type messageService struct {
	messageRepo     repository.MessageRepository
	userRepo        repository.UserRepository
	notificationSvc NotificationService
	redisClient     *redis.Client
	cfg             *config.Config
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	notificationSvc NotificationService,
	redisClient *redis.Client,
	cfg *config.Config,
) MessageService {
	return &messageService{
		messageRepo:     messageRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
		redisClient:     redisClient,
		cfg:             cfg,
	}
}

func (s *messageService) Send(ctx context.Context, senderID uuid.UUID, req dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if req.ReceiverID == "" || req.Content == "" {
		return nil, apperror.New(http.StatusBadRequest, "Missing required fields: receiverId, content", "", apperror.ErrInvalidInput)
	}

	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, "Invalid receiver ID", "", apperror.ErrInvalidInput)
	}
	if receiverID == senderID {
		return nil, apperror.New(http.StatusBadRequest, "You cannot message yourself", "", apperror.ErrInvalidInput)
	}

	if _, err := s.userRepo.FindByID(ctx, receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "User not found", "", apperror.ErrNotFound)
		}
		return nil, err
	}

	limit := time.Second
	if s.cfg != nil {
		limit = s.cfg.RateLimitMessage
	}
	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, senderID, "send_message", limit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperror.New(http.StatusTooManyRequests, "You are sending messages too quickly. Please wait a moment.", "", apperror.ErrRateLimited)
	}

	message := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    req.Content,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		ClearRateLimit(ctx, s.redisClient, senderID, "send_message")
		return nil, err
	}

	sender, err := s.userRepo.FindByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	receiver, err := s.userRepo.FindByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	message.Sender = *sender
	message.Receiver = *receiver

	if s.notificationSvc != nil {
		notification := &model.Notification{
			UserID:  receiverID,
			ActorID: &senderID,
			Type:    model.NotificationMessage,
			Content: fmt.Sprintf("%s sent you a message", sender.Username),
		}
		_ = s.notificationSvc.Notify(ctx, notification)
	}

	return toMessageResponse(message), nil
}

// Conversations returns one summary per counterpart, sorted by last-message
// recency. Counterparts without messages sort last via the zero time.
func (s *messageService) Conversations(ctx context.Context, userID uuid.UUID) ([]*dto.ConversationResponse, error) {
	partners, err := s.messageRepo.Partners(ctx, userID)
	if err != nil {
		return nil, err
	}

	type entry struct {
		resp     *dto.ConversationResponse
		lastTime time.Time
	}
	entries := make([]entry, 0, len(partners))

	for _, partnerID := range partners {
		partner, err := s.userRepo.FindByID(ctx, partnerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		last, err := s.messageRepo.LastBetween(ctx, userID, partnerID)
		if err != nil {
			return nil, err
		}
		unread, err := s.messageRepo.CountUnreadFrom(ctx, partnerID, userID)
		if err != nil {
			return nil, err
		}

		resp := &dto.ConversationResponse{
			User:        partner.Summary(),
			UnreadCount: unread,
		}
		lastTime := time.Time{}
		if last != nil {
			resp.LastMessage = toMessageResponse(last)
			lastTime = last.CreatedAt
		}
		entries = append(entries, entry{resp: resp, lastTime: lastTime})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].lastTime.After(entries[j].lastTime)
	})

	conversations := make([]*dto.ConversationResponse, 0, len(entries))
	for _, e := range entries {
		conversations = append(conversations, e.resp)
	}
	return conversations, nil
}

// History returns messages between the caller and partner oldest-first,
// paginated from the newest end.
func (s *messageService) History(ctx context.Context, userID, partnerID uuid.UUID, limit, offset int) ([]*dto.MessageResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	messages, err := s.messageRepo.FindBetween(ctx, userID, partnerID, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.MessageResponse, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		responses = append(responses, toMessageResponse(messages[i]))
	}
	return responses, nil
}

func (s *messageService) MarkConversationRead(ctx context.Context, userID, partnerID uuid.UUID) error {
	return s.messageRepo.MarkReadFrom(ctx, partnerID, userID)
}

func toMessageResponse(message *model.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		Message:  *message,
		Sender:   message.Sender.Summary(),
		Receiver: message.Receiver.Summary(),
	}
}
