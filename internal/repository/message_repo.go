package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ideasnet/server/internal/model"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	// Partners returns the distinct counterpart IDs from both directions.
	Partners(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	LastBetween(ctx context.Context, a, b uuid.UUID) (*model.Message, error)
	FindBetween(ctx context.Context, a, b uuid.UUID, limit, offset int) ([]*model.Message, error)
	CountUnreadFrom(ctx context.Context, senderID, receiverID uuid.UUID) (int64, error)
	MarkReadFrom(ctx context.Context, senderID, receiverID uuid.UUID) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) Partners(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var sentTo []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Distinct("receiver_id").
		Where("sender_id = ?", userID).
		Pluck("receiver_id", &sentTo).Error; err != nil {
		return nil, err
	}

	var receivedFrom []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Distinct("sender_id").
		Where("receiver_id = ?", userID).
		Pluck("sender_id", &receivedFrom).Error; err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(sentTo)+len(receivedFrom))
	var partners []uuid.UUID
	for _, id := range append(sentTo, receivedFrom...) {
		if !seen[id] {
			seen[id] = true
			partners = append(partners, id)
		}
	}
	return partners, nil
}

func (r *messageRepository) LastBetween(ctx context.Context, a, b uuid.UUID) (*model.Message, error) {
	var messages []*model.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("created_at DESC").
		Limit(1).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, nil
	}
	return messages[0], nil
}

func (r *messageRepository) FindBetween(ctx context.Context, a, b uuid.UUID, limit, offset int) ([]*model.Message, error) {
	var messages []*model.Message
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) CountUnreadFrom(ctx context.Context, senderID, receiverID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", senderID, receiverID, false).
		Count(&count).Error
	return count, err
}

func (r *messageRepository) MarkReadFrom(ctx context.Context, senderID, receiverID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", senderID, receiverID, false).
		Update("is_read", true).Error
}
