package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ideasnet/server/internal/model"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	FindTopLevelByIdea(ctx context.Context, ideaID uuid.UUID) ([]*model.Comment, error)
	Update(ctx context.Context, comment *model.Comment) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	CountByIdeaIDs(ctx context.Context, ideaIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindTopLevelByIdea returns non-deleted top-level comments newest-first,
// each with its non-deleted replies oldest-first. Soft-deleted parents are
// excluded while their rows keep reply threads intact.
func (r *commentRepository) FindTopLevelByIdea(ctx context.Context, ideaID uuid.UUID) ([]*model.Comment, error) {
	var comments []*model.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("created_at ASC")
		}).
		Preload("Replies.Author").
		Where("idea_id = ? AND is_deleted = ? AND parent_id IS NULL", ideaID, false).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

func (r *commentRepository) CountByIdeaIDs(ctx context.Context, ideaIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64)
	if len(ideaIDs) == 0 {
		return counts, nil
	}

	type result struct {
		IdeaID uuid.UUID
		Count  int64
	}
	var results []result

	err := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Select("idea_id, count(*) as count").
		Where("idea_id IN ? AND is_deleted = ?", ideaIDs, false).
		Group("idea_id").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	for _, res := range results {
		counts[res.IdeaID] = res.Count
	}
	return counts, nil
}
