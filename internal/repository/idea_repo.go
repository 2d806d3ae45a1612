package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ideasnet/server/internal/model"
	"gorm.io/gorm"
)

type IdeaRepository interface {
	Create(ctx context.Context, idea *model.Idea) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Idea, error)
	FindBySlug(ctx context.Context, slug string) (*model.Idea, error)
	FindAllPublic(ctx context.Context, search string) ([]*model.Idea, error)
	FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]*model.Idea, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Idea, error)
	Update(ctx context.Context, idea *model.Idea) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ideaRepository struct {
	db *gorm.DB
}

func NewIdeaRepository(db *gorm.DB) IdeaRepository {
	return &ideaRepository{db: db}
}

func (r *ideaRepository) Create(ctx context.Context, idea *model.Idea) error {
	return r.db.WithContext(ctx).Create(idea).Error
}

func (r *ideaRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Idea, error) {
	var idea model.Idea
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&idea).Error; err != nil {
		return nil, err
	}
	return &idea, nil
}

func (r *ideaRepository) FindBySlug(ctx context.Context, slug string) (*model.Idea, error) {
	var idea model.Idea
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("slug = ?", slug).
		First(&idea).Error; err != nil {
		return nil, err
	}
	return &idea, nil
}

func (r *ideaRepository) FindAllPublic(ctx context.Context, search string) ([]*model.Idea, error) {
	var ideas []*model.Idea

	query := r.db.WithContext(ctx).
		Preload("Author").
		Where("is_public = ?", true)

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	if err := query.Order("created_at DESC").Find(&ideas).Error; err != nil {
		return nil, err
	}

	return ideas, nil
}

func (r *ideaRepository) FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]*model.Idea, error) {
	var ideas []*model.Idea
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&ideas).Error; err != nil {
		return nil, err
	}
	return ideas, nil
}

func (r *ideaRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Idea, error) {
	var ideas []*model.Idea
	if len(ids) == 0 {
		return ideas, nil
	}
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id IN ? AND is_public = ?", ids, true).
		Find(&ideas).Error; err != nil {
		return nil, err
	}
	return ideas, nil
}

func (r *ideaRepository) Update(ctx context.Context, idea *model.Idea) error {
	return r.db.WithContext(ctx).Save(idea).Error
}

func (r *ideaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Idea{}, "id = ?", id).Error
}
