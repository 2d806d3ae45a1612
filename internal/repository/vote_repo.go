package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ideasnet/server/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VoteRepository interface {
	// Add inserts the vote if absent; a concurrent duplicate is silently
	// absorbed by the unique index.
	Add(ctx context.Context, vote *model.Vote) error
	Remove(ctx context.Context, userID, ideaID uuid.UUID, voteType string) error
	FindByUserAndIdea(ctx context.Context, userID, ideaID uuid.UUID) ([]*model.Vote, error)
	CountsByIdea(ctx context.Context, ideaID uuid.UUID) (map[string]int64, error)
	CountByIdeaIDs(ctx context.Context, ideaIDs []uuid.UUID, voteType string) (map[uuid.UUID]int64, error)
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Add(ctx context.Context, vote *model.Vote) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(vote).Error
}

func (r *voteRepository) Remove(ctx context.Context, userID, ideaID uuid.UUID, voteType string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND idea_id = ? AND type = ?", userID, ideaID, voteType).
		Delete(&model.Vote{}).Error
}

func (r *voteRepository) FindByUserAndIdea(ctx context.Context, userID, ideaID uuid.UUID) ([]*model.Vote, error) {
	var votes []*model.Vote
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND idea_id = ?", userID, ideaID).
		Find(&votes).Error; err != nil {
		return nil, err
	}
	return votes, nil
}

func (r *voteRepository) CountsByIdea(ctx context.Context, ideaID uuid.UUID) (map[string]int64, error) {
	type result struct {
		Type  string
		Count int64
	}
	var results []result

	err := r.db.WithContext(ctx).
		Model(&model.Vote{}).
		Select("type, count(*) as count").
		Where("idea_id = ?", ideaID).
		Group("type").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, res := range results {
		counts[res.Type] = res.Count
	}
	return counts, nil
}

// CountByIdeaIDs counts votes per idea; voteType narrows to one type when
// non-empty.
func (r *voteRepository) CountByIdeaIDs(ctx context.Context, ideaIDs []uuid.UUID, voteType string) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64)
	if len(ideaIDs) == 0 {
		return counts, nil
	}

	type result struct {
		IdeaID uuid.UUID
		Count  int64
	}
	var results []result

	query := r.db.WithContext(ctx).
		Model(&model.Vote{}).
		Select("idea_id, count(*) as count").
		Where("idea_id IN ?", ideaIDs)
	if voteType != "" {
		query = query.Where("type = ?", voteType)
	}

	if err := query.Group("idea_id").Scan(&results).Error; err != nil {
		return nil, err
	}

	for _, res := range results {
		counts[res.IdeaID] = res.Count
	}
	return counts, nil
}
