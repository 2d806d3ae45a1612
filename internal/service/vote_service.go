package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/ideasnet/server/internal/model"
	"github.com/ideasnet/server/internal/repository"
	"github.com/ideasnet/server/pkg/apperror"
	"gorm.io/gorm"
)

var voteLabels = map[string]string{
	model.VoteUpvote:         "upvoted",
	model.VoteInvestInterest: "showed investment interest in",
	model.VoteWouldUse:       "would use",
}

type VoteService interface {
	// Add is create-if-absent; a vote that already exists is a no-op.
	Add(ctx context.Context, userID, ideaID uuid.UUID, voteType string) error
	// Remove is delete-if-present; an absent vote is a no-op.
	Remove(ctx context.Context, userID, ideaID uuid.UUID, voteType string) error
	UserVotes(ctx context.Context, userID, ideaID uuid.UUID) ([]*model.Vote, error)
	Counts(ctx context.Context, ideaID uuid.UUID) (map[string]int64, error)
}

type voteService struct {
	voteRepo        repository.VoteRepository
	ideaRepo        repository.IdeaRepository
	userRepo        repository.UserRepository
	notificationSvc NotificationService
}

func NewVoteService(
	voteRepo repository.VoteRepository,
	ideaRepo repository.IdeaRepository,
	userRepo repository.UserRepository,
	notificationSvc NotificationService,
) VoteService {
	return &voteService{
		voteRepo:        voteRepo,
		ideaRepo:        ideaRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
	}
}

func (s *voteService) Add(ctx context.Context, userID, ideaID uuid.UUID, voteType string) error {
	if !model.ValidVoteType(voteType) {
		return apperror.New(http.StatusBadRequest, "Invalid vote type", "", apperror.ErrInvalidInput)
	}

	idea, err := s.findVotableIdea(ctx, ideaID, userID)
	if err != nil {
		return err
	}

	vote := &model.Vote{
		UserID: userID,
		IdeaID: ideaID,
		Type:   voteType,
	}
	if err := s.voteRepo.Add(ctx, vote); err != nil {
		return err
	}

	if s.notificationSvc != nil && idea.AuthorID != userID {
		voter, err := s.userRepo.FindByID(ctx, userID)
		if err == nil {
			notification := &model.Notification{
				UserID:  idea.AuthorID,
				ActorID: &userID,
				Type:    model.NotificationVote,
				Content: fmt.Sprintf("%s %s your idea \"%s\"", voter.Username, voteLabels[voteType], idea.Title),
			}
			_ = s.notificationSvc.Notify(ctx, notification)
		}
	}

	return nil
}

func (s *voteService) Remove(ctx context.Context, userID, ideaID uuid.UUID, voteType string) error {
	if !model.ValidVoteType(voteType) {
		return apperror.New(http.StatusBadRequest, "Invalid vote type", "", apperror.ErrInvalidInput)
	}

	if _, err := s.findVotableIdea(ctx, ideaID, userID); err != nil {
		return err
	}

	return s.voteRepo.Remove(ctx, userID, ideaID, voteType)
}

func (s *voteService) UserVotes(ctx context.Context, userID, ideaID uuid.UUID) ([]*model.Vote, error) {
	votes, err := s.voteRepo.FindByUserAndIdea(ctx, userID, ideaID)
	if err != nil {
		return nil, err
	}
	if votes == nil {
		votes = []*model.Vote{}
	}
	return votes, nil
}

func (s *voteService) Counts(ctx context.Context, ideaID uuid.UUID) (map[string]int64, error) {
	counts, err := s.voteRepo.CountsByIdea(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	for _, t := range []string{model.VoteUpvote, model.VoteInvestInterest, model.VoteWouldUse} {
		if _, ok := counts[t]; !ok {
			counts[t] = 0
		}
	}
	return counts, nil
}

// findVotableIdea resolves the idea and hides private ideas from everyone
// but their author.
func (s *voteService) findVotableIdea(ctx context.Context, ideaID, viewerID uuid.UUID) (*model.Idea, error) {
	idea, err := s.ideaRepo.FindByID(ctx, ideaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Idea not found", "", apperror.ErrNotFound)
		}
		return nil, err
	}
	if !idea.IsPublic && idea.AuthorID != viewerID {
		return nil, apperror.New(http.StatusNotFound, "Idea not found", "", apperror.ErrNotFound)
	}
	return idea, nil
}
