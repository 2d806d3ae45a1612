package service

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ideasnet/server/internal/config"
	"github.com/ideasnet/server/internal/dto"
	"github.com/ideasnet/server/internal/model"
	"github.com/ideasnet/server/internal/repository"
	"github.com/ideasnet/server/pkg/apperror"
	"github.com/ideasnet/server/pkg/slug"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type IdeaService interface {
	Create(ctx context.Context, authorID uuid.UUID, req dto.CreateIdeaRequest) (*model.Idea, error)
	List(ctx context.Context, search string) ([]*dto.IdeaResponse, error)
	GetBySlug(ctx context.Context, slugValue string, viewerID *uuid.UUID) (*dto.IdeaResponse, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, viewerID *uuid.UUID) ([]*dto.IdeaResponse, error)
	Update(ctx context.Context, userID, ideaID uuid.UUID, req dto.UpdateIdeaRequest) (*model.Idea, error)
	Delete(ctx context.Context, userID, ideaID uuid.UUID) error
}

type ideaService struct {
	ideaRepo    repository.IdeaRepository
	commentRepo repository.CommentRepository
	voteRepo    repository.VoteRepository
	searchSvc   SearchService
	redisClient *redis.Client
	cfg         *config.Config
}

func NewIdeaService(
	ideaRepo repository.IdeaRepository,
	commentRepo repository.CommentRepository,
	voteRepo repository.VoteRepository,
	searchSvc SearchService,
	redisClient *redis.Client,
	cfg *config.Config,
) IdeaService {
	return &ideaService{
		ideaRepo:    ideaRepo,
		commentRepo: commentRepo,
		voteRepo:    voteRepo,
		searchSvc:   searchSvc,
		redisClient: redisClient,
		cfg:         cfg,
	}
}

func (s *ideaService) Create(ctx context.Context, authorID uuid.UUID, req dto.CreateIdeaRequest) (*model.Idea, error) {
	if req.Title == "" || req.Description == "" || req.Problem == "" || req.Solution == "" {
		return nil, apperror.New(http.StatusBadRequest, "Missing required fields", "", apperror.ErrInvalidInput)
	}

	limit := 30 * time.Second
	if s.cfg != nil {
		limit = s.cfg.RateLimitIdea
	}
	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, authorID, "create_idea", limit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperror.New(http.StatusTooManyRequests, "You are posting ideas too quickly. Please wait a moment.", "", apperror.ErrRateLimited)
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	idea := &model.Idea{
		Title:         req.Title,
		Slug:          slug.Make(req.Title),
		Description:   req.Description,
		Problem:       req.Problem,
		Solution:      req.Solution,
		TargetMarket:  req.TargetMarket,
		BusinessModel: req.BusinessModel,
		Tags:          model.StringList(req.Tags),
		Industry:      req.Industry,
		Technology:    req.Technology,
		IsPublic:      isPublic,
		AuthorID:      authorID,
	}
	if idea.Tags == nil {
		idea.Tags = model.StringList{}
	}

	if err := s.ideaRepo.Create(ctx, idea); err != nil {
		ClearRateLimit(ctx, s.redisClient, authorID, "create_idea")
		return nil, err
	}

	if s.searchSvc != nil && idea.IsPublic {
		s.searchSvc.IndexIdea(idea)
	}

	return idea, nil
}

func (s *ideaService) List(ctx context.Context, search string) ([]*dto.IdeaResponse, error) {
	var (
		ideas []*model.Idea
		err   error
	)

	// The search index serves queries when available; the database LIKE
	// fallback keeps search working without Meilisearch.
	if search != "" && s.searchSvc != nil {
		ids, searchErr := s.searchSvc.SearchIdeaIDs(search)
		if searchErr == nil {
			ideas, err = s.ideaRepo.FindByIDs(ctx, ids)
			if err == nil {
				// The batched fetch returns rows in database order; restore
				// the index's relevance ranking.
				ideas = orderByIDs(ideas, ids)
			}
		} else {
			ideas, err = s.ideaRepo.FindAllPublic(ctx, search)
		}
	} else {
		ideas, err = s.ideaRepo.FindAllPublic(ctx, search)
	}
	if err != nil {
		return nil, err
	}

	return s.decorate(ctx, ideas)
}

func (s *ideaService) GetBySlug(ctx context.Context, slugValue string, viewerID *uuid.UUID) (*dto.IdeaResponse, error) {
	idea, err := s.ideaRepo.FindBySlug(ctx, slugValue)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Idea not found", "", apperror.ErrNotFound)
		}
		return nil, err
	}

	// A private idea is visible to its author only; everyone else gets the
	// same 404 as a missing idea.
	isAuthor := viewerID != nil && idea.AuthorID == *viewerID
	if !idea.IsPublic && !isAuthor {
		return nil, apperror.New(http.StatusNotFound, "Idea not found", "", apperror.ErrNotFound)
	}

	responses, err := s.decorate(ctx, []*model.Idea{idea})
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}

func (s *ideaService) ListByAuthor(ctx context.Context, authorID uuid.UUID, viewerID *uuid.UUID) ([]*dto.IdeaResponse, error) {
	ideas, err := s.ideaRepo.FindByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	isOwner := viewerID != nil && *viewerID == authorID
	if !isOwner {
		visible := ideas[:0]
		for _, idea := range ideas {
			if idea.IsPublic {
				visible = append(visible, idea)
			}
		}
		ideas = visible
	}

	return s.decorate(ctx, ideas)
}

func (s *ideaService) Update(ctx context.Context, userID, ideaID uuid.UUID, req dto.UpdateIdeaRequest) (*model.Idea, error) {
	idea, err := s.ideaRepo.FindByID(ctx, ideaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Idea not found", "", apperror.ErrNotFound)
		}
		return nil, err
	}

	if idea.AuthorID != userID {
		return nil, apperror.New(http.StatusForbidden, "Not authorized", "", apperror.ErrForbidden)
	}

	if req.Title != nil && *req.Title != "" && *req.Title != idea.Title {
		idea.Title = *req.Title
		idea.Slug = slug.Make(*req.Title)
	}
	if req.Description != nil {
		idea.Description = *req.Description
	}
	if req.Problem != nil {
		idea.Problem = *req.Problem
	}
	if req.Solution != nil {
		idea.Solution = *req.Solution
	}
	if req.TargetMarket != nil {
		idea.TargetMarket = req.TargetMarket
	}
	if req.BusinessModel != nil {
		idea.BusinessModel = req.BusinessModel
	}
	if req.Tags != nil {
		idea.Tags = model.StringList(*req.Tags)
		if idea.Tags == nil {
			idea.Tags = model.StringList{}
		}
	}
	if req.Industry != nil {
		idea.Industry = req.Industry
	}
	if req.Technology != nil {
		idea.Technology = req.Technology
	}
	if req.IsPublic != nil {
		idea.IsPublic = *req.IsPublic
	}

	if err := s.ideaRepo.Update(ctx, idea); err != nil {
		return nil, err
	}

	if s.searchSvc != nil {
		if idea.IsPublic {
			s.searchSvc.IndexIdea(idea)
		} else {
			s.searchSvc.DeleteIdea(idea.ID)
		}
	}

	return idea, nil
}

func (s *ideaService) Delete(ctx context.Context, userID, ideaID uuid.UUID) error {
	idea, err := s.ideaRepo.FindByID(ctx, ideaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(http.StatusNotFound, "Idea not found", "", apperror.ErrNotFound)
		}
		return err
	}

	if idea.AuthorID != userID {
		return apperror.New(http.StatusForbidden, "Not authorized", "", apperror.ErrForbidden)
	}

	if err := s.ideaRepo.Delete(ctx, ideaID); err != nil {
		return err
	}

	if s.searchSvc != nil {
		s.searchSvc.DeleteIdea(ideaID)
	}

	return nil
}

// orderByIDs sorts ideas by the position of their ID in ids. IDs absent from
// the list (stale index entries) sort last.
func orderByIDs(ideas []*model.Idea, ids []uuid.UUID) []*model.Idea {
	rank := make(map[uuid.UUID]int, len(ids))
	for i, id := range ids {
		rank[id] = i
	}
	sort.SliceStable(ideas, func(a, b int) bool {
		ra, oka := rank[ideas[a].ID]
		rb, okb := rank[ideas[b].ID]
		if oka != okb {
			return oka
		}
		return ra < rb
	})
	return ideas
}

// decorate attaches the author summary and comment/vote counts to each idea.
func (s *ideaService) decorate(ctx context.Context, ideas []*model.Idea) ([]*dto.IdeaResponse, error) {
	responses := make([]*dto.IdeaResponse, 0, len(ideas))
	if len(ideas) == 0 {
		return responses, nil
	}

	ids := make([]uuid.UUID, 0, len(ideas))
	for _, idea := range ideas {
		ids = append(ids, idea.ID)
	}

	commentCounts, err := s.commentRepo.CountByIdeaIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	voteCounts, err := s.voteRepo.CountByIdeaIDs(ctx, ids, "")
	if err != nil {
		return nil, err
	}
	upvoteCounts, err := s.voteRepo.CountByIdeaIDs(ctx, ids, model.VoteUpvote)
	if err != nil {
		return nil, err
	}

	for _, idea := range ideas {
		responses = append(responses, &dto.IdeaResponse{
			Idea:         *idea,
			Author:       idea.Author.Summary(),
			CommentCount: commentCounts[idea.ID],
			VoteCount:    voteCounts[idea.ID],
			UpvoteCount:  upvoteCounts[idea.ID],
		})
	}
	return responses, nil
}
