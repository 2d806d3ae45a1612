package service

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/ideasnet/server/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const ideaIndexName = "ideas"

// SearchService keeps the idea search index in sync and resolves search
// queries to idea IDs. All methods are best-effort: indexing failures are
// logged, never surfaced to the request that triggered them.
type SearchService interface {
	IndexIdea(idea *model.Idea)
	DeleteIdea(id uuid.UUID)
	SearchIdeaIDs(query string) ([]uuid.UUID, error)
}

type ideaDocument struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Problem     string   `json:"problem"`
	Solution    string   `json:"solution"`
	Tags        []string `json:"tags"`
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndex()
	return s
}

func (s *searchService) initIndex() {
	sortableAttrs := []string{"title"}
	if _, err := s.client.Index(ideaIndexName).UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update ideas sortable attributes: %v", err)
	}
}

func (s *searchService) IndexIdea(idea *model.Idea) {
	doc := ideaDocument{
		ID:          idea.ID.String(),
		Title:       s.sanitizer.Sanitize(idea.Title),
		Slug:        idea.Slug,
		Description: s.sanitizer.Sanitize(idea.Description),
		Problem:     s.sanitizer.Sanitize(idea.Problem),
		Solution:    s.sanitizer.Sanitize(idea.Solution),
		Tags:        idea.Tags,
	}

	if _, err := s.client.Index(ideaIndexName).AddDocuments([]ideaDocument{doc}, strPtr("id")); err != nil {
		log.Printf("Failed to index idea %s: %v", idea.ID, err)
	}
}

func strPtr(s string) *string {
	return &s
}

func (s *searchService) DeleteIdea(id uuid.UUID) {
	if _, err := s.client.Index(ideaIndexName).DeleteDocument(id.String()); err != nil {
		log.Printf("Failed to remove idea %s from index: %v", id, err)
	}
}

func (s *searchService) SearchIdeaIDs(query string) ([]uuid.UUID, error) {
	res, err := s.client.Index(ideaIndexName).Search(query, &meilisearch.SearchRequest{
		Limit: 100,
	})
	if err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	for _, hit := range res.Hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			continue
		}
		var doc ideaDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		if id, err := uuid.Parse(doc.ID); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
