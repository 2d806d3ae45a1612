package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/ideasnet/server/internal/config"
	"github.com/ideasnet/server/internal/model"
	"github.com/ideasnet/server/internal/repository"
	"github.com/ideasnet/server/internal/service"
	"github.com/ideasnet/server/pkg/slug"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fixedSearch resolves every query to a fixed, pre-ranked ID list.
type fixedSearch struct{ ids []uuid.UUID }

func (f fixedSearch) IndexIdea(*model.Idea) {}
func (f fixedSearch) DeleteIdea(uuid.UUID)  {}
func (f fixedSearch) SearchIdeaIDs(string) ([]uuid.UUID, error) {
	return f.ids, nil
}

func TestListKeepsSearchRanking(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Idea{}, &model.Comment{}, &model.Vote{}))

	author := &model.User{
		Email:     "author@example.com",
		Username:  "author",
		FirstName: "An",
		LastName:  "Author",
	}
	require.NoError(t, db.Create(author).Error)

	ctx := context.Background()
	ideaRepo := repository.NewIdeaRepository(db)

	ids := make([]uuid.UUID, 0, 3)
	for _, title := range []string{"First", "Second", "Third"} {
		idea := &model.Idea{
			Title:       title,
			Slug:        slug.Make(title),
			Description: "d",
			Problem:     "p",
			Solution:    "s",
			IsPublic:    true,
			AuthorID:    author.ID,
		}
		require.NoError(t, ideaRepo.Create(ctx, idea))
		ids = append(ids, idea.ID)
	}

	// The index ranks third, first, second; the response must agree even
	// though the batched fetch returns rows in database order.
	ranked := []uuid.UUID{ids[2], ids[0], ids[1]}
	svc := service.NewIdeaService(
		ideaRepo,
		repository.NewCommentRepository(db),
		repository.NewVoteRepository(db),
		fixedSearch{ids: ranked},
		nil,
		&config.Config{},
	)

	results, err := svc.List(ctx, "anything")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "Third", results[0].Title)
	assert.Equal(t, "First", results[1].Title)
	assert.Equal(t, "Second", results[2].Title)
}
