package dto

import "github.com/ideasnet/server/internal/model"

type CreateIdeaRequest struct {
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Problem       string       `json:"problem"`
	Solution      string       `json:"solution"`
	TargetMarket  *string      `json:"targetMarket"`
	BusinessModel *string      `json:"businessModel"`
	Tags          StringOrList `json:"tags"`
	Industry      *string      `json:"industry"`
	Technology    *string      `json:"technology"`
	IsPublic      *bool        `json:"isPublic"`
}

// UpdateIdeaRequest uses pointers throughout: absent fields are left
// untouched.
type UpdateIdeaRequest struct {
	Title         *string       `json:"title"`
	Description   *string       `json:"description"`
	Problem       *string       `json:"problem"`
	Solution      *string       `json:"solution"`
	TargetMarket  *string       `json:"targetMarket"`
	BusinessModel *string       `json:"businessModel"`
	Tags          *StringOrList `json:"tags"`
	Industry      *string       `json:"industry"`
	Technology    *string       `json:"technology"`
	IsPublic      *bool         `json:"isPublic"`
}

type IdeaResponse struct {
	model.Idea
	Author       model.UserSummary `json:"author"`
	CommentCount int64             `json:"commentCount"`
	VoteCount    int64             `json:"voteCount"`
	UpvoteCount  int64             `json:"upvoteCount"`
}
