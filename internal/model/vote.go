package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vote types.
const (
	VoteUpvote         = "UPVOTE"
	VoteInvestInterest = "INVEST_INTEREST"
	VoteWouldUse       = "WOULD_USE"
)

// ValidVoteType reports whether t names a known vote type.
func ValidVoteType(t string) bool {
	return t == VoteUpvote || t == VoteInvestInterest || t == VoteWouldUse
}

// Vote is a toggle: presence of a row means the user has cast this vote
// type on the idea. The composite unique index makes concurrent identical
// toggles converge to a single row.
type Vote struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_votes_user_idea_type" json:"userId"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	IdeaID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_votes_user_idea_type" json:"ideaId"`
	Idea      Idea      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Type      string    `gorm:"size:20;not null;uniqueIndex:idx_votes_user_idea_type" json:"type"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (v *Vote) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID, err = uuid.NewV7()
	}
	return
}
