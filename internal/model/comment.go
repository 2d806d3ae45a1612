package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment types.
const (
	CommentTypeFeedback   = "FEEDBACK"
	CommentTypeQuestion   = "QUESTION"
	CommentTypeSuggestion = "SUGGESTION"
)

type Comment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	IdeaID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"ideaId"`
	Idea      Idea       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index" json:"parentId,omitempty"`
	Parent    *Comment   `gorm:"foreignKey:ParentID" json:"-"`
	AuthorID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"authorId"`
	Author    User       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Type      string     `gorm:"size:20;not null;default:FEEDBACK" json:"type"`
	IsDeleted bool       `gorm:"default:false" json:"isDeleted"`
	IsEdited  bool       `gorm:"default:false" json:"isEdited"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	Replies []Comment `gorm:"foreignKey:ParentID" json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}
