package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Idea struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Slug          string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description   string     `gorm:"type:text;not null" json:"description"`
	Problem       string     `gorm:"type:text;not null" json:"problem"`
	Solution      string     `gorm:"type:text;not null" json:"solution"`
	TargetMarket  *string    `gorm:"type:text" json:"targetMarket,omitempty"`
	BusinessModel *string    `gorm:"type:text" json:"businessModel,omitempty"`
	Tags          StringList `gorm:"type:text" json:"tags"`
	Industry      *string    `gorm:"size:100" json:"industry,omitempty"`
	Technology    *string    `gorm:"size:100" json:"technology,omitempty"`
	IsPublic      bool       `gorm:"default:true" json:"isPublic"`
	AuthorID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"authorId"`
	Author        User       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	Comments []Comment `gorm:"foreignKey:IdeaID" json:"-"`
	Votes    []Vote    `gorm:"foreignKey:IdeaID" json:"-"`
}

func (i *Idea) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID, err = uuid.NewV7()
	}
	return
}
