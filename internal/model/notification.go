package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types.
const (
	NotificationComment = "COMMENT"
	NotificationVote    = "VOTE"
	NotificationMessage = "MESSAGE"
)

type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"` // recipient
	ActorID   *uuid.UUID `gorm:"type:uuid" json:"actorId,omitempty"`     // who triggered it
	Actor     *User      `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	Type      string     `gorm:"size:20;not null" json:"type"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	IsRead    bool       `gorm:"default:false" json:"isRead"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID, err = uuid.NewV7()
	}
	return
}
