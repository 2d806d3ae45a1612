package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles.
const (
	RoleEnthusiast = "ENTHUSIAST"
	RoleBuilder    = "BUILDER"
	RoleInvestor   = "INVESTOR"
	RoleMentor     = "MENTOR"
)

type User struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Username      string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Password      *string    `gorm:"size:255" json:"-"` // null for OAuth-only accounts
	FirstName     string     `gorm:"size:100;not null" json:"firstName"`
	LastName      string     `gorm:"size:100;not null" json:"lastName"`
	Role          string     `gorm:"size:20;not null;default:ENTHUSIAST" json:"role"`
	Bio           *string    `gorm:"type:text" json:"bio,omitempty"`
	Avatar        *string    `gorm:"type:text" json:"avatar,omitempty"`
	Skills        StringList `gorm:"type:text" json:"skills"`
	Interests     StringList `gorm:"type:text" json:"interests"`
	Location      *string    `gorm:"size:100" json:"location,omitempty"`
	Website       *string    `gorm:"size:255" json:"website,omitempty"`
	Linkedin      *string    `gorm:"size:255" json:"linkedin,omitempty"`
	Twitter       *string    `gorm:"size:255" json:"twitter,omitempty"`
	Github        *string    `gorm:"size:255" json:"github,omitempty"`
	GoogleID      *string    `gorm:"size:100;index" json:"-"`
	IsVerified    bool       `gorm:"default:false" json:"isVerified"`
	IsPremium     bool       `gorm:"default:false" json:"isPremium"`
	EmailVerified bool       `gorm:"default:false" json:"emailVerified"`
	LastActive    *time.Time `json:"lastActive,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	Ideas    []Idea    `gorm:"foreignKey:AuthorID" json:"-"`
	Comments []Comment `gorm:"foreignKey:AuthorID" json:"-"`
	Votes    []Vote    `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID, err = uuid.NewV7()
	}
	return
}

// Summary is the author projection inlined into ideas, comments and
// messages.
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Avatar    *string   `json:"avatar,omitempty"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
	}
}
