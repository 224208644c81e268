package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a reader's note under a post. AuthorID drives the
// owner-or-admin mutation rule.
type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	PostID    uuid.UUID `json:"postId" gorm:"type:char(36);not null;index"`
	AuthorID  uuid.UUID `json:"authorId" gorm:"type:char(36);not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate sets the UUID before inserting the record.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
