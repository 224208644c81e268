package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is an article written by a user. Unpublished posts are drafts and
// visible only to admins; to everyone else they do not exist.
type Post struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	AuthorID  uuid.UUID `json:"authorId" gorm:"type:char(36);not null;index"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Published bool      `json:"published" gorm:"default:false;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets the UUID before inserting the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
