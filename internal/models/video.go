package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VideoHighlight is a promotional video shown on the storefront home page.
type VideoHighlight struct {
	gorm.Model
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Type        string    `gorm:"not null" json:"type"`
	URL         string    `gorm:"not null" json:"url"`
	Thumbnail   string    `json:"thumbnail"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
}

func (video *VideoHighlight) BeforeCreate(tx *gorm.DB) (err error) {
	if video.ID == uuid.Nil {
		video.ID = uuid.New()
	}
	return
}
