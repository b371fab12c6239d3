package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Ad struct {
	gorm.Model
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title    string    `gorm:"not null" json:"title"`
	ImageURL string    `gorm:"not null" json:"image_url"`
	Link     string    `json:"link"`
	Active   bool      `gorm:"not null;default:true" json:"active"`
}

func (ad *Ad) BeforeCreate(tx *gorm.DB) (err error) {
	if ad.ID == uuid.Nil {
		ad.ID = uuid.New()
	}
	return
}
