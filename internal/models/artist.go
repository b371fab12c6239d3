package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Artist struct {
	gorm.Model
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name  string    `gorm:"not null" json:"name"`
	Photo string    `json:"photo"`
	Bio   string    `json:"bio"`
}

func (artist *Artist) BeforeCreate(tx *gorm.DB) (err error) {
	if artist.ID == uuid.Nil {
		artist.ID = uuid.New()
	}
	return
}
