package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TicketType struct {
	gorm.Model
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Price       int       `gorm:"not null" json:"price"`
	Available   int       `gorm:"not null" json:"available"`
	Description string    `json:"description"`
	EventID     uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
}

func (ticketType *TicketType) BeforeCreate(tx *gorm.DB) (err error) {
	if ticketType.ID == uuid.Nil {
		ticketType.ID = uuid.New()
	}
	return
}
