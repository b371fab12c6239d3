package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	gorm.Model
	ID          uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	Title       string       `gorm:"not null" json:"title"`
	Category    string       `gorm:"not null;index" json:"category"`
	Description string       `gorm:"not null" json:"description"`
	Date        time.Time    `gorm:"not null" json:"date"`
	Location    string       `gorm:"not null" json:"location"`
	City        string       `gorm:"not null;index" json:"city"`
	Image       string       `json:"image"`
	Organizer   string       `json:"organizer"`
	ArtistID    *uuid.UUID   `gorm:"type:uuid" json:"artist_id,omitempty"`
	Artist      *Artist      `gorm:"foreignKey:ArtistID" json:"artist,omitempty"`
	TicketTypes []TicketType `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"ticket_types"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}
