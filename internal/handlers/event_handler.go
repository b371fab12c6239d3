package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cmondlane/moztickets/internal/helpers"
	"github.com/cmondlane/moztickets/internal/middleware"
	"github.com/cmondlane/moztickets/internal/models"
)

type TicketTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	Price       int    `json:"price" binding:"required,min=0"`
	Available   int    `json:"available" binding:"min=0"`
	Description string `json:"description"`
}

type EventRequest struct {
	Title       string              `json:"title" binding:"required"`
	Category    string              `json:"category" binding:"required,oneof=concert theater festival business"`
	Description string              `json:"description" binding:"required"`
	Date        time.Time           `json:"date" binding:"required"`
	Location    string              `json:"location" binding:"required"`
	City        string              `json:"city" binding:"required"`
	Image       string              `json:"image"`
	Organizer   string              `json:"organizer"`
	ArtistID    *uuid.UUID          `json:"artist_id"`
	TicketTypes []TicketTypeRequest `json:"ticket_types" binding:"required,min=1,dive"`
}

func CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	if req.ArtistID != nil {
		var artist models.Artist
		if err := gormDB.Where("id = ?", req.ArtistID).First(&artist).Error; err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Artist not found.")
			return
		}
	}

	event := models.Event{
		ID:          uuid.New(),
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		City:        req.City,
		Image:       req.Image,
		Organizer:   req.Organizer,
		ArtistID:    req.ArtistID,
	}
	for _, tt := range req.TicketTypes {
		event.TicketTypes = append(event.TicketTypes, models.TicketType{
			ID:          uuid.New(),
			Name:        tt.Name,
			Price:       tt.Price,
			Available:   tt.Available,
			Description: tt.Description,
		})
	}

	if err := gormDB.Create(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	middleware.GetCatalogCache(c).Invalidate(c.Request.Context(), "")

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Event published.",
		"event_id": event.ID,
	})
}

func ListEvents(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	search := c.Query("q")
	city := c.Query("city")
	category := c.Query("category")
	filtered := search != "" || city != "" || category != ""

	catalog := middleware.GetCatalogCache(c)

	// Only the unfiltered listing is cached; filtered queries go to the
	// database directly.
	if !filtered {
		var cached []models.Event
		if catalog.GetEventList(c.Request.Context(), &cached) {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	query := gormDB.Preload("TicketTypes").Preload("Artist").Order("date asc")
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	if city != "" {
		query = query.Where("city = ?", city)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	if !filtered {
		catalog.SetEventList(c.Request.Context(), events)
	}

	c.JSON(http.StatusOK, events)
}

func GetEvent(c *gin.Context) {
	eventID := c.Param("id")

	catalog := middleware.GetCatalogCache(c)

	var cached models.Event
	if catalog.GetEvent(c.Request.Context(), eventID, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Preload("TicketTypes").Preload("Artist").Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	catalog.SetEvent(c.Request.Context(), eventID, event)

	c.JSON(http.StatusOK, event)
}

func UpdateEvent(c *gin.Context) {
	eventID := c.Param("id")
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	event.Title = req.Title
	event.Category = req.Category
	event.Description = req.Description
	event.Date = req.Date
	event.Location = req.Location
	event.City = req.City
	event.Image = req.Image
	event.Organizer = req.Organizer
	event.ArtistID = req.ArtistID

	if err := gormDB.Save(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event.")
		return
	}

	middleware.GetCatalogCache(c).Invalidate(c.Request.Context(), eventID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully.",
		"event":   event,
	})
}

// DeleteEvent removes an event and its ticket types. Purchases keep their
// denormalized event title, so existing tickets still resolve at the gate.
func DeleteEvent(c *gin.Context) {
	eventID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	if err := gormDB.Select("TicketTypes").Delete(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event.")
		return
	}

	middleware.GetCatalogCache(c).Invalidate(c.Request.Context(), eventID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Event removed.",
	})
}
