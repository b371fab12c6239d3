package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cmondlane/moztickets/internal/helpers"
	"github.com/cmondlane/moztickets/internal/models"
)

type ArtistRequest struct {
	Name  string `json:"name" binding:"required"`
	Photo string `json:"photo"`
	Bio   string `json:"bio"`
}

func CreateArtist(c *gin.Context) {
	var req ArtistRequest
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

	artist := models.Artist{
		ID:    uuid.New(),
		Name:  req.Name,
		Photo: req.Photo,
		Bio:   req.Bio,
	}

	if err := gormDB.Create(&artist).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create artist.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Artist created successfully.",
		"artist_id": artist.ID,
	})
}

func ListArtists(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var artists []models.Artist
	if err := gormDB.Order("name asc").Find(&artists).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving artists.")
		return
	}

	c.JSON(http.StatusOK, artists)
}

func GetArtist(c *gin.Context) {
	artistID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var artist models.Artist
	if err := gormDB.Where("id = ?", artistID).First(&artist).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Artist not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving artist.")
		return
	}

	c.JSON(http.StatusOK, artist)
}

func DeleteArtist(c *gin.Context) {
	artistID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var artist models.Artist
	if err := gormDB.Where("id = ?", artistID).First(&artist).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Artist not found.")
		return
	}

	if err := gormDB.Delete(&artist).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete artist.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Artist deleted successfully.",
	})
}
