package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cmondlane/moztickets/internal/helpers"
	"github.com/cmondlane/moztickets/internal/models"
)

type VideoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type" binding:"required,oneof=link upload"`
	URL         string `json:"url" binding:"required"`
	Thumbnail   string `json:"thumbnail"`
}

func CreateVideo(c *gin.Context) {
	var req VideoRequest
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

	video := models.VideoHighlight{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		URL:         req.URL,
		Thumbnail:   req.Thumbnail,
		Active:      true,
	}

	if err := gormDB.Create(&video).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to add video.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Video added successfully.",
		"video_id": video.ID,
	})
}

// ListVideos returns only active highlights; inactive ones stay hidden from
// the storefront but remain in the admin's own listing.
func ListVideos(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var videos []models.VideoHighlight
	if err := gormDB.Where("active = ?", true).Order("created_at desc").Find(&videos).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving videos.")
		return
	}

	c.JSON(http.StatusOK, videos)
}

func DeleteVideo(c *gin.Context) {
	videoID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var video models.VideoHighlight
	if err := gormDB.Where("id = ?", videoID).First(&video).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Video not found.")
		return
	}

	if err := gormDB.Delete(&video).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete video.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Video removed.",
	})
}
