package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cmondlane/moztickets/internal/helpers"
	"github.com/cmondlane/moztickets/internal/models"
)

type AdRequest struct {
	Title    string `json:"title" binding:"required"`
	ImageURL string `json:"image_url" binding:"required"`
	Link     string `json:"link"`
}

func CreateAd(c *gin.Context) {
	var req AdRequest
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

	ad := models.Ad{
		ID:       uuid.New(),
		Title:    req.Title,
		ImageURL: req.ImageURL,
		Link:     req.Link,
		Active:   true,
	}

	if err := gormDB.Create(&ad).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create ad.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Ad created successfully.",
		"ad_id":   ad.ID,
	})
}

func ListAds(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var ads []models.Ad
	if err := gormDB.Where("active = ?", true).Order("created_at desc").Find(&ads).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving ads.")
		return
	}

	c.JSON(http.StatusOK, ads)
}

func DeleteAd(c *gin.Context) {
	adID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var ad models.Ad
	if err := gormDB.Where("id = ?", adID).First(&ad).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Ad not found.")
		return
	}

	if err := gormDB.Delete(&ad).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete ad.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ad deleted successfully.",
	})
}
