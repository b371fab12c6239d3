package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/cmondlane/moztickets/internal/helpers"
	"github.com/cmondlane/moztickets/internal/models"
)

// ListMyPurchases returns the caller's purchases in insertion order.
func ListMyPurchases(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var purchases []models.Purchase
	if err := gormDB.Preload("Tickets").Preload("Validations").
		Where("user_id = ?", userID).Order("created_at asc").
		Find(&purchases).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving purchases.")
		return
	}

	c.JSON(http.StatusOK, purchases)
}

// getOwnedPurchase loads a purchase and checks it belongs to the caller.
// Admins may read any purchase.
func getOwnedPurchase(c *gin.Context) (*models.Purchase, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return nil, false
	}
	role, _ := c.Get("role")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return nil, false
	}
	gormDB := db.(*gorm.DB)

	var purchase models.Purchase
	if err := gormDB.Preload("Tickets").Preload("Validations").
		Where("id = ?", c.Param("id")).First(&purchase).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Purchase not found.")
			return nil, false
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving purchase.")
		return nil, false
	}

	if purchase.UserID != userID && role != models.RoleAdmin {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to access this purchase.")
		return nil, false
	}

	return &purchase, true
}

func GetPurchase(c *gin.Context) {
	purchase, ok := getOwnedPurchase(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, purchase)
}

// GenerateTicketQR renders the purchase's scan code as a PNG. A pending
// ticket still renders; the gate is where a pending payment gets rejected.
func GenerateTicketQR(c *gin.Context) {
	purchase, ok := getOwnedPurchase(c)
	if !ok {
		return
	}

	qrImage, err := qrcode.Encode(purchase.QRCode, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}

// SharePurchase builds the human-readable share payload for a ticket. The
// client decides between the native share sheet and the clipboard.
func SharePurchase(c *gin.Context) {
	purchase, ok := getOwnedPurchase(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title": fmt.Sprintf("Bilhete: %s", purchase.EventTitle),
		"text":  fmt.Sprintf("Meu bilhete para %s. Código: %s", purchase.EventTitle, purchase.QRCode),
		"code":  purchase.QRCode,
	})
}
