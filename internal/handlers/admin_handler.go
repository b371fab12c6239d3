package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cmondlane/moztickets/internal/helpers"
	"github.com/cmondlane/moztickets/internal/models"
	"github.com/cmondlane/moztickets/internal/monitoring"
)

// settlePurchase applies an admin-only lifecycle move to a purchase. Both
// settlement paths share it: confirmation (pending -> completed) and
// failure (pending -> failed).
func settlePurchase(c *gin.Context, next models.PurchaseStatus, message string) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var purchase models.Purchase
	if err := gormDB.Where("id = ?", c.Param("id")).First(&purchase).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Purchase not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving purchase.")
		return
	}

	if err := purchase.Transition(next); err != nil {
		monitoring.RecordSettlement("rejected")
		if errors.Is(err, models.ErrIllegalTransition) {
			helpers.RespondWithError(c, http.StatusConflict, err.Error())
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update purchase.")
		return
	}

	if err := gormDB.Model(&models.Purchase{}).Where("id = ?", purchase.ID).
		Update("status", purchase.Status).Error; err != nil {
		monitoring.RecordSettlement("error")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update purchase.")
		return
	}

	monitoring.RecordSettlement("accepted")

	c.JSON(http.StatusOK, gin.H{
		"message":  message,
		"signal":   helpers.SignalSuccess,
		"purchase": purchase,
	})
}

// ConfirmReceipt marks a pending purchase as completed: a human confirmed
// the out-of-band mobile-money or bank transfer actually cleared. There is
// no automatic reconciliation.
func ConfirmReceipt(c *gin.Context) {
	settlePurchase(c, models.StatusCompleted, "Payment confirmed.")
}

// FailPurchase marks a pending purchase as failed when the transfer never
// arrives.
func FailPurchase(c *gin.Context) {
	settlePurchase(c, models.StatusFailed, "Purchase marked as failed.")
}

// ListPurchases feeds the admin finance table. Optional ?status= filter,
// pending review being the common case.
func ListPurchases(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	query := gormDB.Preload("Tickets").Preload("Validations").Order("created_at asc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var purchases []models.Purchase
	if err := query.Find(&purchases).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving purchases.")
		return
	}

	c.JSON(http.StatusOK, purchases)
}

// GetReports aggregates revenue over purchases that actually paid
// (completed or validated), total and per payment method, plus a count of
// purchases per status.
func GetReports(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	paidStatuses := []models.PurchaseStatus{models.StatusCompleted, models.StatusValidated}

	var total int64
	if err := gormDB.Model(&models.Purchase{}).
		Where("status IN ?", paidStatuses).
		Select("COALESCE(SUM(total), 0)").Scan(&total).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error computing report.")
		return
	}

	type methodRow struct {
		Method models.PaymentMethod `json:"method"`
		Total  int64                `json:"total"`
	}
	var byMethod []methodRow
	if err := gormDB.Model(&models.Purchase{}).
		Where("status IN ?", paidStatuses).
		Select("method, COALESCE(SUM(total), 0) as total").
		Group("method").Scan(&byMethod).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error computing report.")
		return
	}

	type statusRow struct {
		Status models.PurchaseStatus `json:"status"`
		Count  int64                 `json:"count"`
	}
	var byStatus []statusRow
	if err := gormDB.Model(&models.Purchase{}).
		Select("status, COUNT(*) as count").
		Group("status").Scan(&byStatus).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error computing report.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_revenue": total,
		"by_method":     byMethod,
		"by_status":     byStatus,
	})
}
