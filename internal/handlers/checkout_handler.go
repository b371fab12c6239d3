package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cmondlane/moztickets/internal/helpers"
	"github.com/cmondlane/moztickets/internal/models"
	"github.com/cmondlane/moztickets/internal/monitoring"
	"github.com/cmondlane/moztickets/internal/payment"
)

// CheckoutRequest is the buyer's cart collapsed into a single call: one
// event, one ticket type, quantity one. The cart structure upstream is a
// sequence, but checkout has always operated on a single item.
type CheckoutRequest struct {
	EventID      uuid.UUID            `json:"event_id" binding:"required"`
	TicketTypeID uuid.UUID            `json:"ticket_type_id" binding:"required"`
	Method       models.PaymentMethod `json:"method" binding:"required"`
	Phone        string               `json:"phone"`
	CardNumber   string               `json:"card_number"`
	Expiry       string               `json:"expiry"`
	CVV          string               `json:"cvv"`
}

// maxCodeAttempts bounds the collision retry loop for generated codes.
const maxCodeAttempts = 5

// Checkout validates the chosen payment method's details and, on success,
// appends a pending purchase to the ledger. Nothing is written on a
// validation failure.
func Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID type.")
		return
	}

	// Details are checked before anything touches the database: a rejected
	// method never reaches the ledger.
	// The method label must stay a closed set, so unrecognized client
	// input is bucketed rather than recorded verbatim.
	if !req.Method.Valid() {
		monitoring.RecordCheckout("unknown", "rejected")
		helpers.RespondWithError(c, http.StatusBadRequest, "Unknown payment method.")
		return
	}

	details := payment.Details{
		Phone: req.Phone,
		Card: payment.CardDetails{
			Number: req.CardNumber,
			Expiry: req.Expiry,
			CVV:    req.CVV,
		},
	}
	if err := payment.ValidateDetails(req.Method, details); err != nil {
		monitoring.RecordCheckout(string(req.Method), "rejected")
		helpers.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ?", req.EventID).First(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	var ticketType models.TicketType
	if err := gormDB.Where("id = ? AND event_id = ?", req.TicketTypeID, req.EventID).First(&ticketType).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Ticket type not found for this event.")
		return
	}

	purchaseID, qrCode, err := newPurchaseCodes(ledgerCodeExists(gormDB))
	if err != nil {
		monitoring.RecordCheckout(string(req.Method), "error")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate ticket code.")
		return
	}

	purchase := models.Purchase{
		ID:         purchaseID,
		UserID:     userUUID,
		EventID:    event.ID,
		EventTitle: event.Title,
		Total:      ticketType.Price,
		Method:     req.Method,
		QRCode:     qrCode,
		Status:     models.StatusPending,
		Tickets: []models.PurchaseTicket{
			{Type: ticketType.Name, Quantity: 1, Price: ticketType.Price},
		},
	}

	if err := gormDB.Create(&purchase).Error; err != nil {
		monitoring.RecordCheckout(string(req.Method), "error")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to record purchase.")
		return
	}

	monitoring.RecordCheckout(string(req.Method), "accepted")

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Request sent. Awaiting payment confirmation.",
		"signal":   helpers.SignalSuccess,
		"purchase": purchase,
	})
}

// codeExistsFunc reports whether a candidate ID/QR pair collides with the
// ledger.
type codeExistsFunc func(id, qr string) (bool, error)

// newPurchaseCodes draws a fresh purchase ID and QR code, retrying while
// either collides with a ledger entry. Both columns are lookup targets at
// the gate, so a new code may not equal any existing ID or QR code.
func newPurchaseCodes(exists codeExistsFunc) (string, string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		id, err := helpers.NewPurchaseID()
		if err != nil {
			return "", "", err
		}
		qr, err := helpers.NewQRCode()
		if err != nil {
			return "", "", err
		}

		taken, err := exists(id, qr)
		if err != nil {
			return "", "", err
		}
		if !taken {
			return id, qr, nil
		}
	}
	return "", "", fmt.Errorf("could not find an unused ticket code after %d attempts", maxCodeAttempts)
}

// ledgerCodeExists checks candidate codes against both lookup columns.
func ledgerCodeExists(gormDB *gorm.DB) codeExistsFunc {
	return func(id, qr string) (bool, error) {
		var count int64
		err := gormDB.Model(&models.Purchase{}).
			Where("id IN (?, ?) OR qr_code IN (?, ?)", id, qr, id, qr).
			Count(&count).Error
		return count > 0, err
	}
}
