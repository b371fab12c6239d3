package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cmondlane/moztickets/internal/helpers"
	"github.com/cmondlane/moztickets/internal/models"
	"github.com/cmondlane/moztickets/internal/monitoring"
)

type ValidateTicketRequest struct {
	Code       string `json:"code" binding:"required"`
	Checkpoint string `json:"checkpoint"`
}

// GateDecision is the outcome of presenting a code at the gate.
type GateDecision struct {
	Accepted bool
	Reason   string
}

// errTicketAlreadyTaken signals that another scan won the conditional
// status flip between this request's read and its write.
var errTicketAlreadyTaken = errors.New("ticket already validated by a concurrent scan")

const (
	reasonInvalidTicket    = "invalid ticket"
	reasonAlreadyValidated = "already validated"
	reasonPaymentPending   = "payment pending"
	reasonNotValidForEntry = "ticket not valid for entry"
	reasonAuthorized       = "authorized"
)

// admissionDecision applies the gate rules to the purchase matched by a
// scanned code (nil when nothing matched). Only a completed purchase is
// admitted; acceptance is the caller's cue to move it to validated.
func admissionDecision(p *models.Purchase) GateDecision {
	switch {
	case p == nil:
		return GateDecision{Accepted: false, Reason: reasonInvalidTicket}
	case p.Status == models.StatusValidated:
		return GateDecision{Accepted: false, Reason: reasonAlreadyValidated}
	case p.Status == models.StatusPending:
		return GateDecision{Accepted: false, Reason: reasonPaymentPending}
	case p.Status == models.StatusCompleted:
		return GateDecision{Accepted: true, Reason: reasonAuthorized}
	default:
		return GateDecision{Accepted: false, Reason: reasonNotValidForEntry}
	}
}

// ValidateTicket resolves a scanned code against the ledger and applies the
// admission rules. Gate rejections are 200 responses: the scan itself
// succeeded, the decision is the payload.
func ValidateTicket(c *gin.Context) {
	var req ValidateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	staffID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	staffUUID, ok := staffID.(uuid.UUID)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID type.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	// A scanned code may be either the QR token or the short purchase ID;
	// operators read the latter out loud when the camera fails.
	var purchase models.Purchase
	var matched *models.Purchase
	err := gormDB.Preload("Tickets").Where("qr_code = ? OR id = ?", req.Code, req.Code).First(&purchase).Error
	if err == nil {
		matched = &purchase
	} else if err != gorm.ErrRecordNotFound {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error looking up ticket.")
		return
	}

	decision := admissionDecision(matched)
	if !decision.Accepted {
		monitoring.RecordGateDecision("rejected")
		c.JSON(http.StatusOK, gin.H{
			"result": "rejected",
			"reason": decision.Reason,
			"signal": helpers.SignalError,
		})
		return
	}

	checkpoint := req.Checkpoint
	if checkpoint == "" {
		checkpoint = "main"
	}

	// The status flip is conditional on the row still being completed, so
	// two overlapping scans of the same code can only admit once: the
	// slower one matches zero rows and is turned away.
	err = gormDB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Purchase{}).
			Where("id = ? AND status = ?", purchase.ID, models.StatusCompleted).
			Update("status", models.StatusValidated)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errTicketAlreadyTaken
		}
		record := models.ValidationRecord{
			PurchaseID: purchase.ID,
			Checkpoint: checkpoint,
			StaffID:    staffUUID,
			Timestamp:  time.Now().UTC(),
		}
		return tx.Create(&record).Error
	})
	if err == errTicketAlreadyTaken {
		monitoring.RecordGateDecision("rejected")
		c.JSON(http.StatusOK, gin.H{
			"result": "rejected",
			"reason": reasonAlreadyValidated,
			"signal": helpers.SignalError,
		})
		return
	}
	if err != nil {
		monitoring.RecordGateDecision("error")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to validate ticket.")
		return
	}

	monitoring.RecordGateDecision("accepted")

	c.JSON(http.StatusOK, gin.H{
		"result": "accepted",
		"reason": decision.Reason,
		"signal": helpers.SignalSuccess,
		"ticket": gin.H{
			"event_title": purchase.EventTitle,
			"ticket_type": firstTicketType(&purchase),
		},
	})
}

func firstTicketType(p *models.Purchase) string {
	if len(p.Tickets) == 0 {
		return ""
	}
	return p.Tickets[0].Type
}
