package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is the closed set of methods the storefront offers.
type PaymentMethod string

const (
	MethodMPesa        PaymentMethod = "mpesa"
	MethodEMola        PaymentMethod = "emola"
	MethodMKesh        PaymentMethod = "mkesh"
	MethodCard         PaymentMethod = "card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) IsMobileMoney() bool {
	return m == MethodMPesa || m == MethodEMola || m == MethodMKesh
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodMPesa, MethodEMola, MethodMKesh, MethodCard, MethodBankTransfer:
		return true
	}
	return false
}

// PurchaseStatus is the lifecycle state of a purchase.
type PurchaseStatus string

const (
	StatusPending   PurchaseStatus = "pending"
	StatusCompleted PurchaseStatus = "completed"
	StatusValidated PurchaseStatus = "validated"
	StatusFailed    PurchaseStatus = "failed"
)

var ErrIllegalTransition = errors.New("illegal purchase status transition")

// allowedTransitions keys the current status to the statuses it may move to.
// validated and failed are terminal; nothing moves backward.
var allowedTransitions = map[PurchaseStatus][]PurchaseStatus{
	StatusPending:   {StatusCompleted, StatusFailed},
	StatusCompleted: {StatusValidated},
	StatusValidated: {},
	StatusFailed:    {},
}

// CanTransition reports whether moving from s to next is a legal lifecycle move.
func (s PurchaseStatus) CanTransition(next PurchaseStatus) bool {
	for _, t := range allowedTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Purchase is one ticket reservation. ID is the short alphanumeric code shown
// to the buyer; QRCode is the scan target presented at the gate. Both are
// accepted by the gate lookup. EventTitle is a point-in-time copy so the
// record survives deletion of the event itself.
type Purchase struct {
	ID          string             `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	EventID     uuid.UUID          `gorm:"type:uuid;not null" json:"event_id"`
	EventTitle  string             `gorm:"not null" json:"event_title"`
	Total       int                `gorm:"not null" json:"total"`
	Method      PaymentMethod      `gorm:"not null" json:"method"`
	QRCode      string             `gorm:"not null;uniqueIndex" json:"qr_code"`
	Status      PurchaseStatus     `gorm:"not null;default:'pending'" json:"status"`
	Tickets     []PurchaseTicket   `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE" json:"tickets"`
	Validations []ValidationRecord `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE" json:"validations,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"-"`
}

// PurchaseTicket is one line item of a purchase.
type PurchaseTicket struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	PurchaseID string `gorm:"not null;index" json:"-"`
	Type       string `gorm:"not null" json:"type"`
	Quantity   int    `gorm:"not null" json:"quantity"`
	Price      int    `gorm:"not null" json:"price"`
}

// ValidationRecord is one gate validation audit entry. Append-only: records
// are only ever created, never updated or deleted.
type ValidationRecord struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	PurchaseID string    `gorm:"not null;index" json:"-"`
	Checkpoint string    `gorm:"not null" json:"checkpoint"`
	StaffID    uuid.UUID `gorm:"type:uuid;not null" json:"staff_id"`
	Timestamp  time.Time `gorm:"not null" json:"timestamp"`
}

// Transition moves the purchase to next, rejecting anything the lifecycle
// table does not allow.
func (p *Purchase) Transition(next PurchaseStatus) error {
	if !p.Status.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, p.Status, next)
	}
	p.Status = next
	return nil
}
