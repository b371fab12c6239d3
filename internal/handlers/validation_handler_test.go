package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cmondlane/moztickets/internal/models"
)

func TestAdmissionDecision(t *testing.T) {
	tests := []struct {
		name     string
		purchase *models.Purchase
		accepted bool
		reason   string
	}{
		{"no match", nil, false, reasonInvalidTicket},
		{"already validated", &models.Purchase{Status: models.StatusValidated}, false, reasonAlreadyValidated},
		{"payment pending", &models.Purchase{Status: models.StatusPending}, false, reasonPaymentPending},
		{"failed payment", &models.Purchase{Status: models.StatusFailed}, false, reasonNotValidForEntry},
		{"completed admits", &models.Purchase{Status: models.StatusCompleted}, true, reasonAuthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := admissionDecision(tt.purchase)
			assert.Equal(t, tt.accepted, decision.Accepted)
			assert.Equal(t, tt.reason, decision.Reason)
		})
	}
}

// A second scan of the same ticket must never be admitted: acceptance moves
// the purchase to validated, and validated is rejected.
func TestAdmissionDecision_ScanTwice(t *testing.T) {
	p := &models.Purchase{Status: models.StatusCompleted}

	first := admissionDecision(p)
	require.True(t, first.Accepted)
	require.NoError(t, p.Transition(models.StatusValidated))

	second := admissionDecision(p)
	assert.False(t, second.Accepted)
	assert.Equal(t, reasonAlreadyValidated, second.Reason)
}

// setupGateRouter wires ValidateTicket behind a mocked Postgres connection
// and a stub staff identity.
func setupGateRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/validate", func(c *gin.Context) {
		c.Set("db", gormDB)
		c.Set("user_id", uuid.New())
		c.Set("role", models.RoleStaff)
		c.Next()
	}, ValidateTicket)
	return router, mock
}

func expectPurchaseLookup(mock sqlmock.Sqlmock, status models.PurchaseStatus) {
	mock.ExpectQuery(`SELECT (.+) FROM "purchases" WHERE qr_code = (.+) OR id = (.+)`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "user_id", "event_id", "event_title", "total", "method", "qr_code", "status", "created_at", "updated_at"},
		).AddRow(
			"A1B2C3D", uuid.New().String(), uuid.New().String(), "Festival da Marrabenta 2024",
			1500, "mpesa", "MOZ-XY12ZW34QP", string(status), time.Now(), time.Now(),
		))
	mock.ExpectQuery(`SELECT (.+) FROM "purchase_tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "purchase_id", "type", "quantity", "price"}))
}

func postValidate(t *testing.T, router *gin.Engine, code string) map[string]any {
	t.Helper()
	payload, err := json.Marshal(map[string]string{"code": code, "checkpoint": "norte"})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/validate", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestValidateTicket_AcceptFlipsStatusConditionally(t *testing.T) {
	router, mock := setupGateRouter(t)

	expectPurchaseLookup(mock, models.StatusCompleted)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "purchases" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "validation_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	resp := postValidate(t, router, "MOZ-XY12ZW34QP")

	assert.Equal(t, "accepted", resp["result"])
	assert.Equal(t, "success", resp["signal"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A scan that read completed but lost the status flip to a concurrent scan
// must be rejected, not admitted a second time. The conditional update
// matching zero rows is exactly that losing position.
func TestValidateTicket_LosingConcurrentScanRejected(t *testing.T) {
	router, mock := setupGateRouter(t)

	expectPurchaseLookup(mock, models.StatusCompleted)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "purchases" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	resp := postValidate(t, router, "MOZ-XY12ZW34QP")

	assert.Equal(t, "rejected", resp["result"])
	assert.Equal(t, reasonAlreadyValidated, resp["reason"])
	assert.Equal(t, "error", resp["signal"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The settlement and gate paths compose into the only accepting lifecycle:
// pending -> completed -> validated.
func TestLifecycle_SettleThenValidate(t *testing.T) {
	p := &models.Purchase{Status: models.StatusPending}

	// Gate must reject while payment is unconfirmed.
	assert.False(t, admissionDecision(p).Accepted)
	assert.Equal(t, reasonPaymentPending, admissionDecision(p).Reason)

	// Admin confirms receipt.
	require.NoError(t, p.Transition(models.StatusCompleted))

	// Now the gate admits, once.
	require.True(t, admissionDecision(p).Accepted)
	require.NoError(t, p.Transition(models.StatusValidated))
	assert.Equal(t, reasonAlreadyValidated, admissionDecision(p).Reason)
}
