package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmondlane/moztickets/internal/helpers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupCheckoutRouter wires Checkout behind a stub auth context and no
// database. Detail validation runs before any ledger access, so rejection
// paths are fully exercisable here; a write reaching for the absent
// database would fail loudly.
func setupCheckoutRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/checkout", func(c *gin.Context) {
		c.Set("user_id", uuid.New())
		c.Next()
	}, Checkout)
	return router
}

func postCheckout(t *testing.T, router *gin.Engine, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/checkout", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCheckout_RejectsShortCardNumber(t *testing.T) {
	router := setupCheckoutRouter()

	w := postCheckout(t, router, map[string]any{
		"event_id":       uuid.New().String(),
		"ticket_type_id": uuid.New().String(),
		"method":         "card",
		"card_number":    "123",
		"expiry":         "12/25",
		"cvv":            "123",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp["signal"])
}

func TestCheckout_RejectsBadMobileMoneyPhone(t *testing.T) {
	router := setupCheckoutRouter()

	w := postCheckout(t, router, map[string]any{
		"event_id":       uuid.New().String(),
		"ticket_type_id": uuid.New().String(),
		"method":         "emola",
		"phone":          "811234567",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["message"], "EMOLA")
}

func TestCheckout_RejectsUnknownMethod(t *testing.T) {
	router := setupCheckoutRouter()

	w := postCheckout(t, router, map[string]any{
		"event_id":       uuid.New().String(),
		"ticket_type_id": uuid.New().String(),
		"method":         "paypal",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckout_RejectsMissingFields(t *testing.T) {
	router := setupCheckoutRouter()

	w := postCheckout(t, router, map[string]any{
		"method": "mpesa",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNewPurchaseCodes_RetriesOnCollision(t *testing.T) {
	var calls int
	var firstID, firstQR string
	exists := func(id, qr string) (bool, error) {
		calls++
		if calls == 1 {
			firstID, firstQR = id, qr
			return true, nil
		}
		return false, nil
	}

	id, qr, err := newPurchaseCodes(exists)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.NotEqual(t, firstID, id)
	assert.NotEqual(t, firstQR, qr)
	assert.True(t, strings.HasPrefix(qr, helpers.QRCodePrefix))
}

func TestNewPurchaseCodes_GivesUpAfterMaxAttempts(t *testing.T) {
	var calls int
	exists := func(id, qr string) (bool, error) {
		calls++
		return true, nil
	}

	_, _, err := newPurchaseCodes(exists)
	require.Error(t, err)
	assert.Equal(t, maxCodeAttempts, calls)
	assert.Contains(t, err.Error(), "unused ticket code")
}

func TestNewPurchaseCodes_PropagatesLookupError(t *testing.T) {
	lookupErr := errors.New("ledger unavailable")
	var calls int
	exists := func(id, qr string) (bool, error) {
		calls++
		return false, lookupErr
	}

	_, _, err := newPurchaseCodes(exists)
	require.ErrorIs(t, err, lookupErr)
	assert.Equal(t, 1, calls)
}
