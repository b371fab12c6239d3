package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmondlane/moztickets/internal/models"
)

func TestValidMobileMoneyPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  bool
	}{
		{"valid mpesa number", "841234567", true},
		{"valid with spaces", "84 123 4567", true},
		{"valid vodacom 85", "851234567", true},
		{"valid movitel 86", "861234567", true},
		{"valid tmcel 82", "821234567", true},
		{"all prefixes 83", "831234567", true},
		{"all prefixes 87", "871234567", true},
		{"bad prefix 81", "811234567", false},
		{"bad prefix 90", "901234567", false},
		{"too short", "8412345", false},
		{"too long", "8412345678", false},
		{"empty", "", false},
		{"letters", "84abc4567", false},
		{"only spaces", "         ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidMobileMoneyPhone(tt.phone))
		})
	}
}

func TestValidCard(t *testing.T) {
	tests := []struct {
		name string
		card CardDetails
		want bool
	}{
		{"valid card", CardDetails{"4111111111111111", "12/25", "123"}, true},
		{"valid with spaces", CardDetails{"4111 1111 1111 1111", "01/30", "987"}, true},
		{"fifteen digits", CardDetails{"411111111111", "12/25", "123"}, false},
		{"seventeen digits", CardDetails{"41111111111111111", "12/25", "123"}, false},
		{"month thirteen", CardDetails{"4111111111111111", "13/25", "123"}, false},
		{"month zero", CardDetails{"4111111111111111", "00/25", "123"}, false},
		{"expiry without slash", CardDetails{"4111111111111111", "1225", "123"}, false},
		{"cvv too short", CardDetails{"4111111111111111", "12/25", "12"}, false},
		{"cvv too long", CardDetails{"4111111111111111", "12/25", "1234"}, false},
		{"letters in number", CardDetails{"4111x11111111111", "12/25", "123"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidCard(tt.card))
		})
	}
}

func TestValidateDetails(t *testing.T) {
	t.Run("mobile money requires valid phone", func(t *testing.T) {
		err := ValidateDetails(models.MethodMPesa, Details{Phone: "811234567"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MPESA")
		assert.Contains(t, err.Error(), "82/83/84/85/86/87")

		assert.NoError(t, ValidateDetails(models.MethodMPesa, Details{Phone: "841234567"}))
		assert.NoError(t, ValidateDetails(models.MethodEMola, Details{Phone: "861234567"}))
		assert.Error(t, ValidateDetails(models.MethodMKesh, Details{Phone: "8412345"}))
	})

	t.Run("card requires valid fields", func(t *testing.T) {
		err := ValidateDetails(models.MethodCard, Details{Card: CardDetails{"123", "12/25", "123"}})
		require.Error(t, err)

		assert.NoError(t, ValidateDetails(models.MethodCard, Details{
			Card: CardDetails{"4111111111111111", "12/25", "123"},
		}))
	})

	t.Run("bank transfer always passes", func(t *testing.T) {
		assert.NoError(t, ValidateDetails(models.MethodBankTransfer, Details{}))
	})

	t.Run("unknown method rejected", func(t *testing.T) {
		err := ValidateDetails(models.PaymentMethod("paypal"), Details{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown payment method")
	})
}
