package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from PurchaseStatus
		to   PurchaseStatus
		want bool
	}{
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusFailed, true},
		{StatusPending, StatusValidated, false},
		{StatusPending, StatusPending, false},
		{StatusCompleted, StatusValidated, true},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusFailed, false},
		{StatusValidated, StatusPending, false},
		{StatusValidated, StatusCompleted, false},
		{StatusValidated, StatusFailed, false},
		{StatusFailed, StatusPending, false},
		{StatusFailed, StatusCompleted, false},
		{StatusFailed, StatusValidated, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestPurchase_Transition(t *testing.T) {
	t.Run("full lifecycle", func(t *testing.T) {
		p := Purchase{Status: StatusPending}

		require.NoError(t, p.Transition(StatusCompleted))
		assert.Equal(t, StatusCompleted, p.Status)

		require.NoError(t, p.Transition(StatusValidated))
		assert.Equal(t, StatusValidated, p.Status)
	})

	t.Run("validated is terminal", func(t *testing.T) {
		p := Purchase{Status: StatusValidated}

		for _, next := range []PurchaseStatus{StatusPending, StatusCompleted, StatusFailed} {
			err := p.Transition(next)
			require.ErrorIs(t, err, ErrIllegalTransition)
			assert.Equal(t, StatusValidated, p.Status, "status must not move after an illegal transition")
		}
	})

	t.Run("failed only reachable from pending", func(t *testing.T) {
		p := Purchase{Status: StatusPending}
		require.NoError(t, p.Transition(StatusFailed))

		completed := Purchase{Status: StatusCompleted}
		assert.ErrorIs(t, completed.Transition(StatusFailed), ErrIllegalTransition)
	})

	t.Run("pending cannot be validated directly", func(t *testing.T) {
		p := Purchase{Status: StatusPending}
		err := p.Transition(StatusValidated)
		require.ErrorIs(t, err, ErrIllegalTransition)
		assert.Equal(t, StatusPending, p.Status)
	})

	t.Run("error names both states", func(t *testing.T) {
		p := Purchase{Status: StatusFailed}
		err := p.Transition(StatusCompleted)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed")
		assert.Contains(t, err.Error(), "completed")
	})
}

func TestPaymentMethod(t *testing.T) {
	assert.True(t, MethodMPesa.IsMobileMoney())
	assert.True(t, MethodEMola.IsMobileMoney())
	assert.True(t, MethodMKesh.IsMobileMoney())
	assert.False(t, MethodCard.IsMobileMoney())
	assert.False(t, MethodBankTransfer.IsMobileMoney())

	for _, m := range []PaymentMethod{MethodMPesa, MethodEMola, MethodMKesh, MethodCard, MethodBankTransfer} {
		assert.True(t, m.Valid(), string(m))
	}
	assert.False(t, PaymentMethod("paypal").Valid())
	assert.False(t, PaymentMethod("").Valid())
}
