package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPurchaseID(t *testing.T) {
	id, err := NewPurchaseID()
	require.NoError(t, err)
	assert.Len(t, id, purchaseIDLength)

	for _, c := range id {
		assert.Contains(t, codeAlphabet, string(c))
	}
}

func TestNewQRCode(t *testing.T) {
	code, err := NewQRCode()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(code, QRCodePrefix))
	assert.Len(t, code, len(QRCodePrefix)+qrTokenLength)

	for _, c := range code[len(QRCodePrefix):] {
		assert.Contains(t, codeAlphabet, string(c))
	}
}

func TestCodesAreDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code, err := NewQRCode()
		require.NoError(t, err)
		assert.False(t, seen[code], "generated a duplicate code within 1000 draws")
		seen[code] = true
	}
}
