package helpers

import (
	"crypto/rand"
)

// QRCodePrefix marks every scan code issued by this storefront.
const QRCodePrefix = "MOZ-"

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	purchaseIDLength = 7
	qrTokenLength    = 10
)

// randomCode returns n random characters from the uppercase alphanumeric
// alphabet, drawn from crypto/rand.
func randomCode(n int) (string, error) {
	byt := make([]byte, n)
	if _, err := rand.Read(byt); err != nil {
		return "", err
	}
	for i := range byt {
		byt[i] = codeAlphabet[int(byt[i])%len(codeAlphabet)]
	}
	return string(byt), nil
}

// NewPurchaseID returns a short buyer-facing purchase code.
func NewPurchaseID() (string, error) {
	return randomCode(purchaseIDLength)
}

// NewQRCode returns a fresh gate scan code. The token is long enough that
// collisions stay unlikely, but callers must still check the ledger and
// retry: uniqueness is a ledger invariant, not a generation guarantee.
func NewQRCode() (string, error) {
	token, err := randomCode(qrTokenLength)
	if err != nil {
		return "", err
	}
	return QRCodePrefix + token, nil
}
