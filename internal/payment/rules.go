// Package payment holds the syntactic validation rules for checkout details.
// No processor is involved anywhere, so the checks are deliberately shallow:
// shape only, no Luhn, no issuer or network lookup.
package payment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cmondlane/moztickets/internal/models"
)

// mobilePrefixes are the Mozambican operator prefixes accepted for
// mobile-money numbers.
var mobilePrefixes = []string{"82", "83", "84", "85", "86", "87"}

var expiryRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)

// CardDetails carries the raw card fields as typed by the buyer.
type CardDetails struct {
	Number string
	Expiry string
	CVV    string
}

// ValidMobileMoneyPhone reports whether phone is a well-formed mobile-money
// number: nine digits after stripping whitespace, starting with a known
// operator prefix.
func ValidMobileMoneyPhone(phone string) bool {
	clean := stripSpaces(phone)
	if len(clean) != 9 {
		return false
	}
	for _, c := range clean {
		if c < '0' || c > '9' {
			return false
		}
	}
	for _, p := range mobilePrefixes {
		if strings.HasPrefix(clean, p) {
			return true
		}
	}
	return false
}

// ValidCard reports whether the card fields are well-formed: sixteen digits
// after stripping whitespace, MM/YY expiry, three-character cvv.
func ValidCard(card CardDetails) bool {
	clean := stripSpaces(card.Number)
	if len(clean) != 16 {
		return false
	}
	for _, c := range clean {
		if c < '0' || c > '9' {
			return false
		}
	}
	return expiryRegex.MatchString(card.Expiry) && len(card.CVV) == 3
}

// Details carries whatever the buyer entered for the chosen method.
type Details struct {
	Phone string
	Card  CardDetails
}

// ValidateDetails checks the captured details against the chosen method.
// bank_transfer has no detail capture and always passes.
func ValidateDetails(method models.PaymentMethod, details Details) error {
	switch {
	case method.IsMobileMoney():
		if !ValidMobileMoneyPhone(details.Phone) {
			return fmt.Errorf("enter a valid %s number (82/83/84/85/86/87)", strings.ToUpper(string(method)))
		}
	case method == models.MethodCard:
		if !ValidCard(details.Card) {
			return fmt.Errorf("card details are incorrect")
		}
	case method == models.MethodBankTransfer:
	default:
		return fmt.Errorf("unknown payment method: %s", method)
	}
	return nil
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}
