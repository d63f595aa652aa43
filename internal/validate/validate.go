// Package validate holds the pure form validators invoked before checkout
// stage transitions. An empty map signifies valid.
package validate

import (
	"regexp"
	"strings"

	"github.com/globaloptima/storefront/internal/domain"
)

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expirationRe = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvRe        = regexp.MustCompile(`^\d{3}$`)
	whitespaceRe = regexp.MustCompile(`\s`)
)

// Shipping checks that every field is non-empty after trimming.
func Shipping(d domain.ShippingDetails) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(d.FullName) == "" {
		errs["fullName"] = "Full name is required"
	}
	if strings.TrimSpace(d.Phone) == "" {
		errs["phone"] = "Phone is required"
	}
	if strings.TrimSpace(d.Address) == "" {
		errs["address"] = "Address is required"
	}
	if strings.TrimSpace(d.City) == "" {
		errs["city"] = "City is required"
	}
	if strings.TrimSpace(d.ZipCode) == "" {
		errs["zipCode"] = "ZIP code is required"
	}
	if strings.TrimSpace(d.Country) == "" {
		errs["country"] = "Country is required"
	}
	return errs
}

// Payment validates the card fields when the method is credit_card. The other
// methods carry no fields to check.
func Payment(d domain.PaymentDetails) map[string]string {
	errs := map[string]string{}
	if d.Method != domain.PaymentCreditCard {
		return errs
	}
	card := domain.CardDetails{}
	if d.Card != nil {
		card = *d.Card
	}
	if !cardNumberRe.MatchString(StripWhitespace(card.Number)) {
		errs["cardNumber"] = "Card number must be 16 digits"
	}
	if !expirationRe.MatchString(card.Expiration) {
		errs["expiration"] = "Expiration must be in MM/YY format"
	}
	if !cvvRe.MatchString(card.CVV) {
		errs["cvv"] = "CVV must be 3 digits"
	}
	return errs
}

// StripWhitespace removes all whitespace, matching how card numbers are
// normalized before validation and storage.
func StripWhitespace(s string) string {
	return whitespaceRe.ReplaceAllString(s, "")
}
