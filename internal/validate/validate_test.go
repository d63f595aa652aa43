package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/globaloptima/storefront/internal/domain"
)

func validShipping() domain.ShippingDetails {
	return domain.ShippingDetails{
		FullName: "Ada Lovelace",
		Phone:    "+1 555 0100",
		Address:  "12 Analytical Way",
		City:     "London",
		ZipCode:  "E1 6AN",
		Country:  "UK",
	}
}

func TestShipping_Valid(t *testing.T) {
	assert.Empty(t, Shipping(validShipping()))
}

func TestShipping_BlankFieldsAreKeyed(t *testing.T) {
	d := validShipping()
	d.FullName = "   "
	d.ZipCode = ""

	errs := Shipping(d)

	assert.Len(t, errs, 2)
	assert.Contains(t, errs, "fullName")
	assert.Contains(t, errs, "zipCode")
}

func TestShipping_AllBlank(t *testing.T) {
	errs := Shipping(domain.ShippingDetails{})
	assert.Len(t, errs, 6)
}

func TestPayment_ValidCard(t *testing.T) {
	errs := Payment(domain.PaymentDetails{
		Method: domain.PaymentCreditCard,
		Card: &domain.CardDetails{
			Number:     "1234567890123456",
			Expiration: "12/25",
			CVV:        "123",
		},
	})
	assert.Empty(t, errs)
}

func TestPayment_CardNumberWhitespaceIsStripped(t *testing.T) {
	errs := Payment(domain.PaymentDetails{
		Method: domain.PaymentCreditCard,
		Card: &domain.CardDetails{
			Number:     "1234 5678 9012 3456",
			Expiration: "12/25",
			CVV:        "123",
		},
	})
	assert.Empty(t, errs)
}

func TestPayment_ShortCardNumber(t *testing.T) {
	errs := Payment(domain.PaymentDetails{
		Method: domain.PaymentCreditCard,
		Card: &domain.CardDetails{
			Number:     "123",
			Expiration: "12/25",
			CVV:        "123",
		},
	})
	assert.Contains(t, errs, "cardNumber")
	assert.NotContains(t, errs, "expiration")
	assert.NotContains(t, errs, "cvv")
}

func TestPayment_ExpirationMissingSlash(t *testing.T) {
	errs := Payment(domain.PaymentDetails{
		Method: domain.PaymentCreditCard,
		Card: &domain.CardDetails{
			Number:     "1234567890123456",
			Expiration: "1225",
			CVV:        "123",
		},
	})
	assert.Contains(t, errs, "expiration")
}

func TestPayment_MissingCardFieldsAllKeyed(t *testing.T) {
	errs := Payment(domain.PaymentDetails{Method: domain.PaymentCreditCard})
	assert.Len(t, errs, 3)
}

func TestPayment_NonCardMethodsBypassValidation(t *testing.T) {
	for _, method := range []domain.PaymentMethod{domain.PaymentPayPal, domain.PaymentCashOnDelivery} {
		assert.Empty(t, Payment(domain.PaymentDetails{Method: method}))
	}
}

func TestStripWhitespace(t *testing.T) {
	assert.Equal(t, "1234567890123456", StripWhitespace(" 1234 5678\t9012 3456 "))
}
