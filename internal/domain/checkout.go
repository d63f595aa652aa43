package domain

// ShippingDetails are the fields collected at the shipping stage. All six are
// required.
type ShippingDetails struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

type PaymentMethod string

const (
	PaymentCreditCard     PaymentMethod = "credit_card"
	PaymentPayPal         PaymentMethod = "paypal"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCreditCard, PaymentPayPal, PaymentCashOnDelivery:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}

// CardDetails carries the credit-card-only fields.
type CardDetails struct {
	Number     string `json:"cardNumber"`
	Expiration string `json:"expiration"`
	CVV        string `json:"cvv"`
}

// Masked reduces the card number to its last four digits for display.
func (c CardDetails) Masked() string {
	if len(c.Number) < 4 {
		return c.Number
	}
	return "**** **** **** " + c.Number[len(c.Number)-4:]
}

// PaymentDetails is a tagged variant: Card is set only when Method is
// credit_card, so card fields are unreachable for the other methods.
type PaymentDetails struct {
	Method PaymentMethod `json:"method"`
	Card   *CardDetails  `json:"card,omitempty"`
}
