package domain

import "time"

// OrderRequest is the payload sent to the order-submission service. The id
// and timestamp are assigned by the service, never by the caller.
type OrderRequest struct {
	Items    []CartLine      `json:"items"`
	Shipping ShippingDetails `json:"shipping"`
	Payment  PaymentDetails  `json:"payment"`
	Subtotal float64         `json:"subtotal"`
	Tax      float64         `json:"tax"`
	Total    float64         `json:"total"`
}

type Order struct {
	ID        string          `json:"id"`
	Items     []CartLine      `json:"items"`
	Shipping  ShippingDetails `json:"shipping"`
	Payment   PaymentDetails  `json:"payment"`
	Subtotal  float64         `json:"subtotal"`
	Tax       float64         `json:"tax"`
	Total     float64         `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}
