package domain

// CartLine is one (product, quantity) pair. A cart holds at most one line per
// product id.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
