package domain

import "fmt"

// TaxRate applies to the full-precision subtotal wherever money is shown.
const TaxRate = 0.10

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// TotalsFor computes totals on full precision. Rounding happens only in
// FormatAmount, at display time.
func TotalsFor(lines []CartLine) Totals {
	var subtotal float64
	for _, l := range lines {
		subtotal += l.Product.Price * float64(l.Quantity)
	}
	tax := subtotal * TaxRate
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal + tax}
}

func FormatAmount(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
