package checkout

import (
	"context"
	"sync"

	"github.com/globaloptima/storefront/internal/cart"
	"github.com/globaloptima/storefront/internal/domain"
	"github.com/globaloptima/storefront/internal/orders"
	"github.com/globaloptima/storefront/internal/validate"
)

// Flow is the four-stage checkout state machine. It is ephemeral: one Flow
// per checkout attempt, never persisted, discarded when the host navigates
// away or the order completes. The host must not start a Flow on an empty
// cart (ErrEmptyCart is provided for that gate).
type Flow struct {
	mu         sync.Mutex
	stage      Stage
	shipping   *domain.ShippingDetails
	payment    *domain.PaymentDetails
	submitting bool
	submitErr  string
	order      *domain.Order

	engine    *cart.Engine
	submitter orders.Submitter
}

func NewFlow(engine *cart.Engine, submitter orders.Submitter) *Flow {
	return &Flow{engine: engine, submitter: submitter}
}

func (f *Flow) Stage() Stage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stage
}

// Completed reports whether the order was placed.
func (f *Flow) Completed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.order != nil
}

// Order returns the placed order, or nil before success.
func (f *Flow) Order() *domain.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.order
}

// SubmitError returns the message from the last failed submission, empty
// when none.
func (f *Flow) SubmitError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitErr
}

// Submitting reports whether a submission is in flight.
func (f *Flow) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Shipping returns the stored shipping details for prefilling the form on
// back-navigation.
func (f *Flow) Shipping() *domain.ShippingDetails {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.shipping == nil {
		return nil
	}
	s := *f.shipping
	return &s
}

// Payment returns the stored payment details for prefilling.
func (f *Flow) Payment() *domain.PaymentDetails {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.payment == nil {
		return nil
	}
	p := *f.payment
	if p.Card != nil {
		card := *p.Card
		p.Card = &card
	}
	return &p
}

// Next advances out of the review stage. Later stages advance only through
// their submit calls.
func (f *Flow) Next() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage == StageReview {
		f.stage = StageShipping
	}
}

// Back retreats one stage. It is a no-op at review, rejected while a
// submission is in flight, and rejected after completion.
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitting {
		return ErrSubmitting
	}
	if f.order != nil {
		return ErrCompleted
	}
	if f.stage > StageReview {
		f.stage--
	}
	return nil
}

// SubmitShipping validates and stores the shipping details, advancing to the
// payment stage. A non-empty map reports field errors; stored data and stage
// are untouched on failure.
func (f *Flow) SubmitShipping(d domain.ShippingDetails) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage != StageShipping {
		return nil, ErrWrongStage
	}
	if errs := validate.Shipping(d); len(errs) > 0 {
		return errs, nil
	}
	f.shipping = &d
	f.stage = StagePayment
	return nil, nil
}

// SubmitPayment validates and stores the payment details, advancing to the
// confirmation stage. Card numbers are stored whitespace-stripped; non-card
// methods drop card fields entirely.
func (f *Flow) SubmitPayment(d domain.PaymentDetails) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage != StagePayment {
		return nil, ErrWrongStage
	}
	if errs := validate.Payment(d); len(errs) > 0 {
		return errs, nil
	}
	if d.Method == domain.PaymentCreditCard && d.Card != nil {
		card := *d.Card
		card.Number = validate.StripWhitespace(card.Number)
		d.Card = &card
	} else {
		d.Card = nil
	}
	f.payment = &d
	f.stage = StageConfirmation
	return nil, nil
}

// Confirm submits the order. The cart snapshot and totals are read at call
// time, so a retry with an unchanged cart resubmits the identical payload.
// While in flight, further Confirm and Back calls are rejected. On success
// the cart is cleared and the flow becomes terminal; on failure the message
// is recorded and the user may retry.
func (f *Flow) Confirm(ctx context.Context) (*domain.Order, error) {
	f.mu.Lock()
	if f.stage != StageConfirmation {
		f.mu.Unlock()
		return nil, ErrWrongStage
	}
	if f.order != nil {
		f.mu.Unlock()
		return nil, ErrCompleted
	}
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitting
	}
	f.submitting = true
	f.submitErr = ""
	shipping := *f.shipping
	payment := *f.payment
	f.mu.Unlock()

	lines := f.engine.Lines()
	totals := domain.TotalsFor(lines)
	req := domain.OrderRequest{
		Items:    lines,
		Shipping: shipping,
		Payment:  payment,
		Subtotal: totals.Subtotal,
		Tax:      totals.Tax,
		Total:    totals.Total,
	}

	order, err := f.submitter.Submit(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		f.submitErr = err.Error()
		return nil, err
	}
	f.order = order
	f.engine.Clear(ctx)
	return order, nil
}

// Summary is the confirmation-stage view: items, shipping, masked payment,
// and totals.
type Summary struct {
	Items         []domain.CartLine      `json:"items"`
	Shipping      domain.ShippingDetails `json:"shipping"`
	PaymentMethod domain.PaymentMethod   `json:"paymentMethod"`
	MaskedCard    string                 `json:"maskedCard,omitempty"`
	Totals        domain.Totals          `json:"totals"`
}

func (f *Flow) Summary() Summary {
	lines := f.engine.Lines()

	f.mu.Lock()
	defer f.mu.Unlock()
	s := Summary{
		Items:  lines,
		Totals: domain.TotalsFor(lines),
	}
	if f.shipping != nil {
		s.Shipping = *f.shipping
	}
	if f.payment != nil {
		s.PaymentMethod = f.payment.Method
		if f.payment.Card != nil {
			s.MaskedCard = f.payment.Card.Masked()
		}
	}
	return s
}
