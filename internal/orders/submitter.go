package orders

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/globaloptima/storefront/internal/domain"
)

// Submitter accepts a cart snapshot and returns the created order, or fails
// with a retryable error. The id and timestamp on the returned order are
// assigned here, never by the caller.
type Submitter interface {
	Submit(ctx context.Context, req domain.OrderRequest) (*domain.Order, error)
}

// RetryableError reports a submission failure the user may retry. Dedup of
// repeated submissions is the order service's concern, not the caller's.
type RetryableError struct {
	Reason string
}

func (e *RetryableError) Error() string {
	return e.Reason
}

// OutcomeSource decides whether a submission attempt succeeds.
type OutcomeSource interface {
	Succeeds() bool
}

// RandomOutcome fails roughly half of all submissions.
type RandomOutcome struct{}

func (RandomOutcome) Succeeds() bool {
	return rand.Intn(2) == 0
}

// SimulatedSubmitter stands in for the real order service.
type SimulatedSubmitter struct {
	outcome OutcomeSource
}

func NewSimulatedSubmitter(outcome OutcomeSource) *SimulatedSubmitter {
	return &SimulatedSubmitter{outcome: outcome}
}

func (s *SimulatedSubmitter) Submit(_ context.Context, req domain.OrderRequest) (*domain.Order, error) {
	if !s.outcome.Succeeds() {
		return nil, &RetryableError{Reason: "Order creation failed. Please try again."}
	}

	return &domain.Order{
		ID:        fmt.Sprintf("order-%s", uuid.NewString()),
		Items:     req.Items,
		Shipping:  req.Shipping,
		Payment:   req.Payment,
		Subtotal:  req.Subtotal,
		Tax:       req.Tax,
		Total:     req.Total,
		CreatedAt: time.Now().UTC(),
	}, nil
}
