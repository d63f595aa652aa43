package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globaloptima/storefront/internal/domain"
)

type fixedOutcome bool

func (f fixedOutcome) Succeeds() bool { return bool(f) }

func sampleRequest() domain.OrderRequest {
	return domain.OrderRequest{
		Items: []domain.CartLine{
			{Product: domain.Product{ID: "1", Title: "Wireless Headphones", Price: 199.99}, Quantity: 1},
		},
		Shipping: domain.ShippingDetails{FullName: "Ada Lovelace", Country: "UK"},
		Payment:  domain.PaymentDetails{Method: domain.PaymentPayPal},
		Subtotal: 199.99,
		Tax:      19.999,
		Total:    219.989,
	}
}

func TestSubmit_SuccessAssignsIDAndTimestamp(t *testing.T) {
	s := NewSimulatedSubmitter(fixedOutcome(true))

	order, err := s.Submit(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Contains(t, order.ID, "order-")
	assert.False(t, order.CreatedAt.IsZero())
	assert.Equal(t, sampleRequest().Items, order.Items)
	assert.InDelta(t, 219.989, order.Total, 1e-9)
}

func TestSubmit_FailureIsRetryable(t *testing.T) {
	s := NewSimulatedSubmitter(fixedOutcome(false))

	order, err := s.Submit(context.Background(), sampleRequest())

	require.Error(t, err)
	assert.Nil(t, order)

	var retryable *RetryableError
	require.True(t, errors.As(err, &retryable))
	assert.Equal(t, "Order creation failed. Please try again.", retryable.Reason)
}
