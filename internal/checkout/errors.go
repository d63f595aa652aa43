package checkout

import "errors"

var (
	ErrEmptyCart  = errors.New("cart is empty, nothing to checkout")
	ErrWrongStage = errors.New("operation is not valid at the current stage")
	ErrSubmitting = errors.New("order submission already in flight")
	ErrCompleted  = errors.New("checkout already completed")
)
