package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/globaloptima/storefront/internal/cart"
	"github.com/globaloptima/storefront/internal/checkout"
	"github.com/globaloptima/storefront/internal/domain"
	"github.com/globaloptima/storefront/internal/orders"
)

// CheckoutHandler hosts at most one checkout flow at a time. Starting a new
// checkout replaces any abandoned one, which mirrors navigating away from a
// half-finished checkout.
type CheckoutHandler struct {
	mu      sync.Mutex
	flow    *checkout.Flow
	engine  *cart.Engine
	newFlow func() *checkout.Flow
	timeout time.Duration
}

func NewCheckoutHandler(engine *cart.Engine, submitter orders.Submitter, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		engine:  engine,
		newFlow: func() *checkout.Flow { return checkout.NewFlow(engine, submitter) },
		timeout: timeout,
	}
}

func (h *CheckoutHandler) current() *checkout.Flow {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.flow
}

type CheckoutStateResponse struct {
	Stage       string           `json:"stage"`
	Submitting  bool             `json:"submitting"`
	SubmitError string           `json:"submitError,omitempty"`
	Completed   bool             `json:"completed"`
	Summary     checkout.Summary `json:"summary"`
	Order       *domain.Order    `json:"order,omitempty"`
}

func stateResponse(f *checkout.Flow) CheckoutStateResponse {
	return CheckoutStateResponse{
		Stage:       f.Stage().String(),
		Submitting:  f.Submitting(),
		SubmitError: f.SubmitError(),
		Completed:   f.Completed(),
		Summary:     f.Summary(),
		Order:       f.Order(),
	}
}

// Start handles POST /api/checkout. An empty cart is rejected before any
// flow is created.
func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	if h.engine.TotalItems() == 0 {
		respondError(w, http.StatusConflict, "empty_cart", checkout.ErrEmptyCart.Error())
		return
	}

	h.mu.Lock()
	h.flow = h.newFlow()
	f := h.flow
	h.mu.Unlock()

	respondJSON(w, http.StatusCreated, stateResponse(f))
}

func (h *CheckoutHandler) State(w http.ResponseWriter, r *http.Request) {
	f := h.current()
	if f == nil {
		respondError(w, http.StatusNotFound, "no_checkout", "no checkout in progress")
		return
	}
	respondJSON(w, http.StatusOK, stateResponse(f))
}

func (h *CheckoutHandler) Next(w http.ResponseWriter, r *http.Request) {
	f := h.current()
	if f == nil {
		respondError(w, http.StatusNotFound, "no_checkout", "no checkout in progress")
		return
	}
	f.Next()
	respondJSON(w, http.StatusOK, stateResponse(f))
}

func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	f := h.current()
	if f == nil {
		respondError(w, http.StatusNotFound, "no_checkout", "no checkout in progress")
		return
	}
	if err := f.Back(); err != nil {
		respondError(w, http.StatusConflict, "checkout_conflict", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, stateResponse(f))
}

func (h *CheckoutHandler) SubmitShipping(w http.ResponseWriter, r *http.Request) {
	f := h.current()
	if f == nil {
		respondError(w, http.StatusNotFound, "no_checkout", "no checkout in progress")
		return
	}

	var d domain.ShippingDetails
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	fieldErrs, err := f.SubmitShipping(d)
	if errors.Is(err, checkout.ErrWrongStage) {
		respondError(w, http.StatusConflict, "wrong_stage", err.Error())
		return
	}
	if len(fieldErrs) > 0 {
		respondFieldErrors(w, fieldErrs)
		return
	}
	respondJSON(w, http.StatusOK, stateResponse(f))
}

func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	f := h.current()
	if f == nil {
		respondError(w, http.StatusNotFound, "no_checkout", "no checkout in progress")
		return
	}

	var d domain.PaymentDetails
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	fieldErrs, err := f.SubmitPayment(d)
	if errors.Is(err, checkout.ErrWrongStage) {
		respondError(w, http.StatusConflict, "wrong_stage", err.Error())
		return
	}
	if len(fieldErrs) > 0 {
		respondFieldErrors(w, fieldErrs)
		return
	}
	respondJSON(w, http.StatusOK, stateResponse(f))
}

// Confirm handles POST /api/checkout/confirm. A retryable submission failure
// maps to 502 with Retryable set so the client can offer a retry.
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	f := h.current()
	if f == nil {
		respondError(w, http.StatusNotFound, "no_checkout", "no checkout in progress")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	order, err := f.Confirm(ctx)
	if err != nil {
		var retryable *orders.RetryableError
		switch {
		case errors.As(err, &retryable):
			respondJSON(w, http.StatusBadGateway, ErrorResponse{
				Error:     retryable.Reason,
				Code:      "submission_failed",
				Retryable: true,
			})
		case errors.Is(err, checkout.ErrSubmitting), errors.Is(err, checkout.ErrCompleted):
			respondError(w, http.StatusConflict, "checkout_conflict", err.Error())
		case errors.Is(err, checkout.ErrWrongStage):
			respondError(w, http.StatusConflict, "wrong_stage", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "internal_error", "order submission failed")
		}
		return
	}

	respondJSON(w, http.StatusCreated, order)
}
