package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/globaloptima/storefront/internal/cart"
	"github.com/globaloptima/storefront/internal/catalog"
	"github.com/globaloptima/storefront/internal/domain"
)

type CartHandler struct {
	engine  *cart.Engine
	catalog Catalog
	timeout time.Duration
}

func NewCartHandler(engine *cart.Engine, c Catalog, timeout time.Duration) *CartHandler {
	return &CartHandler{
		engine:  engine,
		catalog: c,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Items      []domain.CartLine `json:"items"`
	TotalItems int               `json:"totalItems"`
	Totals     domain.Totals     `json:"totals"`
}

func (h *CartHandler) cartResponse() CartResponse {
	return CartResponse{
		Items:      h.engine.Lines(),
		TotalItems: h.engine.TotalItems(),
		Totals:     h.engine.Totals(),
	}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// Add handles POST /api/cart/items. The product is resolved from the
// catalog so clients cannot invent prices.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "product_id is required")
		return
	}

	p, err := h.catalog.GetProduct(ctx, req.ProductID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "failed to fetch product")
		return
	}

	h.engine.AddItem(ctx, *p, req.Quantity)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	productID := chi.URLParam(r, "product_id")
	h.engine.UpdateQuantity(ctx, productID, req.Quantity)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")
	h.engine.RemoveItem(ctx, productID)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	h.engine.Clear(ctx)
	respondJSON(w, http.StatusOK, h.cartResponse())
}
