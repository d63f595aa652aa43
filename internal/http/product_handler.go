package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/globaloptima/storefront/internal/catalog"
	"github.com/globaloptima/storefront/internal/domain"
	"github.com/globaloptima/storefront/internal/filters"
)

// Catalog is the product lookup service as the handlers consume it.
// Consumers define this interface, not the sqlite implementation.
type Catalog interface {
	ListProducts(ctx context.Context, f filters.State) (*domain.ProductsPage, error)
	Categories(ctx context.Context) ([]string, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

type ProductHandler struct {
	catalog Catalog
	timeout time.Duration
}

func NewProductHandler(c Catalog, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: c,
		timeout: timeout,
	}
}

// List handles GET /api/products. Query parameters follow the catalog
// contract: search, category, sort, page, limit.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	f := filters.FromValues(r.URL.Query())
	page, err := h.catalog.ListProducts(ctx, f)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "failed to fetch products")
		return
	}

	respondJSON(w, http.StatusOK, page)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	p, err := h.catalog.GetProduct(ctx, id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "failed to fetch product")
		return
	}

	respondJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "failed to fetch categories")
		return
	}

	respondJSON(w, http.StatusOK, categories)
}
