package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
}

// NewRouter assembles the storefront API surface.
func NewRouter(
	cfg RouterConfig,
	products *ProductHandler,
	carts *CartHandler,
	checkouts *CheckoutHandler,
	browse *BrowseHandler,
	themes *ThemeHandler,
) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(MaxBodySizeMiddleware(cfg.MaxRequestBodySize))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.List)
			r.Get("/categories", products.Categories)
			r.Get("/{id}", products.Get)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", carts.Get)
			r.Post("/items", carts.Add)
			r.Put("/items/{product_id}", carts.UpdateQuantity)
			r.Delete("/items/{product_id}", carts.Remove)
			r.Delete("/", carts.Clear)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkouts.Start)
			r.Get("/", checkouts.State)
			r.Post("/next", checkouts.Next)
			r.Post("/back", checkouts.Back)
			r.Post("/shipping", checkouts.SubmitShipping)
			r.Post("/payment", checkouts.SubmitPayment)
			r.Post("/confirm", checkouts.Confirm)
		})

		r.Route("/browse", func(r chi.Router) {
			r.Get("/", browse.State)
			r.Post("/search", browse.SearchInput)
			r.Delete("/search", browse.CancelSearch)
			r.Post("/filters", browse.UpdateFilters)
			r.Post("/sort", browse.UpdateSort)
			r.Post("/page", browse.SetPage)
			r.Post("/reset", browse.Reset)
			r.Post("/navigate", browse.Navigate)
		})

		r.Route("/theme", func(r chi.Router) {
			r.Get("/", themes.Get)
			r.Put("/", themes.Set)
			r.Post("/toggle", themes.Toggle)
		})
	})

	return r
}
