package http

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/globaloptima/storefront/internal/domain"
	"github.com/globaloptima/storefront/internal/filters"
)

// BrowseHandler exposes the browse controller: filter state, the latest
// results, and the query-string mirror a client would put in its address bar.
type BrowseHandler struct {
	controller *filters.Controller
}

func NewBrowseHandler(c *filters.Controller) *BrowseHandler {
	return &BrowseHandler{controller: c}
}

type BrowseStateResponse struct {
	Filters filters.State        `json:"filters"`
	Query   string               `json:"query"`
	Results *domain.ProductsPage `json:"results,omitempty"`
	Error   string               `json:"error,omitempty"`
}

func (h *BrowseHandler) stateResponse() BrowseStateResponse {
	resp := BrowseStateResponse{
		Filters: h.controller.State(),
		Query:   h.controller.Query().Encode(),
	}
	page, err := h.controller.Results()
	resp.Results = page
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

func (h *BrowseHandler) State(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.stateResponse())
}

type SearchInputRequestDTO struct {
	Value string `json:"value"`
}

// SearchInput feeds one keystroke. The search commits after the quiet
// period, so the response reflects the pre-commit state.
func (h *BrowseHandler) SearchInput(w http.ResponseWriter, r *http.Request) {
	var req SearchInputRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	h.controller.SearchInput(req.Value)
	respondJSON(w, http.StatusAccepted, h.stateResponse())
}

func (h *BrowseHandler) CancelSearch(w http.ResponseWriter, r *http.Request) {
	h.controller.CancelSearch()
	respondJSON(w, http.StatusOK, h.stateResponse())
}

type UpdateFiltersRequestDTO struct {
	Search   *string `json:"search,omitempty"`
	Category *string `json:"category,omitempty"`
	Sort     *string `json:"sort,omitempty"`
}

func (h *BrowseHandler) UpdateFilters(w http.ResponseWriter, r *http.Request) {
	var req UpdateFiltersRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	p := filters.Partial{Search: req.Search, Category: req.Category}
	if req.Sort != nil {
		sort := filters.Sort(*req.Sort)
		if !sort.Valid() {
			respondError(w, http.StatusBadRequest, "invalid_request", "unknown sort order")
			return
		}
		p.Sort = &sort
	}

	h.controller.UpdateFilters(r.Context(), p)
	respondJSON(w, http.StatusOK, h.stateResponse())
}

type UpdateSortRequestDTO struct {
	Sort string `json:"sort"`
}

func (h *BrowseHandler) UpdateSort(w http.ResponseWriter, r *http.Request) {
	var req UpdateSortRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	sort := filters.Sort(req.Sort)
	if !sort.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_request", "unknown sort order")
		return
	}

	h.controller.UpdateSort(r.Context(), sort)
	respondJSON(w, http.StatusOK, h.stateResponse())
}

type SetPageRequestDTO struct {
	Page int `json:"page"`
}

func (h *BrowseHandler) SetPage(w http.ResponseWriter, r *http.Request) {
	var req SetPageRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	h.controller.SetPage(r.Context(), req.Page)
	respondJSON(w, http.StatusOK, h.stateResponse())
}

func (h *BrowseHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.controller.Reset(r.Context())
	respondJSON(w, http.StatusOK, h.stateResponse())
}

type NavigateRequestDTO struct {
	Query string `json:"query"`
}

// Navigate adopts a query string as the new browse state, the way a shared
// URL or a history entry would.
func (h *BrowseHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	values, err := url.ParseQuery(req.Query)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid query string")
		return
	}

	h.controller.Navigate(r.Context(), values)
	respondJSON(w, http.StatusOK, h.stateResponse())
}
