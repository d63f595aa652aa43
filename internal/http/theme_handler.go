package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/globaloptima/storefront/internal/theme"
)

type ThemeHandler struct {
	manager *theme.Manager
	timeout time.Duration
}

func NewThemeHandler(m *theme.Manager, timeout time.Duration) *ThemeHandler {
	return &ThemeHandler{manager: m, timeout: timeout}
}

type ThemeResponse struct {
	Theme theme.Theme `json:"theme"`
}

func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	respondJSON(w, http.StatusOK, ThemeResponse{Theme: h.manager.Load(ctx)})
}

type SetThemeRequestDTO struct {
	Theme string `json:"theme"`
}

func (h *ThemeHandler) Set(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req SetThemeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	t := theme.Theme(req.Theme)
	if !t.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_request", "unknown theme")
		return
	}

	h.manager.Save(ctx, t)
	respondJSON(w, http.StatusOK, ThemeResponse{Theme: t})
}

func (h *ThemeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	respondJSON(w, http.StatusOK, ThemeResponse{Theme: h.manager.Toggle(ctx)})
}
