package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/keremsimsek1907/nova-app/internal/middleware"
	"github.com/keremsimsek1907/nova-app/internal/model"
	"github.com/keremsimsek1907/nova-app/internal/service"
)

// ItemHandler handles HTTP requests for the caller's items.
type ItemHandler struct {
	service *service.ItemService
	log     *slog.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(svc *service.ItemService, log *slog.Logger) *ItemHandler {
	return &ItemHandler{service: svc, log: log}
}

// HandleList handles GET /api/items requests.
func (h *ItemHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	items, err := h.service.List(r.Context(), identity.Subject)
	if err != nil {
		writeInternal(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// HandleCreate handles POST /api/items requests.
func (h *ItemHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.CreateItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	resp, err := h.service.Create(r.Context(), identity.Subject, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameRequired), errors.Is(err, service.ErrNameTooLong):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeInternal(w, r, h.log, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleDelete handles DELETE /api/items/{id} requests. It answers {"ok":true}
// whether or not a caller-owned item matched.
func (h *ItemHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	resp, err := h.service.Delete(r.Context(), identity.Subject, chi.URLParam(r, "id"))
	if err != nil {
		writeInternal(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
