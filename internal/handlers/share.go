package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marswrapped/wrapped-api/internal/logic"
	"github.com/marswrapped/wrapped-api/internal/models"
)

// CreateShare stores a share summary and returns its link
// @Summary Create Share Link
// @Tags Share
// @Accept json
// @Produce json
// @Param body body models.ShareRequest true "Who to share"
// @Success 201 {object} models.ShareResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "User Not Found"
// @Router /share [post]
func (h *Handler) CreateShare(w http.ResponseWriter, r *http.Request) {
	var req models.ShareRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	share, err := h.shares.Create(r.Context(), req.Username, req.PlayerCount)
	if err != nil {
		h.reportError(w, err)
		return
	}

	h.logger.Infow("Share created", "id", share.ID, "playerCount", int(req.PlayerCount))
	h.jsonResponse(w, http.StatusCreated, share)
}

// GetShare returns a previously created share summary
// @Summary Get Share
// @Tags Share
// @Produce json
// @Param id path string true "Share ID"
// @Success 200 {object} models.ShareResponse
// @Failure 404 {object} map[string]string "Not Found"
// @Router /share/{id} [get]
func (h *Handler) GetShare(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	text, err := h.shares.Get(r.Context(), id)
	if errors.Is(err, logic.ErrShareNotFound) {
		h.errorResponse(w, http.StatusNotFound, "Share not found")
		return
	}
	if err != nil {
		h.logger.Errorw("Failed to read share", "id", id, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.jsonResponse(w, http.StatusOK, models.ShareResponse{ID: id, Text: text})
}
