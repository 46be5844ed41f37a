package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/marswrapped/wrapped-api/internal/logic"
	"github.com/marswrapped/wrapped-api/internal/models"
)

const (
	defaultRadarSize = 300
	minRadarSize     = 120
	maxRadarSize     = 1200
)

// Login resolves a username and returns the rendered report
// @Summary Generate Report
// @Description Load the aggregate for the chosen player count, resolve the user and render every slide. The password is accepted but never checked.
// @Tags Report
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Login form"
// @Param slide query int false "Initial slide index"
// @Success 200 {object} models.ReportResponse "Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "User Not Found"
// @Failure 502 {object} map[string]string "Data Load Failed"
// @Router /report [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.reports.Generate(r.Context(), req.Username, req.PlayerCount)
	if err != nil {
		h.reportError(w, err)
		return
	}

	cursor := logic.NewSlideCursor(len(resp.Slides))
	if raw := r.URL.Query().Get("slide"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			cursor.GoTo(n)
		}
	}
	resp.CurrentSlide = cursor.Pos()

	h.jsonResponse(w, http.StatusOK, resp)
}

// RadarSVG renders the player profile chart
// @Summary Player Radar Chart
// @Tags Report
// @Produce image/svg+xml
// @Param playerCount path int true "2 or 4"
// @Param username path string true "Username"
// @Param size query int false "Edge length in pixels"
// @Success 200 {string} string "SVG document"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "User Not Found"
// @Router /report/{playerCount}/{username}/radar.svg [get]
func (h *Handler) RadarSVG(w http.ResponseWriter, r *http.Request) {
	pcRaw := chi.URLParam(r, "playerCount")
	n, err := strconv.Atoi(pcRaw)
	pc := models.PlayerCount(n)
	if err != nil || !pc.Valid() {
		h.errorResponse(w, http.StatusBadRequest, "playerCount must be 2 or 4")
		return
	}
	username := chi.URLParam(r, "username")
	if username == "" {
		h.errorResponse(w, http.StatusBadRequest, "username is required")
		return
	}

	size := defaultRadarSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			size = min(max(v, minRadarSize), maxRadarSize)
		}
	}

	resp, err := h.reports.Generate(r.Context(), username, pc)
	if err != nil {
		h.reportError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(logic.RadarSVG(resp.Radar, float64(size))))
}
