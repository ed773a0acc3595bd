package api

import "net/http"

// @Summary     Council counters
// @Tags        stats
// @Produce     json
// @Success     200  {object}  stats.Summary
// @Router      /api/v1/stats [get]
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Stats.Summary(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
