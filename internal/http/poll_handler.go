package api

import (
	"encoding/json"
	"net/http"

	"genz-ignite/internal/platform/apperr"
)

type createOptionRequest struct {
	OptionName string `json:"option_name"`
}

// @Summary     List live poll options
// @Tags        polls
// @Produce     json
// @Success     200  {array}   poll.Option
// @Failure     500  {object}  map[string]string  "server error"
// @Router      /api/v1/polls/options [get]
func (h *Handler) handleListPollOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.svc.Polls.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

func (h *Handler) handleCreatePollOption(w http.ResponseWriter, r *http.Request) {
	var req createOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "invalid body", err))
		return
	}

	o, err := h.svc.Polls.Create(r.Context(), req.OptionName)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *Handler) handleDeletePollOption(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "invalid option id", err))
		return
	}

	if err := h.svc.Polls.Delete(r.Context(), id); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
