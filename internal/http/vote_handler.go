package api

import (
	"encoding/json"
	"net/http"

	"genz-ignite/internal/ledger"
	"genz-ignite/internal/platform/apperr"
	"genz-ignite/internal/worker"
)

// voteCountRequest carries the count the client computed, not a delta.
type voteCountRequest struct {
	Votes *int64 `json:"votes"`
}

// @Summary     Overwrite a policy's vote count
// @Description Last write wins. Concurrent writers that read the same count lose updates.
// @Tags        votes
// @Accept      json
// @Param       id       path      int64             true  "Policy ID"
// @Param       request  body      voteCountRequest  true  "New count"
// @Success     204
// @Failure     400      {object}  map[string]string  "invalid body"
// @Failure     404      {object}  map[string]string  "not found"
// @Failure     429      {object}  map[string]string  "rate limited"
// @Router      /api/v1/policies/{id}/votes [put]
func (h *Handler) handleWritePolicyVotes(w http.ResponseWriter, r *http.Request) {
	h.writeVotes(w, r, ledger.CategoryPolicy)
}

// @Summary     Overwrite a poll option's vote count
// @Tags        votes
// @Accept      json
// @Param       id       path      int64             true  "Option ID"
// @Param       request  body      voteCountRequest  true  "New count"
// @Success     204
// @Failure     400      {object}  map[string]string  "invalid body"
// @Failure     404      {object}  map[string]string  "not found"
// @Failure     429      {object}  map[string]string  "rate limited"
// @Router      /api/v1/polls/options/{id}/votes [put]
func (h *Handler) handleWritePollVotes(w http.ResponseWriter, r *http.Request) {
	h.writeVotes(w, r, ledger.CategoryPoll)
}

func (h *Handler) writeVotes(w http.ResponseWriter, r *http.Request, category ledger.Category) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "invalid id", err))
		return
	}

	var req voteCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "invalid body", err))
		return
	}
	if req.Votes == nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "votes is required", nil))
		return
	}

	if err := h.svc.Votes.WriteCount(r.Context(), category, id, *req.Votes); err != nil {
		errorResponse(w, err)
		return
	}

	select {
	case h.voteCh <- worker.VoteEvent{Category: string(category), ItemID: id, Votes: *req.Votes}:
	default:
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary     Live poll results
// @Tags        polls
// @Produce     json
// @Success     200  {object}  map[string]any
// @Failure     500  {object}  map[string]string  "server error"
// @Router      /api/v1/polls/results [get]
func (h *Handler) handlePollResults(w http.ResponseWriter, r *http.Request) {
	res, total, err := h.svc.Votes.Results(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_votes": total,
		"options":     res,
	})
}
