package api

import (
	"encoding/json"
	"net/http"

	"genz-ignite/internal/domain/policy"
	"genz-ignite/internal/platform/apperr"
)

type policyRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	Progress    int     `json:"progress"`
	Votes       int64   `json:"votes"`
	ImageURL    *string `json:"image_url"`
}

func (req policyRequest) toPolicy(id int64) *policy.Policy {
	return &policy.Policy{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      req.Status,
		Progress:    req.Progress,
		Votes:       req.Votes,
		ImageURL:    req.ImageURL,
	}
}

// @Summary     List policies
// @Description Ordered by votes, most supported first.
// @Tags        policies
// @Produce     json
// @Param       category  query     string  false  "Category"
// @Param       q         query     string  false  "Search in title and description"
// @Success     200       {array}   policy.Policy
// @Failure     500       {object}  map[string]string  "server error"
// @Router      /api/v1/policies [get]
func (h *Handler) handleListPolicies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	policies, err := h.svc.Policies.List(r.Context(), policy.Filter{
		Category: q.Get("category"),
		Query:    q.Get("q"),
	})
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, policies)
}

// @Summary     Get policy
// @Tags        policies
// @Produce     json
// @Param       id   path      int64  true  "Policy ID"
// @Success     200  {object}  policy.Policy
// @Failure     400  {object}  map[string]string  "invalid id"
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/policies/{id} [get]
func (h *Handler) handleGetPolicy(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "invalid policy id", err))
		return
	}

	p, err := h.svc.Policies.Get(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) handleCreatePolicy(w http.ResponseWriter, r *http.Request) {
	var req policyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "invalid body", err))
		return
	}

	p := req.toPolicy(0)
	if err := h.svc.Policies.Create(r.Context(), p); err != nil {
		errorResponse(w, err)
		return
	}
	h.invalidateStats()
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) handleUpdatePolicy(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "invalid policy id", err))
		return
	}

	var req policyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "invalid body", err))
		return
	}

	p := req.toPolicy(id)
	if err := h.svc.Policies.Update(r.Context(), p); err != nil {
		errorResponse(w, err)
		return
	}
	h.invalidateStats()
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) handleDeletePolicy(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "invalid policy id", err))
		return
	}

	if err := h.svc.Policies.Delete(r.Context(), id); err != nil {
		errorResponse(w, err)
		return
	}
	h.invalidateStats()
	w.WriteHeader(http.StatusNoContent)
}
