package api

import (
	"encoding/json"
	"net/http"

	"genz-ignite/internal/domain/member"
	"genz-ignite/internal/platform/apperr"
)

type memberRequest struct {
	Name      string  `json:"name"`
	Nickname  string  `json:"nickname"`
	Role      string  `json:"role"`
	Quote     string  `json:"quote"`
	Instagram string  `json:"instagram"`
	ImageURL  *string `json:"image_url"`
	Order     int     `json:"order"`
}

func (req memberRequest) toMember(id int64) *member.Member {
	return &member.Member{
		ID:           id,
		Name:         req.Name,
		Nickname:     req.Nickname,
		Role:         req.Role,
		Quote:        req.Quote,
		Instagram:    req.Instagram,
		ImageURL:     req.ImageURL,
		DisplayOrder: req.Order,
	}
}

// @Summary     List council members
// @Tags        members
// @Produce     json
// @Success     200  {array}   member.Member
// @Router      /api/v1/members [get]
func (h *Handler) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.Members.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *Handler) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "invalid body", err))
		return
	}

	m := req.toMember(0)
	if err := h.svc.Members.Create(r.Context(), m); err != nil {
		errorResponse(w, err)
		return
	}
	h.invalidateStats()
	writeJSON(w, http.StatusCreated, m)
}

func (h *Handler) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "invalid member id", err))
		return
	}

	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "invalid body", err))
		return
	}

	m := req.toMember(id)
	if err := h.svc.Members.Update(r.Context(), m); err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "invalid member id", err))
		return
	}

	if err := h.svc.Members.Delete(r.Context(), id); err != nil {
		errorResponse(w, err)
		return
	}
	h.invalidateStats()
	w.WriteHeader(http.StatusNoContent)
}
