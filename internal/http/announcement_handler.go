package api

import (
	"encoding/json"
	"net/http"

	"genz-ignite/internal/domain/announcement"
	"genz-ignite/internal/platform/apperr"
)

type announcementRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category"`
	ImageURL *string `json:"image_url"`
	IsPinned bool    `json:"is_pinned"`
}

func (req announcementRequest) toAnnouncement(id int64) *announcement.Announcement {
	return &announcement.Announcement{
		ID:       id,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		ImageURL: req.ImageURL,
		IsPinned: req.IsPinned,
	}
}

// @Summary     List announcements
// @Description Pinned first, then newest.
// @Tags        announcements
// @Produce     json
// @Param       category  query     string  false  "Category"
// @Param       q         query     string  false  "Search in title and content"
// @Success     200       {array}   announcement.Announcement
// @Failure     400       {object}  map[string]string  "unknown category"
// @Router      /api/v1/announcements [get]
func (h *Handler) handleListAnnouncements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.svc.Announcements.List(r.Context(), announcement.Filter{
		Category: q.Get("category"),
		Query:    q.Get("q"),
	})
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) handleGetAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "invalid announcement id", err))
		return
	}

	a, err := h.svc.Announcements.Get(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) handleCreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req announcementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "invalid body", err))
		return
	}

	a := req.toAnnouncement(0)
	if err := h.svc.Announcements.Create(r.Context(), a); err != nil {
		errorResponse(w, err)
		return
	}
	h.invalidateStats()
	writeJSON(w, http.StatusCreated, a)
}

func (h *Handler) handleUpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "invalid announcement id", err))
		return
	}

	var req announcementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "invalid body", err))
		return
	}

	a := req.toAnnouncement(id)
	if err := h.svc.Announcements.Update(r.Context(), a); err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// @Summary     Toggle announcement pin
// @Tags        announcements
// @Security    BearerAuth
// @Produce     json
// @Param       id   path      int64  true  "Announcement ID"
// @Success     200  {object}  map[string]bool
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/announcements/{id}/pin [patch]
func (h *Handler) handleToggleAnnouncementPin(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "invalid announcement id", err))
		return
	}

	pinned, err := h.svc.Announcements.TogglePin(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"is_pinned": pinned})
}

func (h *Handler) handleDeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "invalid announcement id", err))
		return
	}

	if err := h.svc.Announcements.Delete(r.Context(), id); err != nil {
		errorResponse(w, err)
		return
	}
	h.invalidateStats()
	w.WriteHeader(http.StatusNoContent)
}
