package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"genz-ignite/internal/domain/complaint"
	"genz-ignite/internal/metrics"
	"genz-ignite/internal/platform/apperr"
)

type submitComplaintRequest struct {
	Topic    string `json:"topic"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Contact  string `json:"contact"`
}

type updateComplaintStatusRequest struct {
	Status     string  `json:"status"`
	AdminReply *string `json:"admin_reply"`
}

// @Summary     Submit a complaint
// @Description Anonymous. The returned track_id is the only way to follow up.
// @Tags        complaints
// @Accept      json
// @Produce     json
// @Param       request  body      submitComplaintRequest  true  "Complaint"
// @Success     201      {object}  complaint.Receipt
// @Failure     400      {object}  map[string]string  "invalid body"
// @Failure     429      {object}  map[string]string  "rate limited"
// @Router      /api/v1/complaints [post]
func (h *Handler) handleSubmitComplaint(w http.ResponseWriter, r *http.Request) {
	var req submitComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "invalid body", err))
		return
	}

	rcpt, err := h.svc.Complaints.Submit(r.Context(), &complaint.Complaint{
		Topic:    req.Topic,
		Category: req.Category,
		Message:  req.Message,
		Contact:  req.Contact,
	})
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rcpt)
}

// @Summary     Track a complaint
// @Tags        complaints
// @Produce     json
// @Param       trackID  path      string  true  "Track ID (UUID)"
// @Success     200      {object}  complaint.Complaint
// @Failure     400      {object}  map[string]string  "not a UUID"
// @Failure     404      {object}  map[string]string  "not found"
// @Router      /api/v1/complaints/track/{trackID} [get]
func (h *Handler) handleTrackComplaint(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Complaints.Track(r.Context(), chi.URLParam(r, "trackID"))
	if err != nil {
		errorResponse(w, err)
		return
	}
	// Contact details stay in the back office.
	c.Contact = ""
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleListComplaints(w http.ResponseWriter, r *http.Request) {
	var status *string
	if s := r.URL.Query().Get("status"); s != "" {
		status = &s
	}

	items, err := h.svc.Complaints.List(r.Context(), status)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) handleUpdateComplaintStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "invalid complaint id", err))
		return
	}

	var req updateComplaintStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest(apperr.CodeInvalidInput, "invalid body", err))
		return
	}

	if err := h.svc.Complaints.UpdateStatus(r.Context(), id, req.Status, req.AdminReply); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary     Back office notifications
// @Description The newest pending complaints and the total pending count.
// @Tags        complaints
// @Security    BearerAuth
// @Produce     json
// @Success     200  {object}  map[string]any
// @Router      /api/v1/admin/notifications [get]
func (h *Handler) handleNotifications(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Complaints.Notifications(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	pending, err := h.svc.Complaints.PendingCount(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	metrics.SetPendingComplaints(pending)

	writeJSON(w, http.StatusOK, map[string]any{
		"pending": pending,
		"items":   items,
	})
}
