package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"genz-ignite/internal/domain/announcement"
	"genz-ignite/internal/domain/complaint"
	"genz-ignite/internal/domain/member"
	"genz-ignite/internal/domain/policy"
	"genz-ignite/internal/domain/poll"
	"genz-ignite/internal/domain/stats"
	"genz-ignite/internal/domain/user"
	"genz-ignite/internal/domain/vote"
	"genz-ignite/internal/platform/apperr"
	jwtpkg "genz-ignite/internal/platform/jwt"
	"genz-ignite/internal/realtime"
	"genz-ignite/internal/worker"
)

type Services struct {
	Users         *user.Service
	Policies      *policy.Service
	Polls         *poll.Service
	Votes         *vote.Service
	Announcements *announcement.Service
	Members       *member.Service
	Complaints    *complaint.Service
	Stats         *stats.Service
}

type Options struct {
	JWT      *jwtpkg.Manager
	TokenTTL time.Duration
	// Hub feeds the poll stream. Without it the stream route answers 503.
	Hub    *realtime.Hub
	VoteCh chan<- worker.VoteEvent
	DB     *sql.DB
	// TrustProxy lets proxy headers set the client address used by the
	// rate limiters.
	TrustProxy bool
}

type Handler struct {
	svc      Services
	jwtMgr   *jwtpkg.Manager
	tokenTTL time.Duration
	hub      *realtime.Hub
	voteCh   chan<- worker.VoteEvent
	db       *sql.DB
}

func NewRouter(svc Services, opts Options) http.Handler {
	h := &Handler{
		svc:      svc,
		jwtMgr:   opts.JWT,
		tokenTTL: opts.TokenTTL,
		hub:      opts.Hub,
		voteCh:   opts.VoteCh,
		db:       opts.DB,
	}
	if h.tokenTTL <= 0 {
		h.tokenTTL = 24 * time.Hour
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.Recoverer)
	r.Use(RequestLogger)
	r.Use(CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", h.handleReady)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		// Long-lived; stays outside the request timeout.
		r.Get("/polls/stream", h.handlePollStream)

		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(60 * time.Second))

			r.Post("/auth/login", h.handleLogin)

			r.Get("/policies", h.handleListPolicies)
			r.Get("/policies/{id}", h.handleGetPolicy)
			r.Get("/polls/options", h.handleListPollOptions)
			r.Get("/polls/results", h.handlePollResults)
			r.Get("/announcements", h.handleListAnnouncements)
			r.Get("/announcements/{id}", h.handleGetAnnouncement)
			r.Get("/members", h.handleListMembers)
			r.Get("/stats", h.handleStats)
			r.Get("/complaints/track/{trackID}", h.handleTrackComplaint)

			r.Group(func(r chi.Router) {
				r.Use(RateLimit(rate.Every(time.Second/2), 10))
				r.Put("/policies/{id}/votes", h.handleWritePolicyVotes)
				r.Put("/polls/options/{id}/votes", h.handleWritePollVotes)
			})
			r.With(RateLimit(rate.Every(time.Minute), 3)).Post("/complaints", h.handleSubmitComplaint)

			r.Group(func(r chi.Router) {
				r.Use(AuthMiddleware(h.jwtMgr, h.svc.Users))

				r.Group(func(r chi.Router) {
					r.Use(RequireRole(user.RoleAdmin, user.RoleStaff))
					r.Get("/complaints", h.handleListComplaints)
					r.Patch("/complaints/{id}/status", h.handleUpdateComplaintStatus)
					r.Get("/admin/notifications", h.handleNotifications)
				})

				r.Group(func(r chi.Router) {
					r.Use(RequireRole(user.RoleAdmin))
					r.Post("/policies", h.handleCreatePolicy)
					r.Put("/policies/{id}", h.handleUpdatePolicy)
					r.Delete("/policies/{id}", h.handleDeletePolicy)

					r.Post("/polls/options", h.handleCreatePollOption)
					r.Delete("/polls/options/{id}", h.handleDeletePollOption)

					r.Post("/announcements", h.handleCreateAnnouncement)
					r.Put("/announcements/{id}", h.handleUpdateAnnouncement)
					r.Patch("/announcements/{id}/pin", h.handleToggleAnnouncementPin)
					r.Delete("/announcements/{id}", h.handleDeleteAnnouncement)

					r.Post("/members", h.handleCreateMember)
					r.Put("/members/{id}", h.handleUpdateMember)
					r.Delete("/members/{id}", h.handleDeleteMember)

					r.Get("/users", h.handleListUsers)
					r.Post("/users", h.handleCreateUser)
					r.Patch("/users/{id}/role", h.handleUpdateUserRole)
					r.Patch("/users/{id}/deactivate", h.handleDeactivateUser)
				})
			})
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}

// invalidateStats drops cached council counters after a write that changes them.
func (h *Handler) invalidateStats() {
	if h.svc.Stats != nil {
		h.svc.Stats.Invalidate()
	}
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		errorResponse(w, apperr.Unavailable(apperr.CodeDBUnavailable, "database not configured", nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		errorResponse(w, apperr.Unavailable(apperr.CodeDBUnavailable, "database not ready", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
