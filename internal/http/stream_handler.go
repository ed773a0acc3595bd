package api

import (
	"fmt"
	"net/http"
	"time"

	"genz-ignite/internal/domain/vote"
	"genz-ignite/internal/platform/apperr"
)

var streamKeepAlive = 25 * time.Second

// handlePollStream pushes every poll option change as a server-sent event
// named "change" whose data is the full updated row.
//
// @Summary     Live poll change stream
// @Tags        polls
// @Produce     text/event-stream
// @Success     200
// @Failure     503  {object}  map[string]string  "realtime disabled"
// @Router      /api/v1/polls/stream [get]
func (h *Handler) handlePollStream(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		errorResponse(w, apperr.Unavailable(apperr.CodeRealtimeDisabled, "live updates are not available", nil))
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		errorResponse(w, apperr.Internal(apperr.CodeStreamUnsupported, "streaming not supported", nil))
		return
	}

	events, cancel := h.hub.Subscribe(vote.PollCollection)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": subscribed\n\n")
	flusher.Flush()

	ping := time.NewTicker(streamKeepAlive)
	defer ping.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", ev.Data)
			flusher.Flush()
		case <-ping.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		}
	}
}
