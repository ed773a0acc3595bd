package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal *prometheus.CounterVec
	voteWritesTotal   *prometheus.CounterVec
	streamSubscribers prometheus.Gauge
	pendingComplaints prometheus.Gauge
	registerOnce      sync.Once
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "genz",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the campaign API.",
		}, []string{"method", "path", "status"})

		voteWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "genz",
			Name:      "vote_writes_total",
			Help:      "Vote count overwrites accepted, by category.",
		}, []string{"category"})

		streamSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "genz",
			Name:      "poll_stream_subscribers",
			Help:      "Open live poll subscriptions.",
		})

		pendingComplaints = promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "genz",
			Name:      "complaints_pending",
			Help:      "Complaints waiting for a reply, as of the last digest.",
		})
	})
}

// IncRequest increments the http_requests_total counter with the given labels.
func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

func IncVoteWrite(category string) {
	if voteWritesTotal == nil {
		return
	}
	voteWritesTotal.WithLabelValues(category).Inc()
}

func SetStreamSubscribers(n int) {
	if streamSubscribers == nil {
		return
	}
	streamSubscribers.Set(float64(n))
}

func SetPendingComplaints(n int64) {
	if pendingComplaints == nil {
		return
	}
	pendingComplaints.Set(float64(n))
}
