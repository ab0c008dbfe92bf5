package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"eventvenues/internal/domain"
)

var (
	eventCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_cache_lookups_total",
			Help: "Event cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	eventCacheWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_cache_writes_total",
			Help: "Event cache population attempts by status",
		},
		[]string{"status"},
	)

	venueConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venue_conflicts_total",
			Help: "Venue checks by outcome (free, conflict)",
		},
		[]string{"outcome"},
	)

	attendeeTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attendee_transitions_total",
			Help: "Attendee lifecycle operations by transition and status",
		},
		[]string{"transition", "status"},
	)
)

// TrackCacheLookup counts one cache lookup result: "hit", "miss" or "error".
func TrackCacheLookup(result string) {
	eventCacheLookups.WithLabelValues(result).Inc()
}

// TrackCacheWrite counts one cache population attempt.
func TrackCacheWrite(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	eventCacheWrites.WithLabelValues(status).Inc()
}

// TrackVenueCheck counts one venue check by the number of conflicts found.
func TrackVenueCheck(conflicts int) {
	outcome := "free"
	if conflicts > 0 {
		outcome = "conflict"
	}
	venueConflicts.WithLabelValues(outcome).Inc()
}

// TrackAttendeeTransition counts one lifecycle operation; failures are labelled with the
// business error code, or "internal_error".
func TrackAttendeeTransition(transition string, err error) {
	status := "ok"
	if err != nil {
		status = domain.ErrorCode(err)
		if status == "" {
			status = "internal_error"
		}
	}
	attendeeTransitions.WithLabelValues(transition, status).Inc()
}

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route pattern and status",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// TrackHTTPRequest records one served request. route is the matched mux pattern, never
// the raw path, to keep label cardinality bounded.
func TrackHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
