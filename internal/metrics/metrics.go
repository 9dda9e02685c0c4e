package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Interaction metrics
	InteractionsTotal          *prometheus.CounterVec
	InteractionDurationSeconds *prometheus.HistogramVec

	// Geocode metrics
	GeocodeRequestsTotal   *prometheus.CounterVec
	GeocodeDurationSeconds prometheus.Histogram

	// Callback metrics
	CallbackPostsTotal      *prometheus.CounterVec
	CallbackDurationSeconds prometheus.Histogram

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		// Interaction metrics
		InteractionsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "checkinbot_interactions_total",
				Help: "Total number of interactions by kind and status",
			},
			[]string{"kind", "status"}, // kind: ping, command, autocomplete; status: success, error, rejected
		),

		InteractionDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "checkinbot_interaction_duration_seconds",
				Help:    "Interaction handling duration in seconds by kind",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 3}, // Discord expects an answer within 3s
			},
			[]string{"kind"},
		),

		// Geocode metrics
		GeocodeRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "checkinbot_geocode_requests_total",
				Help: "Total number of Places Autocomplete requests by status",
			},
			[]string{"status"}, // status: success, error, timeout
		),

		GeocodeDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "checkinbot_geocode_duration_seconds",
				Help:    "Places Autocomplete request duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5}, // Matches 5s request budget
			},
		),

		// Callback metrics
		CallbackPostsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "checkinbot_callback_posts_total",
				Help: "Total number of interaction callback posts by status",
			},
			[]string{"status"}, // status: success, error, timeout
		),

		CallbackDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "checkinbot_callback_duration_seconds",
				Help:    "Interaction callback post duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 15}, // Matches 15s post budget
			},
		),

		// HTTP metrics
		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "checkinbot_http_errors_total",
				Help: "Total HTTP errors by type and module",
			},
			[]string{"error_type", "module"}, // error_type: invalid_signature, malformed_payload, timeout, etc.
		),
	}

	return m
}

// RecordInteraction records a handled interaction with status
func (m *Metrics) RecordInteraction(kind, status string, duration float64) {
	m.InteractionsTotal.WithLabelValues(kind, status).Inc()
	m.InteractionDurationSeconds.WithLabelValues(kind).Observe(duration)
}

// RecordGeocodeRequest records a Places Autocomplete request
func (m *Metrics) RecordGeocodeRequest(status string, duration float64) {
	m.GeocodeRequestsTotal.WithLabelValues(status).Inc()
	m.GeocodeDurationSeconds.Observe(duration)
}

// RecordCallbackPost records an interaction callback post
func (m *Metrics) RecordCallbackPost(status string, duration float64) {
	m.CallbackPostsTotal.WithLabelValues(status).Inc()
	m.CallbackDurationSeconds.Observe(duration)
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType, module string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType, module).Inc()
}
