package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Business metrics
	signUpsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "identity_sign_ups_total",
			Help: "Total number of user registrations",
		},
	)

	signInsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "identity_sign_ins_total",
			Help: "Total number of successful sign-ins",
		},
	)

	tokenRefreshesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "identity_token_refreshes_total",
			Help: "Total number of token pair rotations",
		},
	)

	tokenValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_token_validations_total",
			Help: "Total number of validate-token calls by outcome",
		},
		[]string{"outcome"},
	)

	verificationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "identity_verifications_total",
			Help: "Total number of consumed verification keys",
		},
	)

	rateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_rate_limited_total",
			Help: "Total number of anonymous requests rejected by the admission guard",
		},
	)

	imageRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_image_requests_total",
			Help: "Total number of image processing requests by mode",
		},
		[]string{"mode"},
	)
)

// RecordHTTPRequest records per-request HTTP metrics.
func RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

// RecordSignUp increments the registration counter.
func RecordSignUp() { signUpsTotal.Inc() }

// RecordSignIn increments the sign-in counter.
func RecordSignIn() { signInsTotal.Inc() }

// RecordRefresh increments the token rotation counter.
func RecordRefresh() { tokenRefreshesTotal.Inc() }

// RecordValidation increments the validation counter with an outcome label
// ("valid" or "invalid").
func RecordValidation(valid bool) {
	outcome := "invalid"
	if valid {
		outcome = "valid"
	}
	tokenValidationsTotal.WithLabelValues(outcome).Inc()
}

// RecordVerification increments the verification counter.
func RecordVerification() { verificationsTotal.Inc() }

// RecordRateLimited increments the admission guard rejection counter.
func RecordRateLimited() { rateLimitedTotal.Inc() }

// RecordImageRequest increments the image counter ("unary" or "batch").
func RecordImageRequest(mode string) { imageRequestsTotal.WithLabelValues(mode).Inc() }

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
