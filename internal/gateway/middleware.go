package gateway

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/broker"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/dto"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/logger"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/metrics"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/ratelimit"
)

// Metrics records per-request counters and latency histograms.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			metrics.RecordHTTPRequest(r.Method, r.URL.Path, ww.Status(), time.Since(start))
		})
	}
}

// AdmissionGuard gates the vision endpoint. A request carrying a token in
// the `token` header is admitted iff the identity service reports it as a
// live access token. Anonymous requests draw from a per-source trial budget.
func AdmissionGuard(identity broker.IdentityClient, limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	log := logger.WithComponent("admission_guard")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("token")

			if token != "" {
				body, appErr := identity.Call(r.Context(), broker.CommandValidate, dto.TokenRequest{Token: token})
				if appErr != nil {
					writeErrorResponse(w, appErr)
					return
				}

				var state dto.TokenStateResponse
				if err := json.Unmarshal(body, &state); err != nil {
					log.Error().Err(err).Msg("malformed validate-token reply")
					writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
					return
				}

				if !state.IsValid {
					writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: state.Message})
					return
				}

				next.ServeHTTP(w, r)
				return
			}

			source := sourceIP(r)
			allowed, retryAfter := limiter.Allow(source)
			if !allowed {
				metrics.RecordRateLimited()
				log.Debug().Str("source", source).Dur("retry_after", retryAfter).Msg("anonymous budget exhausted")

				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				writeJSON(w, http.StatusTooManyRequests, dto.ErrorResponse{
					Error: "Request budget exhausted; sign in or retry later",
					Code:  "RATE_LIMITED",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// sourceIP extracts the client address. middleware.RealIP has already folded
// X-Forwarded-For / X-Real-IP into RemoteAddr where present.
func sourceIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
