package middleware

import (
	"net/http"
	"time"

	"github.com/mcoot/fijas/internal/api/apierr"
	"github.com/mcoot/fijas/internal/middleware"
)

// RateLimit creates per-client rate limiting middleware for the API.
// Rejected requests get a JSON 429.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := middleware.NewRateLimiter(rps, burst, 10*time.Minute)
	return middleware.RateLimit(limiter, apiRateLimitHandler)
}

func apiRateLimitHandler(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewRateLimitedError())
}
