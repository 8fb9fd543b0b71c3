package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/ulule/limiter/v3"
	limitermw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimit applies a global requests-per-second cap backed by an in-memory
// store.
func RateLimit(requestsPerSecond int) mux.MiddlewareFunc {
	rate := limiter.Rate{Period: time.Second, Limit: int64(requestsPerSecond)}
	instance := limiter.New(memory.NewStore(), rate)
	mw := limitermw.NewMiddleware(instance)
	return func(next http.Handler) http.Handler {
		return mw.Handler(next)
	}
}
