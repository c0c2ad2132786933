package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// IPRateLimit throttles by client IP across the whole API surface.
func (m *Middlewares) IPRateLimit() func(next http.Handler) http.Handler {
	return httprate.LimitByIP(m.InternalConfig.App.MaxRequests, time.Second)
}
