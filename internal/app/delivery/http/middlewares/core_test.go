package middlewares

import (
	"billsync-service/internal/app/config"
	"billsync-service/internal/pkg/constvars"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequestIDMiddleware(t *testing.T) {
	middlewares := NewMiddlewares(zap.NewNop(), &config.InternalConfig{})

	t.Run("Client Request ID Passed Through", func(t *testing.T) {
		var seenRequestID string
		var seenIsClient bool
		handler := middlewares.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seenRequestID, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
			seenIsClient, _ = r.Context().Value(constvars.CONTEXT_IS_CLIENT_REQUEST_ID_KEY).(bool)
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest("GET", "/api/v1/consommation/42/rates", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-supplied-id")

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "client-supplied-id", seenRequestID)
		assert.True(t, seenIsClient)
		assert.Equal(t, "client-supplied-id", rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("Request ID Generated When Missing", func(t *testing.T) {
		var seenRequestID string
		var seenIsClient bool
		handler := middlewares.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seenRequestID, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
			seenIsClient, _ = r.Context().Value(constvars.CONTEXT_IS_CLIENT_REQUEST_ID_KEY).(bool)
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest("GET", "/api/v1/consommation/42/rates", nil)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.True(t, strings.HasPrefix(seenRequestID, constvars.REQUEST_ID_PREFIX), "generated id should carry the service prefix")
		assert.False(t, seenIsClient)
		assert.Equal(t, seenRequestID, rr.Header().Get(constvars.HeaderXRequestID))
	})
}
