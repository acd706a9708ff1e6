package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewIPLimiter_InvalidFormat(t *testing.T) {
	_, err := NewIPLimiter("lots")
	assert.Error(t, err)
}

func TestRateLimit(t *testing.T) {
	lim, err := NewIPLimiter("2-M")
	require.NoError(t, err)

	handler := RateLimit(lim, zap.NewNop().Sugar())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1234").Code)
	second := do("10.0.0.1:1234")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	third := do("10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, third.Code)

	// Limits are per client address.
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1234").Code)
}
