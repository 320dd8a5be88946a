package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/CentralBankTalk/internal/infrastructure/monitoring/logging"
)

func captureRequestID(seen *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = logging.RequestIDFromContext(r.Context())
	})
}

func TestRequestID_Propagates(t *testing.T) {
	var seen string
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "client-42")

	RequestID(captureRequestID(&seen)).ServeHTTP(rec, req)

	assert.Equal(t, "client-42", seen)
	assert.Equal(t, "client-42", rec.Header().Get(HeaderRequestID))
}

func TestRequestID_MintsUUID(t *testing.T) {
	var seen string
	rec := httptest.NewRecorder()

	RequestID(captureRequestID(&seen)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))
}

func TestRequestID_ReplacesMalformed(t *testing.T) {
	for _, bad := range []string{"has space", "new\nline", strings.Repeat("x", 129)} {
		var seen string
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, bad)

		RequestID(captureRequestID(&seen)).ServeHTTP(httptest.NewRecorder(), req)

		assert.NotEqual(t, bad, seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
	}
}

//Personal.AI order the ending
