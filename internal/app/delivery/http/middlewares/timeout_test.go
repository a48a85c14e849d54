package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestDeadline(t *testing.T) {
	t.Run("sets a deadline on the request context", func(t *testing.T) {
		var deadline time.Time
		var ok bool
		handler := RequestDeadline(5 * time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			deadline, ok = r.Context().Deadline()
			w.WriteHeader(http.StatusOK)
		}))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/Patient", nil))

		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("context is done once the deadline passes", func(t *testing.T) {
		var expired bool
		handler := RequestDeadline(time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
				expired = true
			case <-time.After(time.Second):
			}
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/Patient", nil))

		assert.True(t, expired)
	})
}
