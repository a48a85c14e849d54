package prediction

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"strokewatch-service/internal/app/contracts"
	"strokewatch-service/internal/pkg/constvars"
	"strokewatch-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
)

func TestModelClientPredict(t *testing.T) {
	ctx := context.Background()
	features := map[string]interface{}{"age": 61}

	t.Run("successful prediction", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/predict", r.URL.Path)
			assert.Equal(t, constvars.MethodPost, r.Method)
			w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
			w.Write([]byte(`{"probability":0.73,"model":"stroke-v2","risk_level":"high"}`))
		}))
		defer server.Close()

		client := NewModelClient(server.URL, 2*time.Second)
		score, err := client.Predict(ctx, features)

		assert.NoError(t, err)
		assert.Equal(t, 0.73, score.Probability)
		assert.Equal(t, "stroke-v2", score.Model)
		assert.Equal(t, "high", score.RiskLevel)
	})

	t.Run("missing model tag defaults to unknown", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"probability":0.2}`))
		}))
		defer server.Close()

		client := NewModelClient(server.URL, 2*time.Second)
		score, err := client.Predict(ctx, features)

		assert.NoError(t, err)
		assert.Equal(t, constvars.ResponseUnknown, score.Model)
	})

	t.Run("error status becomes a 503", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewModelClient(server.URL, 2*time.Second)
		_, err := client.Predict(ctx, features)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusServiceUnavailable, customErr.StatusCode)
		assert.False(t, isUnreachable(err))
	})

	t.Run("malformed body becomes a 503", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client := NewModelClient(server.URL, 2*time.Second)
		_, err := client.Predict(ctx, features)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusServiceUnavailable, customErr.StatusCode)
	})

	t.Run("missing probability becomes a 503", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"model":"stroke-v2"}`))
		}))
		defer server.Close()

		client := NewModelClient(server.URL, 2*time.Second)
		_, err := client.Predict(ctx, features)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusServiceUnavailable, customErr.StatusCode)
	})

	t.Run("out-of-range probability becomes a 503", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"probability":1.4}`))
		}))
		defer server.Close()

		client := NewModelClient(server.URL, 2*time.Second)
		_, err := client.Predict(ctx, features)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusServiceUnavailable, customErr.StatusCode)
	})

	t.Run("connection failure is marked unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewModelClient(server.URL, 2*time.Second)
		_, err := client.Predict(ctx, features)

		assert.True(t, isUnreachable(err))
	})
}

func isUnreachable(err error) bool {
	return errors.Is(err, contracts.ErrModelServiceUnreachable)
}
