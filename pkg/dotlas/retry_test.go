package dotlas

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoRetryByDefault(t *testing.T) {
	var calls atomic.Int32
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.ListCities(context.Background())
	require.Error(t, err)
	assert.True(t, IsService(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestRetryRecoversFromServerError(t *testing.T) {
	var calls atomic.Int32
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode([]string{"Houston"})
	}, WithRetries(2))

	cities, err := c.ListCities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Houston"}, cities)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRetryOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode([]string{"Houston"})
	}, WithRetries(1))

	_, err := c.ListCities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestNoRetryOnDeterministicFailures(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusNotFound, http.StatusUnprocessableEntity} {
		var calls atomic.Int32
		_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(status)
		}, WithRetries(3))

		_, err := c.ListCities(context.Background())
		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load(), "status %d must not be retried", status)
	}
}

func TestRetryExhaustionSurfacesLastError(t *testing.T) {
	var calls atomic.Int32
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, WithRetries(2))

	_, err := c.ListCities(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}

func TestRetryable(t *testing.T) {
	t.Parallel()
	assert.True(t, retryable(http.StatusTooManyRequests))
	assert.True(t, retryable(http.StatusInternalServerError))
	assert.True(t, retryable(http.StatusBadGateway))
	assert.False(t, retryable(http.StatusForbidden))
	assert.False(t, retryable(http.StatusNotFound))
	assert.False(t, retryable(http.StatusUnprocessableEntity))
}

func TestBackoffHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, backoff(ctx, 3), context.Canceled)
}

func TestRateLimitedClient(t *testing.T) {
	var calls atomic.Int32
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode([]string{})
	}, WithRateLimit(1000))

	for i := 0; i < 3; i++ {
		_, err := c.ListCities(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), calls.Load())
}
