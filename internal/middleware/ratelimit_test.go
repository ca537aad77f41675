package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisRateLimiterStore_FixedWindow(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisRateLimiterStore(client, 2, time.Hour, zap.NewNop())

	for i := 0; i < 2; i++ {
		ok, err := store.Allow("1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := store.Allow("1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)

	// Other clients have their own budget.
	ok, err = store.Allow("5.6.7.8")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, time.Hour, mr.TTL("rl:api:1.2.3.4"))
	mr.FastForward(time.Hour + time.Second)

	ok, err = store.Allow("1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisRateLimiterStore_FailsOpen(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisRateLimiterStore(client, 1, time.Hour, zap.NewNop())
	mr.Close()

	ok, err := store.Allow("1.2.3.4")

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRateLimiter_DeniesWith429(t *testing.T) {
	_, client := newTestRedis(t)
	e := echo.New()
	e.GET("/api/v1/posts", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RateLimiter(client, 1, zap.NewNop()))

	first := httptest.NewRecorder()
	e.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	e.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
