package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/desk-reservation/internal/config"
)

func cacheTestServer(t *testing.T, maxBodyBytes int, body string) (*echo.Echo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          time.Minute,
		KeyStrategy:  "route_query",
		Prefix:       "cache",
		MaxBodyBytes: maxBodyBytes,
	}
	e := echo.New()
	e.GET("/things", func(c echo.Context) error {
		return c.String(http.StatusOK, body)
	}, NewRedisCache(cfg, rdb))
	return e, mr
}

func getThings(e *echo.Echo) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/things", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRedisCacheHitServesStoredResponse(t *testing.T) {
	body := `{"items":["a","b","c"]}`
	e, _ := cacheTestServer(t, 1024, body)

	first := getThings(e)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, body, first.Body.String())

	second := getThings(e)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, body, second.Body.String())
}

func TestRedisCacheSkipsOversizedResponses(t *testing.T) {
	body := strings.Repeat("x", 50)
	e, mr := cacheTestServer(t, 10, body)

	first := getThings(e)
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, body, first.Body.String())

	// Nothing may be stored: a HIT replaying a capped capture buffer
	// would hand clients a truncated body.
	assert.Empty(t, mr.Keys())

	second := getThings(e)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "MISS", second.Header().Get("X-Cache"))
	assert.Equal(t, body, second.Body.String())
}

func TestRedisCacheUnlimitedBodySize(t *testing.T) {
	body := strings.Repeat("y", 4096)
	e, _ := cacheTestServer(t, 0, body)

	first := getThings(e)
	require.Equal(t, body, first.Body.String())

	second := getThings(e)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, body, second.Body.String())
}
