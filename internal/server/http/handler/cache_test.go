package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-customerapi/internal/pkg/cache"
	"go-customerapi/internal/server/http/middleware"
	"go-customerapi/internal/util/retcode"
	"go-customerapi/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newCacheRouter(t *testing.T) (*gin.Engine, *cache.LayeredCache) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	lc := cache.NewLayered(cache.New(time.Minute), nil)
	h := NewCacheHandler(Dependencies{Cache: lc})
	r := gin.New()
	r.Use(middleware.ResponseWrapper())
	r.GET("/admin/Cache/metrics", h.Metrics)
	r.GET("/admin/Cache/reset", h.Reset)
	return r, lc
}

func getBody(t *testing.T, r *gin.Engine, path string) response.Body {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var out response.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCacheMetricsWrappedResponse(t *testing.T) {
	r, lc := newCacheRouter(t)
	_, _ = lc.Get(context.Background(), "warm") // 1 miss

	out := getBody(t, r, "/admin/Cache/metrics")
	require.Equal(t, retcode.SUCCESS, out.Code)
	require.Equal(t, "success", out.Msg)
	data := out.Data.(map[string]interface{})
	require.Equal(t, float64(1), data["req_total"])
	require.Equal(t, float64(1), data["miss"])
}

func TestCacheResetClearsCounters(t *testing.T) {
	r, lc := newCacheRouter(t)
	_, _ = lc.Get(context.Background(), "warm")

	out := getBody(t, r, "/admin/Cache/reset")
	require.Equal(t, retcode.SUCCESS, out.Code)

	out = getBody(t, r, "/admin/Cache/metrics")
	data := out.Data.(map[string]interface{})
	require.Equal(t, float64(0), data["req_total"])
}
