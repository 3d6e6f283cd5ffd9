package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doHealthCheck(t *testing.T, h *HealthHandler) HealthResponse {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	h.RegisterRoutes(r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	resp := doHealthCheck(t, NewHealthHandler("erp-backend", "1.0.0", nil, nil))

	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "erp-backend", resp.Service)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Equal(t, "disabled", resp.DB)
	assert.Equal(t, "disabled", resp.Redis)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestHealthCheckReportsRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	resp := doHealthCheck(t, NewHealthHandler("erp-backend", "1.0.0", nil, client))
	assert.Equal(t, "up", resp.Redis)

	mr.Close()
	resp = doHealthCheck(t, NewHealthHandler("erp-backend", "1.0.0", nil, client))
	assert.Equal(t, "down", resp.Redis)
}
