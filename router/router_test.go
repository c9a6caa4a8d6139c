package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastos/config"
	"gastos/database"
	"gastos/format"
	"gastos/logger"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Driver:   config.DriverSQLite,
			Path:     filepath.Join(t.TempDir(), "gastos.db"),
			LogLevel: "silent",
		},
	}
}

func serve(t *testing.T, r http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestSetupRouter_Ready(t *testing.T) {
	cfg := testConfig(t)
	boot := database.NewBoot(cfg.Database, logger.Nop())
	t.Cleanup(func() { _ = boot.Close() })
	require.Equal(t, database.StateReady, boot.Run(context.Background()))

	r := SetupRouter(cfg, boot, format.Default(), logger.Nop())

	w := serve(t, r, "GET", "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ready"}`, w.Body.String())

	w = serve(t, r, "GET", "/api/v1/accounts")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 4)

	w = serve(t, r, "GET", "/api/v1/transactions/recent")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRouter_NotReady(t *testing.T) {
	cfg := testConfig(t)
	// 未运行的启动器停留在 initializing
	boot := database.NewBoot(cfg.Database, logger.Nop())

	r := SetupRouter(cfg, boot, format.Default(), logger.Nop())

	w := serve(t, r, "GET", "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "initializing")

	for _, path := range []string{"/api/v1/categories", "/api/v1/transactions", "/api/v1/dashboard"} {
		w = serve(t, r, "GET", path)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}

	// 就绪之后同一个路由开始服务
	require.Equal(t, database.StateReady, boot.Run(context.Background()))
	t.Cleanup(func() { _ = boot.Close() })
	w = serve(t, r, "GET", "/api/v1/categories")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRouter_Degraded(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Driver = "postgres"
	boot := database.NewBoot(cfg.Database, logger.Nop())
	require.Equal(t, database.StateDegraded, boot.Run(context.Background()))

	r := SetupRouter(cfg, boot, format.Default(), logger.Nop())

	w := serve(t, r, "GET", "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "degraded")
	assert.Contains(t, w.Body.String(), "error")

	w = serve(t, r, "GET", "/api/v1/accounts")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	cfg := testConfig(t)
	boot := database.NewBoot(cfg.Database, logger.Nop())
	r := SetupRouter(cfg, boot, format.Default(), logger.Nop())

	req := httptest.NewRequest("OPTIONS", "/api/v1/transactions", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestSetupRouter_SwaggerServedBeforeReady(t *testing.T) {
	cfg := testConfig(t)
	boot := database.NewBoot(cfg.Database, logger.Nop())

	r := SetupRouter(cfg, boot, format.Default(), logger.Nop())

	w := serve(t, r, "GET", "/swagger/doc.json")
	require.Equal(t, http.StatusOK, w.Code)
	var doc struct {
		Info  map[string]interface{} `json:"info"`
		Paths map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "1.0", doc.Info["version"])
	for _, path := range []string{"/api/v1/transactions", "/api/v1/transactions/{id}", "/api/v1/transactions/stream", "/api/v1/export/excel"} {
		assert.Contains(t, doc.Paths, path)
	}

	w = serve(t, r, "GET", "/swagger/index.html")
	assert.Equal(t, http.StatusOK, w.Code)
}
