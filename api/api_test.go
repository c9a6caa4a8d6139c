package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"gastos/config"
	"gastos/database"
	"gastos/format"
	"gastos/logger"
	"gastos/middleware"
	"gastos/models"
	"gastos/service"
)

// 2025-11-27 14:30 波哥大时间
func testClock() time.Time {
	return time.Date(2025, 11, 27, 19, 30, 0, 0, time.UTC)
}

type testEnv struct {
	router *gin.Engine
	ledger *service.Ledger
	store  *database.Store
}

func setupAPI(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := database.Open(config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "gastos.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	_, err = database.SeedDefaults(context.Background(), store)
	require.NoError(t, err)

	ledger := service.NewLedger(store, format.Default().WithClock(testClock), logger.Nop())

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RequireLedger(func() *service.Ledger { return ledger }))
	{
		catalog := NewCatalogHandler()
		v1.GET("/categories", catalog.Categories)
		v1.GET("/accounts", catalog.Accounts)

		h := NewTransactionHandler()
		v1.GET("/transactions", h.List)
		v1.GET("/transactions/recent", h.Recent)
		v1.GET("/transactions/stream", h.Stream)
		v1.GET("/transactions/:id", h.Get)
		v1.POST("/transactions", h.Create)
		v1.DELETE("/transactions/:id", h.Delete)

		summary := NewSummaryHandler()
		v1.GET("/dashboard", summary.Dashboard)
		v1.GET("/statistics", summary.Statistics)

		v1.GET("/export/excel", NewExportHandler().ExportExcel)
	}
	return &testEnv{router: r, ledger: ledger, store: store}
}

type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e *testEnv) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp apiResponse
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func (e *testEnv) category(t *testing.T, name string) *models.Category {
	t.Helper()
	cats, err := e.ledger.ActiveCategories(context.Background(), "")
	require.NoError(t, err)
	for _, c := range cats {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("类别 %s 不存在", name)
	return nil
}

func (e *testEnv) account(t *testing.T) *models.Account {
	t.Helper()
	accts, err := e.ledger.ActiveAccounts(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, accts)
	return accts[0]
}

func (e *testEnv) insert(t *testing.T, date, tm string, amount int64, typ models.TransactionType, categoryID, accountID string) *models.Transaction {
	t.Helper()
	rec, err := e.store.Create(context.Background(), models.TableTransactions, func(r models.Record) error {
		txn := r.(*models.Transaction)
		txn.Date = date
		txn.Time = tm
		txn.Amount = decimal.NewFromInt(amount)
		txn.Description = "Prueba"
		txn.CategoryID = categoryID
		txn.AccountID = accountID
		txn.Type = typ
		txn.PaymentMethod = models.PaymentCash
		txn.Source = models.SourceManual
		txn.Confidence = 1
		return nil
	})
	require.NoError(t, err)
	return rec.(*models.Transaction)
}
