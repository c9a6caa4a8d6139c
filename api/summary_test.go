package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gastos/database"
	"gastos/models"
)

func TestCatalogHandler_Categories(t *testing.T) {
	env := setupAPI(t)

	w, resp := env.do(t, "GET", "/api/v1/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.Category
	require.NoError(t, json.Unmarshal(resp.Data, &all))
	assert.Len(t, all, 15)

	w, resp = env.do(t, "GET", "/api/v1/categories?type=income", "")
	require.Equal(t, http.StatusOK, w.Code)
	var income []models.Category
	require.NoError(t, json.Unmarshal(resp.Data, &income))
	assert.Len(t, income, 3)
	for _, c := range income {
		assert.Equal(t, models.TypeIncome, c.Type)
	}

	w, _ = env.do(t, "GET", "/api/v1/categories?type=gift", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogHandler_Accounts(t *testing.T) {
	env := setupAPI(t)

	w, resp := env.do(t, "GET", "/api/v1/accounts", "")
	require.Equal(t, http.StatusOK, w.Code)
	var accounts []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &accounts))
	require.Len(t, accounts, 4)
	for _, a := range accounts {
		assert.Equal(t, "$0", a["balance_display"])
		assert.Equal(t, true, a["is_active"])
	}
}

func seedNovember(t *testing.T, env *testEnv) {
	t.Helper()
	acct := env.account(t).ID
	comida := env.category(t, "Comida").ID
	transporte := env.category(t, "Transporte").ID
	salario := env.category(t, "Salario").ID
	transfer := env.category(t, "Transferencia").ID

	env.insert(t, "2025-11-03", "12:00", 45000, models.TypeExpense, comida, acct)
	env.insert(t, "2025-11-10", "13:00", 5000, models.TypeExpense, comida, acct)
	env.insert(t, "2025-11-12", "07:30", 40000, models.TypeExpense, transporte, acct)
	env.insert(t, "2025-11-15", "09:00", 3000000, models.TypeIncome, salario, acct)
	env.insert(t, "2025-11-16", "09:00", 200000, models.TypeTransfer, transfer, acct)
}

func TestSummaryHandler_Dashboard(t *testing.T) {
	env := setupAPI(t)
	seedNovember(t, env)

	w, resp := env.do(t, "GET", "/api/v1/dashboard?month=2025-11", "")
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Summary map[string]interface{}   `json:"summary"`
		Recent  []map[string]interface{} `json:"recent"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "noviembre 2025", data.Summary["month_display"])
	assert.Equal(t, "$3.000.000", data.Summary["income_display"])
	assert.Equal(t, "$90.000", data.Summary["expenses_display"])
	assert.Equal(t, "90.0K", data.Summary["expenses_compact"])
	assert.Equal(t, "$2.910.000", data.Summary["balance_display"])
	assert.EqualValues(t, 5, data.Summary["count"])
	assert.Len(t, data.Recent, 5)

	w, _ = env.do(t, "GET", "/api/v1/dashboard?month=2025-13", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSummaryHandler_Statistics(t *testing.T) {
	env := setupAPI(t)
	seedNovember(t, env)

	w, resp := env.do(t, "GET", "/api/v1/statistics?month=2025-11", "")
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Categories []struct {
			Category          models.Category `json:"category"`
			Count             int             `json:"count"`
			TotalDisplay      string          `json:"total_display"`
			PercentageDisplay string          `json:"percentage_display"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Len(t, data.Categories, 2)
	assert.Equal(t, "Comida", data.Categories[0].Category.Name)
	assert.Equal(t, 2, data.Categories[0].Count)
	assert.Equal(t, "$50.000", data.Categories[0].TotalDisplay)
	assert.Equal(t, "55.6%", data.Categories[0].PercentageDisplay)
	assert.Equal(t, "Transporte", data.Categories[1].Category.Name)
}

func TestExportHandler_ExportExcel(t *testing.T) {
	env := setupAPI(t)
	seedNovember(t, env)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/export/excel?month=2025-11", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "gastos_2025-11.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Transacciones")
	require.NoError(t, err)
	// 表头 + 5 笔交易 + 汇总行
	assert.GreaterOrEqual(t, len(rows), 6)
	assert.Equal(t, "Fecha", rows[0][0])
}

func TestExportHandler_BadMonth(t *testing.T) {
	env := setupAPI(t)
	w, resp := env.do(t, "GET", "/api/v1/export/excel?month=2025/11", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Message, "YYYY-MM")
}

func TestFail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"校验错误", &models.ValidationError{Field: "amount", Message: "请输入金额"}, http.StatusBadRequest, "请输入金额"},
		{"存储层包装的校验错误", &database.StorageError{Op: "create", Table: "transactions", Err: &models.ValidationError{Field: "date", Message: "日期格式应为 YYYY-MM-DD"}}, http.StatusBadRequest, "日期格式应为 YYYY-MM-DD"},
		{"记录不存在", &database.NotFoundError{Table: "transactions", ID: "txn_x"}, http.StatusNotFound, "记录不存在"},
		{"已关闭", database.ErrClosed, http.StatusServiceUnavailable, "数据库已关闭"},
		{"其他错误", errors.New("disk I/O error"), http.StatusInternalServerError, "disk I/O error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			Fail(c, tc.err, "操作失败")

			assert.Equal(t, tc.code, w.Code)
			var resp apiResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.code, resp.Code)
			assert.Equal(t, tc.message, resp.Message)
		})
	}
}
