package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"gastos/middleware"
	"gastos/service"
)

// maxRecentLimit 最近交易单次最多返回条数
const maxRecentLimit = 100

// TransactionHandler 交易处理器
type TransactionHandler struct{}

// NewTransactionHandler 创建交易处理器
func NewTransactionHandler() *TransactionHandler {
	return &TransactionHandler{}
}

// List 某月交易
// @Summary 获取月度交易
// @Description 按日期、时间倒序返回某月全部交易，不传 month 时为当前月份（波哥大时区）
// @Tags 交易
// @Produce json
// @Param month query string false "月份 (YYYY-MM)，例如 2025-11"
// @Success 200 {object} Response{data=[]TransactionView} "获取成功"
// @Failure 400 {object} Response "月份格式错误"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	ledger := middleware.Ledger(c)
	txns, err := ledger.MonthTransactions(c.Request.Context(), c.Query("month"))
	if err != nil {
		Fail(c, err, "查询交易失败")
		return
	}
	Success(c, newTransactionViews(ledger.Locale(), txns))
}

// Recent 最近录入的交易
// @Summary 获取最近交易
// @Description 按录入时间倒序返回最近的交易
// @Tags 交易
// @Produce json
// @Param limit query int false "条数，默认 5，最多 100"
// @Success 200 {object} Response{data=[]TransactionView} "获取成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/v1/transactions/recent [get]
func (h *TransactionHandler) Recent(c *gin.Context) {
	limit := service.DefaultRecentLimit
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			BadRequest(c, "limit 必须为正整数")
			return
		}
		limit = min(n, maxRecentLimit)
	}

	ledger := middleware.Ledger(c)
	txns, err := ledger.RecentTransactions(c.Request.Context(), limit)
	if err != nil {
		Fail(c, err, "查询交易失败")
		return
	}
	Success(c, newTransactionViews(ledger.Locale(), txns))
}

// Get 交易详情
// @Summary 获取交易详情
// @Description 返回交易及其类别、账户；类别或账户已被删除时对应字段为 null
// @Tags 交易
// @Produce json
// @Param id path string true "交易ID"
// @Success 200 {object} Response{data=TransactionDetailView} "获取成功"
// @Failure 404 {object} Response "交易不存在"
// @Router /api/v1/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	ledger := middleware.Ledger(c)
	detail, err := ledger.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err, "查询交易失败")
		return
	}
	Success(c, TransactionDetailView{
		TransactionView: newTransactionView(ledger.Locale(), detail.Transaction),
		Category:        detail.Category,
		Account:         detail.Account,
	})
}

// Create 记一笔交易
// @Summary 新增交易
// @Description 以当前波哥大日期和时间记录一笔手工交易，金额支持 "$1.250.000" 格式
// @Tags 交易
// @Accept json
// @Produce json
// @Param request body service.TransactionInput true "交易信息"
// @Success 200 {object} Response{data=TransactionView} "创建成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var in service.TransactionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	ledger := middleware.Ledger(c)
	txn, err := ledger.AddTransaction(c.Request.Context(), in)
	if err != nil {
		Fail(c, err, "保存交易失败")
		return
	}
	SuccessWithMessage(c, "创建成功", newTransactionView(ledger.Locale(), txn))
}

// Delete 永久删除交易
// @Summary 删除交易
// @Tags 交易
// @Produce json
// @Param id path string true "交易ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "交易不存在"
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	if err := middleware.Ledger(c).DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err, "删除交易失败")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
