package api

import (
	"github.com/gin-gonic/gin"

	"gastos/middleware"
	"gastos/service"
)

// SummaryHandler 汇总与统计
type SummaryHandler struct{}

func NewSummaryHandler() *SummaryHandler {
	return &SummaryHandler{}
}

// DashboardResponse 首页数据
type DashboardResponse struct {
	Summary SummaryView       `json:"summary"`
	Recent  []TransactionView `json:"recent"`
}

// Dashboard 首页：月度汇总和最近交易
// @Summary 获取首页数据
// @Description 某月收入、支出、结余和最近 5 笔交易，不传 month 时为当前月份
// @Tags 统计
// @Produce json
// @Param month query string false "月份 (YYYY-MM)"
// @Success 200 {object} Response{data=DashboardResponse} "获取成功"
// @Failure 400 {object} Response "月份格式错误"
// @Router /api/v1/dashboard [get]
func (h *SummaryHandler) Dashboard(c *gin.Context) {
	ledger := middleware.Ledger(c)
	ctx := c.Request.Context()

	summary, err := ledger.MonthSummary(ctx, c.Query("month"))
	if err != nil {
		Fail(c, err, "查询汇总失败")
		return
	}
	recent, err := ledger.RecentTransactions(ctx, service.DefaultRecentLimit)
	if err != nil {
		Fail(c, err, "查询交易失败")
		return
	}
	Success(c, DashboardResponse{
		Summary: newSummaryView(ledger.Locale(), summary),
		Recent:  newTransactionViews(ledger.Locale(), recent),
	})
}

// StatisticsResponse 类别统计
type StatisticsResponse struct {
	Summary    SummaryView           `json:"summary"`
	Categories []CategorySummaryView `json:"categories"`
}

// Statistics 某月支出按类别统计
// @Summary 获取类别统计
// @Description 只统计支出，金额从高到低，百分比基于当月全部支出
// @Tags 统计
// @Produce json
// @Param month query string false "月份 (YYYY-MM)"
// @Success 200 {object} Response{data=StatisticsResponse} "获取成功"
// @Failure 400 {object} Response "月份格式错误"
// @Router /api/v1/statistics [get]
func (h *SummaryHandler) Statistics(c *gin.Context) {
	ledger := middleware.Ledger(c)
	ctx := c.Request.Context()
	month := c.Query("month")

	summary, err := ledger.MonthSummary(ctx, month)
	if err != nil {
		Fail(c, err, "查询汇总失败")
		return
	}
	stats, err := ledger.CategoryStats(ctx, month)
	if err != nil {
		Fail(c, err, "查询统计失败")
		return
	}
	Success(c, StatisticsResponse{
		Summary:    newSummaryView(ledger.Locale(), summary),
		Categories: newCategorySummaryViews(ledger.Locale(), stats),
	})
}
