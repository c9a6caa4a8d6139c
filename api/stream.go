package api

import (
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"

	"gastos/logger"
	"gastos/middleware"
	"gastos/models"
	"gastos/service"
)

// streamFrame SSE 帧
// Type: snapshot 为查询结果，error 为重新查询失败
type streamFrame struct {
	Type         string            `json:"type"`
	Month        string            `json:"month"`
	Transactions []TransactionView `json:"transactions,omitempty"`
	Summary      *SummaryView      `json:"summary,omitempty"`
	Error        string            `json:"error,omitempty"`
}

func writeSSEJSON(c *gin.Context, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(c.Writer, "data: %s\n\n", b)
	c.Writer.Flush()
}

// Stream 订阅某月交易
// @Summary 订阅月度交易
// @Description 先推送一次当前结果，之后每次相关写入提交后推送最新结果，连接断开即取消订阅
// @Tags 交易
// @Produce text/event-stream
// @Param month query string false "月份 (YYYY-MM)"
// @Success 200 {string} string "SSE流：data: {\"type\":\"snapshot\",\"transactions\":[...]}"
// @Failure 400 {object} Response "月份格式错误"
// @Router /api/v1/transactions/stream [get]
func (h *TransactionHandler) Stream(c *gin.Context) {
	ledger := middleware.Ledger(c)
	ctx := c.Request.Context()
	log := logger.FromContext(ctx)

	month := c.Query("month")
	if month == "" {
		month = ledger.Locale().CurrentMonth()
	}
	q, err := ledger.MonthQuery(month)
	if err != nil {
		Fail(c, err, "订阅失败")
		return
	}

	frames := make(chan streamFrame, 8)
	sub, err := ledger.Store().Subscribe(ctx, q, func(records []models.Record, err error) {
		frame := streamFrame{Type: "snapshot", Month: month}
		if err != nil {
			frame.Type = "error"
			frame.Error = SafeErrorMessage(err, "查询交易失败")
		} else {
			txns := models.AsTransactions(records)
			summary := newSummaryView(ledger.Locale(), service.Summarize(month, txns))
			frame.Transactions = newTransactionViews(ledger.Locale(), txns)
			frame.Summary = &summary
		}
		// 客户端断开后不再阻塞订阅协程
		select {
		case frames <- frame:
		case <-ctx.Done():
		}
	})
	if err != nil {
		Fail(c, err, "订阅失败")
		return
	}
	defer sub.Unsubscribe()
	log.Debug().Str("month", month).Msg("交易订阅已建立")

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(200)
	c.Writer.Flush()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("month", month).Msg("交易订阅已关闭")
			return
		case <-sub.Done():
			// 存储关闭
			return
		case frame := <-frames:
			writeSSEJSON(c, frame)
		}
	}
}
