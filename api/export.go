package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"gastos/middleware"
	"gastos/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出处理器
type ExportHandler struct{}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// ExportExcel 导出某月交易为 Excel
// @Summary 导出月度交易
// @Description 导出某月交易明细和支出类别统计为 xlsx，不传 month 时为当前月份
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param month query string false "月份 (YYYY-MM)"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} Response "月份格式错误"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	ledger := middleware.Ledger(c)
	month := c.Query("month")
	if month == "" {
		month = ledger.Locale().CurrentMonth()
	}

	// 先写入内存，出错时还能返回 JSON
	var buf bytes.Buffer
	if err := ledger.ExportMonth(c.Request.Context(), month, &buf); err != nil {
		Fail(c, err, "导出失败")
		return
	}

	filename := service.ExportFilename(month)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
