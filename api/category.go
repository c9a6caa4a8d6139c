package api

import (
	"github.com/gin-gonic/gin"

	"gastos/middleware"
	"gastos/models"
)

// CatalogHandler 类别与账户
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// Categories 启用的类别
// @Summary 获取类别列表
// @Description 返回启用的类别，可按类型过滤
// @Tags 类别
// @Produce json
// @Param type query string false "expense / income / transfer"
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Failure 400 {object} Response "类型错误"
// @Router /api/v1/categories [get]
func (h *CatalogHandler) Categories(c *gin.Context) {
	typ := models.TransactionType(c.Query("type"))
	list, err := middleware.Ledger(c).ActiveCategories(c.Request.Context(), typ)
	if err != nil {
		Fail(c, err, "查询类别失败")
		return
	}
	Success(c, list)
}

// AccountView 账户加上格式化余额
type AccountView struct {
	*models.Account
	BalanceDisplay string `json:"balance_display"`
}

// Accounts 启用的账户
// @Summary 获取账户列表
// @Tags 账户
// @Produce json
// @Success 200 {object} Response{data=[]AccountView} "获取成功"
// @Router /api/v1/accounts [get]
func (h *CatalogHandler) Accounts(c *gin.Context) {
	ledger := middleware.Ledger(c)
	list, err := ledger.ActiveAccounts(c.Request.Context())
	if err != nil {
		Fail(c, err, "查询账户失败")
		return
	}
	views := make([]AccountView, 0, len(list))
	for _, a := range list {
		views = append(views, AccountView{Account: a, BalanceDisplay: ledger.Locale().FormatCurrency(a.Balance)})
	}
	Success(c, views)
}
