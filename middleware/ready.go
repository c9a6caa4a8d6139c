package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gastos/service"
)

// LedgerKey gin.Context 中 Ledger 的 key
const LedgerKey = "ledger"

// RequireLedger 数据库未就绪时返回 503，就绪后把 Ledger 放入 context
// get 在数据库仍在初始化或打开失败时返回 nil
func RequireLedger(get func() *service.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		l := get()
		if l == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"code":    http.StatusServiceUnavailable,
				"message": "数据库尚未就绪",
			})
			c.Abort()
			return
		}
		c.Set(LedgerKey, l)
		c.Next()
	}
}

// Ledger 取出 RequireLedger 放入的 Ledger
func Ledger(c *gin.Context) *service.Ledger {
	if v, ok := c.Get(LedgerKey); ok {
		if l, ok := v.(*service.Ledger); ok {
			return l
		}
	}
	return nil
}
