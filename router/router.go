package router

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"gastos/api"
	"gastos/config"
	"gastos/database"
	_ "gastos/docs"
	"gastos/format"
	"gastos/middleware"
	"gastos/service"
)

// 写接口限流：每 IP 每分钟 60 次
const (
	writeLimit       = 60
	writeLimitWindow = time.Minute
)

// SetupRouter 设置路由
// 数据库在后台初始化，/api/v1 在存储可用之前返回 503
func SetupRouter(cfg *config.Config, boot *database.Boot, locale *format.Locale, log zerolog.Logger) *gin.Engine {
	// 设置运行模式
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	// CORS 中间件
	r.Use(CORSMiddleware())

	ledgers := &ledgerSource{boot: boot, locale: locale, log: log}

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RequireLedger(ledgers.get))
	{
		catalogHandler := api.NewCatalogHandler()
		v1.GET("/categories", catalogHandler.Categories)
		v1.GET("/accounts", catalogHandler.Accounts)

		writeLimiter := middleware.WriteRateLimit(writeLimit, writeLimitWindow)
		transactionHandler := api.NewTransactionHandler()
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", transactionHandler.List)
			transactions.GET("/recent", transactionHandler.Recent)
			transactions.GET("/stream", transactionHandler.Stream)
			transactions.GET("/:id", transactionHandler.Get)
			transactions.POST("", writeLimiter, transactionHandler.Create)
			transactions.DELETE("/:id", writeLimiter, transactionHandler.Delete)
		}

		summaryHandler := api.NewSummaryHandler()
		v1.GET("/dashboard", summaryHandler.Dashboard)
		v1.GET("/statistics", summaryHandler.Statistics)

		exportHandler := api.NewExportHandler()
		v1.GET("/export/excel", exportHandler.ExportExcel)
	}

	r.GET("/health", func(c *gin.Context) {
		state := boot.State()
		body := gin.H{"status": state.String()}
		if err := boot.Err(); err != nil {
			body["error"] = api.SafeErrorMessage(err, "数据库不可用")
		}
		code := http.StatusOK
		if state != database.StateReady {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, body)
	})

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// ledgerSource 存储可用后创建一次 Ledger
type ledgerSource struct {
	boot   *database.Boot
	locale *format.Locale
	log    zerolog.Logger

	mu     sync.Mutex
	ledger *service.Ledger
}

func (s *ledgerSource) get() *service.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ledger == nil {
		if store := s.boot.Store(); store != nil {
			s.ledger = service.NewLedger(store, s.locale, s.log)
		}
	}
	return s.ledger
}

// CORSMiddleware 本地前端跨域访问
func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:   []string{"Content-Length", "Content-Disposition"},
		MaxAge:          12 * time.Hour,
	})
}
