package router

import (
	"fmt"
	"strings"

	"github.com/stockpilot/internal/cache"
	"github.com/stockpilot/internal/config"
	apihandlers "github.com/stockpilot/internal/http/handlers/api"
	"github.com/stockpilot/internal/logger"
	"github.com/stockpilot/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := apihandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sp"
	}
	redisClient := cache.Client()
	assistantRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:assistant", redisPrefix),
		WindowSeconds: cfg.Security.AssistantRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.AssistantRateLimit.MaxRequests,
		Message:       "语音指令请求过于频繁，请稍后再试",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（商品图片）
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 目录与预警
		apiV1.GET("/catalog", handler.GetCatalog)
		apiV1.PUT("/catalog", handler.ReplaceCatalog)
		apiV1.GET("/alerts", handler.GetAlerts)

		// 商品与规格
		apiV1.POST("/products", handler.CreateProduct)
		apiV1.PUT("/products/:id", handler.UpdateProduct)
		apiV1.DELETE("/products/:id", handler.DeleteProduct)
		apiV1.POST("/products/:id/sub-products", handler.AddSubProduct)
		apiV1.PUT("/products/:id/sub-products/:sub_id", handler.UpdateSubProduct)
		apiV1.DELETE("/products/:id/sub-products/:sub_id", handler.DeleteSubProduct)

		// 结构化库存动作与语音指令
		apiV1.POST("/actions", handler.ApplyAction)
		apiV1.POST("/assistant/command", RateLimitMiddleware(redisClient, assistantRule, KeyByIP), handler.VoiceCommand)

		// 导出与导入
		apiV1.GET("/export/json", handler.ExportJSON)
		apiV1.GET("/export/csv", handler.ExportCSV)
		apiV1.POST("/import", handler.ImportCatalog)

		// 持久化维护
		apiV1.GET("/storage/status", handler.StorageStatus)
		apiV1.POST("/storage/save", handler.ForceSave)
		apiV1.POST("/storage/restore", handler.RestoreBackup)

		// 设置
		apiV1.GET("/settings/currency", handler.GetCurrency)
		apiV1.PUT("/settings/currency", handler.UpdateCurrency)
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
