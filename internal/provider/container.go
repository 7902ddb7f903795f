package provider

import (
	"github.com/stockpilot/internal/assistant"
	"github.com/stockpilot/internal/cache"
	"github.com/stockpilot/internal/config"
	"github.com/stockpilot/internal/logger"
	"github.com/stockpilot/internal/models"
	"github.com/stockpilot/internal/queue"
	"github.com/stockpilot/internal/repository"
	"github.com/stockpilot/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	KVRepo repository.KVRepository

	// Services
	CatalogService *service.CatalogService

	// 语音助手客户端，未启用时为 nil
	Assistant *assistant.Client
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.KVRepo = repository.NewKVRepository(models.DB)
	c.CatalogService = service.NewCatalogService(c.KVRepo, queueClient)

	if cfg.Assistant.Enabled {
		c.Assistant = assistant.NewClient(assistant.Config{
			Endpoint:  cfg.Assistant.Endpoint,
			APIKey:    cfg.Assistant.APIKey,
			TimeoutMS: cfg.Assistant.TimeoutMS,
		})
	}

	return c
}
