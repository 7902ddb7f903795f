package main

import (
	"encoding/json"

	"github.com/stockpilot/internal/config"
	"github.com/stockpilot/internal/constants"
	"github.com/stockpilot/internal/logger"
	"github.com/stockpilot/internal/models"
	"github.com/stockpilot/internal/repository"
	"github.com/stockpilot/internal/service"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	kv := repository.NewKVRepository(models.DB)

	// 已有目录数据时不覆盖
	existing, err := kv.GetByKey(constants.StorageKeyCatalog)
	if err != nil {
		stdLog.Fatalf("Failed to read catalog key: %v", err)
	}
	if existing != nil && len(existing.Value) > constants.MinMeaningfulStoredLen {
		stdLog.Printf("目录已存在，跳过种子数据写入")
		return
	}

	products := service.DemoCatalog()
	payload, err := json.Marshal(products)
	if err != nil {
		stdLog.Fatalf("Failed to encode demo catalog: %v", err)
	}

	if _, err := kv.Upsert(constants.StorageKeyCatalog, string(payload)); err != nil {
		stdLog.Fatalf("Failed to write catalog key: %v", err)
	}
	if _, err := kv.Upsert(constants.StorageKeyBackup, string(payload)); err != nil {
		stdLog.Fatalf("Failed to write catalog backup key: %v", err)
	}
	if _, err := kv.Upsert(constants.StorageKeyCurrency, constants.CurrencyDefault); err != nil {
		stdLog.Fatalf("Failed to write currency key: %v", err)
	}

	stdLog.Printf("种子数据写入完成: %d 个演示商品", len(products))
}
