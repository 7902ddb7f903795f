package service

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/stockpilot/internal/constants"
	"github.com/stockpilot/internal/logger"
	"github.com/stockpilot/internal/models"
	"github.com/stockpilot/internal/queue"
	"github.com/stockpilot/internal/repository"
)

// 目录加载来源常量
const (
	BootSourcePrimary = "primary"
	BootSourceBackup  = "backup"
	BootSourceSeed    = "seed"
	BootSourceEmpty   = "empty"
)

// CatalogService 目录业务服务
// 内存目录是唯一权威状态，持久化副本由写保护规则守护。
// 互斥锁保证每次变更独占访问（对应原事件循环的单线程语义）。
type CatalogService struct {
	mu          sync.Mutex
	kv          repository.KVRepository
	queueClient *queue.Client

	products    []models.Product
	lastSavedAt time.Time
	bootSource  string
}

// NewCatalogService 创建目录服务
func NewCatalogService(kv repository.KVRepository, queueClient *queue.Client) *CatalogService {
	return &CatalogService{
		kv:          kv,
		queueClient: queueClient,
		products:    []models.Product{},
	}
}

// ChangeResult 一次目录变更的结果
// 内存变更总是先生效；持久化失败不回滚内存状态。
type ChangeResult struct {
	Alerts  []models.Alert `json:"alerts"` // 变更后重算出的预警
	Saved   bool           `json:"saved"`  // 是否成功写入持久化存储
	SaveErr error          `json:"-"`      // 写入失败原因（含写保护跳过）
}

// BootResult 启动加载结果
type BootResult struct {
	Source       string `json:"source"`        // primary/backup/seed/empty
	ProductCount int    `json:"product_count"` // 加载到的商品数
}

// LoadOnBoot 启动时从持久化存储装载目录
// 约定：
//  1. 主键存在时先原样复制到启动快照键，再尝试解析；
//  2. 主键缺失回退备份键；
//  3. 解析失败依次降级（主键失败试备份键，均失败得到空目录）；
//  4. 两个键都不存在时使用演示种子目录，且在用户首次变更前不落盘。
func (s *CatalogService) LoadOnBoot() (*BootResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	primary, err := s.kv.GetByKey(constants.StorageKeyCatalog)
	if err != nil {
		return nil, err
	}
	if primary != nil {
		// 先于任何内存变更抓取本会话的最后已知良好状态
		if _, err := s.kv.Upsert(constants.StorageKeySafetyBackup, primary.Value); err != nil {
			logger.Warnw("catalog_safety_backup_write_failed", "error", err)
		}
		if products, ok := decodeCatalog(primary.Value); ok {
			s.products = products
			s.bootSource = BootSourcePrimary
			return &BootResult{Source: s.bootSource, ProductCount: len(products)}, nil
		}
		logger.Warnw("catalog_primary_corrupt_fallback_backup", "key", constants.StorageKeyCatalog)
	}

	backup, err := s.kv.GetByKey(constants.StorageKeyBackup)
	if err != nil {
		return nil, err
	}
	if backup != nil {
		if products, ok := decodeCatalog(backup.Value); ok {
			s.products = products
			s.bootSource = BootSourceBackup
			return &BootResult{Source: s.bootSource, ProductCount: len(products)}, nil
		}
		logger.Warnw("catalog_backup_corrupt", "key", constants.StorageKeyBackup)
	}

	if primary != nil || backup != nil {
		// 有值但全部损坏：空目录兜底，交给写保护阻止覆盖
		s.products = []models.Product{}
		s.bootSource = BootSourceEmpty
		return &BootResult{Source: s.bootSource, ProductCount: 0}, nil
	}

	s.products = DemoCatalog()
	s.bootSource = BootSourceSeed
	return &BootResult{Source: s.bootSource, ProductCount: len(s.products)}, nil
}

// Mutate 统一的目录变更入口
// fn 收到目录副本并返回新目录；成功后执行受保护写入、预警重算与异步通知。
func (s *CatalogService) Mutate(deliberateClear bool, fn func([]models.Product) ([]models.Product, error)) (*ChangeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(models.CloneProducts(s.products))
	if err != nil {
		return nil, err
	}
	s.products = next
	return s.afterChangeLocked(deliberateClear), nil
}

// afterChangeLocked 变更后的标准流水线：受保护写入 + 预警重算 + 通知入队
func (s *CatalogService) afterChangeLocked(deliberateClear bool) *ChangeResult {
	result := &ChangeResult{
		Alerts: DeriveAlerts(s.products, time.Now()),
	}
	if err := s.saveLocked(deliberateClear); err != nil {
		result.SaveErr = err
		logger.Warnw("catalog_save_skipped_or_failed", "error", err)
	} else {
		result.Saved = true
	}
	s.notifyLowStock(result.Alerts)
	return result
}

// saveLocked 受写保护的持久化写入
// 空目录 + 未声明清空意图 + 存储中仍有非平凡数据 => 跳过写入，
// 防止瞬时空状态覆盖既有数据。
func (s *CatalogService) saveLocked(deliberateClear bool) error {
	if len(s.products) == 0 && !deliberateClear {
		existing, err := s.kv.GetByKey(constants.StorageKeyCatalog)
		if err != nil {
			return err
		}
		if existing != nil && len(strings.TrimSpace(existing.Value)) > constants.MinMeaningfulStoredLen {
			return ErrSaveGuarded
		}
	}
	return s.writeBothKeysLocked()
}

// writeBothKeysLocked 同步写入主键与冗余备份键
func (s *CatalogService) writeBothKeysLocked() error {
	data, err := json.Marshal(s.products)
	if err != nil {
		return err
	}
	if _, err := s.kv.Upsert(constants.StorageKeyCatalog, string(data)); err != nil {
		return err
	}
	if _, err := s.kv.Upsert(constants.StorageKeyBackup, string(data)); err != nil {
		return err
	}
	s.lastSavedAt = time.Now()
	return nil
}

// ForceSave 手动强制保存（完全绕过写保护）
func (s *CatalogService) ForceSave() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeBothKeysLocked()
}

// RestoreSafetyBackup 用启动快照整体替换内存目录
// 快照缺失与快照损坏是两类不同的用户可见失败。
func (s *CatalogService) RestoreSafetyBackup() (*ChangeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.kv.GetByKey(constants.StorageKeySafetyBackup)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrBackupMissing
	}
	products, ok := decodeCatalog(entry.Value)
	if !ok {
		return nil, ErrBackupCorrupt
	}
	s.products = products
	result := &ChangeResult{
		Alerts: DeriveAlerts(s.products, time.Now()),
	}
	if err := s.writeBothKeysLocked(); err != nil {
		result.SaveErr = err
		logger.Warnw("catalog_restore_save_failed", "error", err)
	} else {
		result.Saved = true
	}
	s.notifyLowStock(result.Alerts)
	return result, nil
}

// RestoreImported 用导入内容整体替换目录，并立即强制落盘
// 落盘失败不影响导入本身的成功状态，由调用方分别上报。
func (s *CatalogService) RestoreImported(products []models.Product) *ChangeResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = models.CloneProducts(products)
	result := &ChangeResult{
		Alerts: DeriveAlerts(s.products, time.Now()),
	}
	if err := s.writeBothKeysLocked(); err != nil {
		result.SaveErr = err
		logger.Warnw("catalog_import_save_failed", "error", err)
	} else {
		result.Saved = true
	}
	s.notifyLowStock(result.Alerts)
	return result
}

// ApplyAction 应用一条结构化库存动作
func (s *CatalogService) ApplyAction(action models.InventoryAction) (ActionOutcome, *ChangeResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, outcome := ApplyAction(s.products, action)
	if !outcome.Applied {
		return outcome, nil
	}
	s.products = next
	return outcome, s.afterChangeLocked(false)
}

// Snapshot 获取目录副本
func (s *CatalogService) Snapshot() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneProducts(s.products)
}

// Alerts 基于当前目录重算预警
func (s *CatalogService) Alerts() []models.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DeriveAlerts(s.products, time.Now())
}

// LastSavedAt 最近一次成功写入时间（零值表示尚未写入）
func (s *CatalogService) LastSavedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSavedAt
}

// BootSource 启动时的装载来源
func (s *CatalogService) BootSource() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bootSource
}

// Currency 读取货币符号（独立持久化键）
func (s *CatalogService) Currency() (string, error) {
	entry, err := s.kv.GetByKey(constants.StorageKeyCurrency)
	if err != nil {
		return "", err
	}
	if entry == nil || strings.TrimSpace(entry.Value) == "" {
		return constants.CurrencyDefault, nil
	}
	return entry.Value, nil
}

// SetCurrency 写入货币符号
func (s *CatalogService) SetCurrency(symbol string) error {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		symbol = constants.CurrencyDefault
	}
	_, err := s.kv.Upsert(constants.StorageKeyCurrency, symbol)
	return err
}

// notifyLowStock 低库存预警通知入队（队列未启用时为空操作）
func (s *CatalogService) notifyLowStock(alerts []models.Alert) {
	if len(alerts) == 0 || !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueLowStockNotify(queue.LowStockNotifyPayload{Alerts: alerts}); err != nil {
		logger.Warnw("catalog_low_stock_enqueue_failed", "error", err)
	}
}

// decodeCatalog 解析持久化的 JSON 目录文本
func decodeCatalog(value string) ([]models.Product, bool) {
	var products []models.Product
	if err := json.Unmarshal([]byte(value), &products); err != nil {
		return nil, false
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, true
}
