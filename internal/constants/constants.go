package constants

// 持久化存储键常量
const (
	StorageKeyCatalog      = "inventory:catalog"        // 主存储键
	StorageKeyBackup       = "inventory:catalog_backup" // 冗余备份键（与主键同步写入）
	StorageKeySafetyBackup = "inventory:safety_backup"  // 启动快照键（仅记录本会话启动时的主键值）
	StorageKeyCurrency     = "inventory:currency"       // 货币符号键（独立持久化）
	StorageKeyLastNotified = "inventory:alert_notified" // 最近一次低库存通知时间键
)

// 库存动作类型常量
const (
	ActionCreateProduct = "CreateProduct"
	ActionAddSubProduct = "AddSubProduct"
	ActionUpdateStock   = "UpdateStock"
	ActionUnknown       = "Unknown"
)

// 商品默认值常量
const (
	DefaultCategory        = "General" // 新建商品默认分类
	DefaultAlertLimit      = 10        // 新建商品默认预警阈值
	DefaultColor           = "Default" // 新建规格默认颜色
	DefaultProductImage    = "/images/placeholder.png"
	ImportedProductName    = "Imported Product"
	ImportedCategory       = "Uncategorized"
	ImportedSKUPlaceholder = "UNKNOWN-SKU"
)

// 货币常量
const (
	CurrencyDefault = "$"
)

// 写保护常量
const (
	// MinMeaningfulStoredLen 主键中超过该长度的值视为“非平凡”数据，
	// 空目录在未声明清空意图时不得覆盖它（空数组字面量长度为 2）。
	MinMeaningfulStoredLen = 2
)

// 队列名称常量
const (
	QueueDefault = "default"
)

// 异步任务类型常量
const (
	TaskLowStockNotify = "alert:low_stock_notify"
)
