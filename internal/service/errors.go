package service

import "errors"

// 业务错误定义
var (
	// ErrNotFound 目标商品或规格不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrSaveGuarded 写保护生效：空目录未声明清空意图，且存储中仍有有效数据
	ErrSaveGuarded = errors.New("写入被保护跳过")
	// ErrBackupMissing 启动快照键不存在
	ErrBackupMissing = errors.New("安全备份不存在")
	// ErrBackupCorrupt 启动快照内容无法解析
	ErrBackupCorrupt = errors.New("安全备份已损坏")
	// ErrImportFormat 导入内容既不是商品数组也不是 products 信封
	ErrImportFormat = errors.New("导入格式无效")
	// ErrProductInvalid 商品字段校验失败
	ErrProductInvalid = errors.New("商品字段无效")
)
