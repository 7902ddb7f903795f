package repository

import (
	"errors"

	"github.com/stockpilot/internal/models"

	"gorm.io/gorm"
)

// KVRepository 键值存储数据访问接口
// 目录及其备份以 JSON 文本形式按键存取，持久化保护逻辑只依赖该接口。
type KVRepository interface {
	GetByKey(key string) (*models.StoreEntry, error)
	Upsert(key, value string) (*models.StoreEntry, error)
	Delete(key string) error
}

// GormKVRepository GORM 实现
type GormKVRepository struct {
	db *gorm.DB
}

// NewKVRepository 创建键值仓库
func NewKVRepository(db *gorm.DB) *GormKVRepository {
	return &GormKVRepository{db: db}
}

// GetByKey 获取键值
func (r *GormKVRepository) GetByKey(key string) (*models.StoreEntry, error) {
	var entry models.StoreEntry
	if err := r.db.Where("key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// Upsert 更新或创建键值
func (r *GormKVRepository) Upsert(key, value string) (*models.StoreEntry, error) {
	entry, err := r.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		entry = &models.StoreEntry{
			Key:   key,
			Value: value,
		}
		if err := r.db.Create(entry).Error; err != nil {
			return nil, err
		}
		return entry, nil
	}

	entry.Value = value
	if err := r.db.Save(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete 删除键值
func (r *GormKVRepository) Delete(key string) error {
	return r.db.Where("key = ?", key).Delete(&models.StoreEntry{}).Error
}
