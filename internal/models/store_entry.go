package models

import "time"

// StoreEntry 键值存储表（目录及其备份的持久化载体，值为 JSON 文本）
type StoreEntry struct {
	Key       string    `gorm:"primarykey" json:"key"`  // 存储键
	Value     string    `gorm:"type:text" json:"value"` // JSON 编码文本
	UpdatedAt time.Time `json:"updated_at"`             // 最近写入时间
}

// TableName 指定表名
func (StoreEntry) TableName() string {
	return "store_entries"
}
