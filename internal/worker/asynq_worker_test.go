package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stockpilot/internal/constants"
	"github.com/stockpilot/internal/models"
	"github.com/stockpilot/internal/provider"
	"github.com/stockpilot/internal/queue"

	"github.com/hibiken/asynq"
)

type memoryKVRepo struct {
	entries map[string]string
}

func newMemoryKVRepo() *memoryKVRepo {
	return &memoryKVRepo{entries: map[string]string{}}
}

func (r *memoryKVRepo) GetByKey(key string) (*models.StoreEntry, error) {
	value, ok := r.entries[key]
	if !ok {
		return nil, nil
	}
	return &models.StoreEntry{Key: key, Value: value}, nil
}

func (r *memoryKVRepo) Upsert(key, value string) (*models.StoreEntry, error) {
	r.entries[key] = value
	return &models.StoreEntry{Key: key, Value: value}, nil
}

func (r *memoryKVRepo) Delete(key string) error {
	delete(r.entries, key)
	return nil
}

func TestHandleLowStockNotifyRecordsTimestamp(t *testing.T) {
	kv := newMemoryKVRepo()
	consumer := NewConsumer(&provider.Container{KVRepo: kv})

	payload, err := json.Marshal(queue.LowStockNotifyPayload{
		Alerts: []models.Alert{
			{ID: "p1-s1", Name: "帆布托特包 黑色", SKU: "TOTE-BLK", CurrentQuantity: 2, Limit: 10},
		},
	})
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}

	task := asynq.NewTask(queue.TaskLowStockNotify, payload)
	if err := consumer.handleLowStockNotify(context.Background(), task); err != nil {
		t.Fatalf("handle low stock notify failed: %v", err)
	}

	entry, err := kv.GetByKey(constants.StorageKeyLastNotified)
	if err != nil {
		t.Fatalf("read last notified key failed: %v", err)
	}
	if entry == nil || entry.Value == "" {
		t.Fatalf("last notified timestamp should be recorded")
	}
}

func TestHandleLowStockNotifyEmptyPayload(t *testing.T) {
	kv := newMemoryKVRepo()
	consumer := NewConsumer(&provider.Container{KVRepo: kv})

	payload, err := json.Marshal(queue.LowStockNotifyPayload{})
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}

	task := asynq.NewTask(queue.TaskLowStockNotify, payload)
	if err := consumer.handleLowStockNotify(context.Background(), task); err != nil {
		t.Fatalf("empty payload should be ignored, got %v", err)
	}
	if entry, _ := kv.GetByKey(constants.StorageKeyLastNotified); entry != nil {
		t.Fatalf("empty payload should not record timestamp")
	}
}

func TestHandleLowStockNotifyBadPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{KVRepo: newMemoryKVRepo()})
	task := asynq.NewTask(queue.TaskLowStockNotify, []byte("{not-json"))
	if err := consumer.handleLowStockNotify(context.Background(), task); err == nil {
		t.Fatalf("invalid payload should return error")
	}
}
