package service

import (
	"testing"
	"time"

	"github.com/stockpilot/internal/models"
)

func TestDeriveAlertsBoundary(t *testing.T) {
	now := time.Now()
	products := []models.Product{
		{
			ID:         "p1",
			Name:       "帆布托特包",
			AlertLimit: 10,
			SubProducts: []models.SubProduct{
				{ID: "s1", SKU: "TOTE-BLK", Name: "黑色", Quantity: 10},
				{ID: "s2", SKU: "TOTE-BEI", Name: "米色", Quantity: 11},
			},
		},
	}

	alerts := DeriveAlerts(products, now)
	if len(alerts) != 1 {
		t.Fatalf("quantity equal to limit should alert, want 1 alert got %d", len(alerts))
	}
	if alerts[0].ID != "p1-s1" {
		t.Fatalf("alert id want p1-s1 got %s", alerts[0].ID)
	}
	if alerts[0].SKU != "TOTE-BLK" {
		t.Fatalf("alert sku want TOTE-BLK got %s", alerts[0].SKU)
	}
	if alerts[0].CurrentQuantity != 10 || alerts[0].Limit != 10 {
		t.Fatalf("alert quantity/limit mismatch: %+v", alerts[0])
	}
	if !alerts[0].Timestamp.Equal(now) {
		t.Fatalf("alert timestamp should use given time")
	}
}

func TestDeriveAlertsStableOrder(t *testing.T) {
	products := []models.Product{
		{
			ID:         "p1",
			Name:       "马克杯",
			AlertLimit: 5,
			SubProducts: []models.SubProduct{
				{ID: "s1", SKU: "MUG-WHT", Quantity: 0},
				{ID: "s2", SKU: "MUG-BLK", Quantity: 3},
			},
		},
		{
			ID:         "p2",
			Name:       "笔记本",
			AlertLimit: 5,
			SubProducts: []models.SubProduct{
				{ID: "s3", SKU: "NB-A5", Quantity: 1},
			},
		},
	}

	alerts := DeriveAlerts(products, time.Now())
	if len(alerts) != 3 {
		t.Fatalf("want 3 alerts got %d", len(alerts))
	}
	wantOrder := []string{"p1-s1", "p1-s2", "p2-s3"}
	for i, want := range wantOrder {
		if alerts[i].ID != want {
			t.Fatalf("alert order mismatch at %d: want %s got %s", i, want, alerts[i].ID)
		}
	}
}

func TestDeriveAlertsNameFallsBackToParent(t *testing.T) {
	products := []models.Product{
		{
			ID:         "p1",
			Name:       "陶瓷马克杯",
			AlertLimit: 10,
			SubProducts: []models.SubProduct{
				{ID: "s1", SKU: "MUG-WHT", Quantity: 2},
			},
		},
	}

	alerts := DeriveAlerts(products, time.Now())
	if len(alerts) != 1 {
		t.Fatalf("want 1 alert got %d", len(alerts))
	}
	if alerts[0].Name != "陶瓷马克杯" {
		t.Fatalf("unnamed variant should inherit product name, got %s", alerts[0].Name)
	}
}

func TestDeriveAlertsEmptyCatalog(t *testing.T) {
	alerts := DeriveAlerts(nil, time.Now())
	if alerts == nil || len(alerts) != 0 {
		t.Fatalf("empty catalog should return empty non-nil slice, got %v", alerts)
	}
}
