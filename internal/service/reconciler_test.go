package service

import (
	"strings"
	"testing"

	"github.com/stockpilot/internal/constants"
	"github.com/stockpilot/internal/models"
)

func reconcilerFixture() []models.Product {
	return []models.Product{
		{
			ID:         "p-chair",
			Name:       "Chair",
			Category:   "Furniture",
			AlertLimit: 5,
			SubProducts: []models.SubProduct{
				{ID: "s-c1", SKU: "C-1", Color: "Black", Quantity: 10},
				{ID: "s-c2", SKU: "C-2", Color: "Deep Black", Quantity: 4},
			},
		},
		{
			ID:         "p-lamp",
			Name:       "Lamp",
			Category:   "Lighting",
			AlertLimit: 5,
			SubProducts: []models.SubProduct{
				{ID: "s-l1", SKU: "L-1", Color: "White", Quantity: 7},
			},
		},
	}
}

func TestApplyActionCreateProductNew(t *testing.T) {
	products := reconcilerFixture()
	qty := 3
	next, outcome := ApplyAction(products, models.InventoryAction{
		Type:        constants.ActionCreateProduct,
		ProductName: "Desk",
		Data: &models.ActionData{
			SKU:      "D-1",
			Quantity: &qty,
		},
	})
	if !outcome.Applied {
		t.Fatalf("create should apply, message: %s", outcome.Message)
	}
	if len(next) != 3 {
		t.Fatalf("catalog want 3 products got %d", len(next))
	}
	created := next[2]
	if created.Name != "Desk" {
		t.Fatalf("created name want Desk got %s", created.Name)
	}
	if created.Category != constants.DefaultCategory {
		t.Fatalf("missing category should default to %s, got %s", constants.DefaultCategory, created.Category)
	}
	if created.AlertLimit != constants.DefaultAlertLimit {
		t.Fatalf("missing alert limit should default to %d, got %d", constants.DefaultAlertLimit, created.AlertLimit)
	}
	if len(created.SubProducts) != 1 {
		t.Fatalf("variant fields should create one sub product, got %d", len(created.SubProducts))
	}
	sub := created.SubProducts[0]
	if sub.SKU != "D-1" || sub.Quantity != 3 {
		t.Fatalf("sub product mismatch: %+v", sub)
	}
	if sub.Color != constants.DefaultColor {
		t.Fatalf("missing color should default to %s, got %s", constants.DefaultColor, sub.Color)
	}
	// 原目录不被修改
	if len(products) != 2 {
		t.Fatalf("input catalog must stay untouched")
	}
}

func TestApplyActionCreateProductNameOnly(t *testing.T) {
	next, outcome := ApplyAction([]models.Product{}, models.InventoryAction{
		Type:        constants.ActionCreateProduct,
		ProductName: "Lamp",
	})
	if !outcome.Applied {
		t.Fatalf("name-only create should apply, message: %s", outcome.Message)
	}
	if len(next) != 1 {
		t.Fatalf("catalog want 1 product got %d", len(next))
	}
	created := next[0]
	if created.Name != "Lamp" {
		t.Fatalf("created name want Lamp got %s", created.Name)
	}
	if created.ID == "" {
		t.Fatalf("created product must get a generated id")
	}
	if created.Category != constants.DefaultCategory || created.AlertLimit != constants.DefaultAlertLimit {
		t.Fatalf("defaults mismatch: %+v", created)
	}
	if created.SubProducts == nil || len(created.SubProducts) != 0 {
		t.Fatalf("no variant fields should create zero sub products, got %d", len(created.SubProducts))
	}
}

func TestApplyActionCreateProductTopLevelSKU(t *testing.T) {
	// 顶层 sku 与 Data 中的规格字段同样触发规格创建
	next, outcome := ApplyAction([]models.Product{}, models.InventoryAction{
		Type:        constants.ActionCreateProduct,
		ProductName: "Desk",
		SKU:         "D-9",
	})
	if !outcome.Applied {
		t.Fatalf("create with top-level sku should apply, message: %s", outcome.Message)
	}
	if len(next) != 1 || len(next[0].SubProducts) != 1 {
		t.Fatalf("top-level sku should create one sub product, got %+v", next)
	}
	if next[0].SubProducts[0].SKU != "D-9" {
		t.Fatalf("sub product sku want D-9 got %s", next[0].SubProducts[0].SKU)
	}

	// 命中已有商品时同样视为追加规格
	next, outcome = ApplyAction(reconcilerFixture(), models.InventoryAction{
		Type:        constants.ActionCreateProduct,
		ProductName: "lamp",
		SKU:         "L-2",
	})
	if !outcome.Applied {
		t.Fatalf("existing product with top-level sku should append, message: %s", outcome.Message)
	}
	if len(next) != 2 {
		t.Fatalf("no new product should be created, got %d", len(next))
	}
	subs := next[1].SubProducts
	if len(subs) != 2 || subs[1].SKU != "L-2" {
		t.Fatalf("appended variant mismatch: %+v", subs)
	}
}

func TestApplyActionCreateProductExistingAppendsVariant(t *testing.T) {
	next, outcome := ApplyAction(reconcilerFixture(), models.InventoryAction{
		Type:        constants.ActionCreateProduct,
		ProductName: "chair",
		Data:        &models.ActionData{Color: "Red"},
	})
	if !outcome.Applied {
		t.Fatalf("existing product with variant fields should append, message: %s", outcome.Message)
	}
	if len(next) != 2 {
		t.Fatalf("no new product should be created, got %d", len(next))
	}
	subs := next[0].SubProducts
	if len(subs) != 3 {
		t.Fatalf("variant should be appended, want 3 got %d", len(subs))
	}
	appended := subs[2]
	if appended.Color != "Red" {
		t.Fatalf("appended color want Red got %s", appended.Color)
	}
	if !strings.HasPrefix(appended.SKU, "SKU-") {
		t.Fatalf("missing sku should get placeholder, got %s", appended.SKU)
	}
}

func TestApplyActionCreateProductExistingNoVariantFields(t *testing.T) {
	next, outcome := ApplyAction(reconcilerFixture(), models.InventoryAction{
		Type:        constants.ActionCreateProduct,
		ProductName: "CHAIR",
	})
	if outcome.Applied {
		t.Fatalf("duplicate create without variant fields should not apply")
	}
	if len(next[0].SubProducts) != 2 {
		t.Fatalf("catalog should stay unchanged")
	}
}

func TestApplyActionAddSubProduct(t *testing.T) {
	price := models.NewMoneyFromFloat(19.9)
	qty := 6
	next, outcome := ApplyAction(reconcilerFixture(), models.InventoryAction{
		Type:        constants.ActionAddSubProduct,
		ProductName: "lamp",
		Data: &models.ActionData{
			SKU:      "L-2",
			Color:    "Black",
			Price:    &price,
			Quantity: &qty,
		},
	})
	if !outcome.Applied {
		t.Fatalf("add sub product should apply, message: %s", outcome.Message)
	}
	subs := next[1].SubProducts
	if len(subs) != 2 {
		t.Fatalf("want 2 sub products got %d", len(subs))
	}
	if subs[1].SKU != "L-2" || subs[1].Quantity != 6 {
		t.Fatalf("sub product mismatch: %+v", subs[1])
	}
}

func TestApplyActionAddSubProductMissingProduct(t *testing.T) {
	_, outcome := ApplyAction(reconcilerFixture(), models.InventoryAction{
		Type:        constants.ActionAddSubProduct,
		ProductName: "Sofa",
		Data:        &models.ActionData{SKU: "S-1"},
	})
	if outcome.Applied {
		t.Fatalf("unknown product should not apply")
	}
	if outcome.Message == "" {
		t.Fatalf("failure must carry user visible message")
	}
}

func TestApplyActionUpdateStockBySKU(t *testing.T) {
	next, outcome := ApplyAction(reconcilerFixture(), models.InventoryAction{
		Type:           constants.ActionUpdateStock,
		SKU:            "c-1",
		QuantityChange: -3,
	})
	if !outcome.Applied {
		t.Fatalf("sku match should apply, message: %s", outcome.Message)
	}
	if next[0].SubProducts[0].Quantity != 7 {
		t.Fatalf("C-1 quantity want 7 got %d", next[0].SubProducts[0].Quantity)
	}
	if next[0].SubProducts[1].Quantity != 4 {
		t.Fatalf("other variants should stay untouched")
	}
}

func TestApplyActionUpdateStockByNameAndColorFanOut(t *testing.T) {
	// 颜色包含匹配：Black 同时命中 Black 与 Deep Black
	next, outcome := ApplyAction(reconcilerFixture(), models.InventoryAction{
		Type:           constants.ActionUpdateStock,
		ProductName:    "Chair",
		Color:          "black",
		QuantityChange: 2,
	})
	if !outcome.Applied {
		t.Fatalf("name+color match should apply, message: %s", outcome.Message)
	}
	if next[0].SubProducts[0].Quantity != 12 || next[0].SubProducts[1].Quantity != 6 {
		t.Fatalf("fan-out update mismatch: %+v", next[0].SubProducts)
	}
}

func TestApplyActionUpdateStockByNameSingleVariant(t *testing.T) {
	next, outcome := ApplyAction(reconcilerFixture(), models.InventoryAction{
		Type:           constants.ActionUpdateStock,
		ProductName:    "lamp",
		QuantityChange: 5,
	})
	if !outcome.Applied {
		t.Fatalf("single-variant name match should apply, message: %s", outcome.Message)
	}
	if next[1].SubProducts[0].Quantity != 12 {
		t.Fatalf("Lamp quantity want 12 got %d", next[1].SubProducts[0].Quantity)
	}
}

func TestApplyActionUpdateStockNameAloneMultiVariantFails(t *testing.T) {
	_, outcome := ApplyAction(reconcilerFixture(), models.InventoryAction{
		Type:           constants.ActionUpdateStock,
		ProductName:    "Chair",
		QuantityChange: 1,
	})
	if outcome.Applied {
		t.Fatalf("bare name against multi-variant product should not apply")
	}
}

func TestApplyActionUpdateStockClampsAtZero(t *testing.T) {
	next, outcome := ApplyAction(reconcilerFixture(), models.InventoryAction{
		Type:           constants.ActionUpdateStock,
		SKU:            "C-2",
		QuantityChange: -100,
	})
	if !outcome.Applied {
		t.Fatalf("clamped update should still apply")
	}
	if next[0].SubProducts[1].Quantity != 0 {
		t.Fatalf("quantity should clamp at zero, got %d", next[0].SubProducts[1].Quantity)
	}
}

func TestApplyActionUpdateStockZeroChange(t *testing.T) {
	_, outcome := ApplyAction(reconcilerFixture(), models.InventoryAction{
		Type:           constants.ActionUpdateStock,
		SKU:            "C-1",
		QuantityChange: 0,
	})
	if outcome.Applied {
		t.Fatalf("zero change should not apply")
	}
}

func TestApplyActionUnknown(t *testing.T) {
	products := reconcilerFixture()
	next, outcome := ApplyAction(products, models.InventoryAction{
		Type:   constants.ActionUnknown,
		Reason: "没听清，请重试",
	})
	if outcome.Applied {
		t.Fatalf("unknown action should not apply")
	}
	if outcome.Message != "没听清，请重试" {
		t.Fatalf("unknown action should surface reason, got %s", outcome.Message)
	}
	if len(next) != len(products) {
		t.Fatalf("catalog should stay unchanged")
	}
}

func TestApplyActionUnsupportedType(t *testing.T) {
	_, outcome := ApplyAction(reconcilerFixture(), models.InventoryAction{Type: "DeleteEverything"})
	if outcome.Applied {
		t.Fatalf("unsupported type should not apply")
	}
	if outcome.Message == "" {
		t.Fatalf("unsupported type must carry message")
	}
}
