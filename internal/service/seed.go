package service

import (
	"github.com/stockpilot/internal/models"

	"github.com/shopspring/decimal"
)

// DemoCatalog 演示种子目录
// 仅在持久化存储完全为空时装入内存，用户首次变更前不会落盘。
func DemoCatalog() []models.Product {
	return []models.Product{
		{
			ID:          models.NewID(),
			Name:        "经典帆布托特包",
			Category:    "箱包",
			Description: "日常通勤帆布托特包，演示数据",
			BasePrice:   models.NewMoneyFromDecimal(decimal.NewFromInt(129)),
			Image:       "/images/demo/tote.png",
			AlertLimit:  5,
			SubProducts: []models.SubProduct{
				{
					ID:       models.NewID(),
					SKU:      "TOTE-BLK",
					Color:    "黑色",
					Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(129)),
					Quantity: 24,
				},
				{
					ID:       models.NewID(),
					SKU:      "TOTE-BEI",
					Color:    "米色",
					Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(139)),
					Quantity: 3,
				},
			},
		},
		{
			ID:          models.NewID(),
			Name:        "陶瓷马克杯",
			Category:    "家居",
			Description: "350ml 陶瓷马克杯，演示数据",
			BasePrice:   models.NewMoneyFromDecimal(decimal.NewFromInt(39)),
			Image:       "/images/demo/mug.png",
			AlertLimit:  10,
			SubProducts: []models.SubProduct{
				{
					ID:       models.NewID(),
					SKU:      "MUG-WHT",
					Color:    "白色",
					Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(39)),
					Quantity: 60,
				},
			},
		},
	}
}
