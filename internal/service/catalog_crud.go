package service

import (
	"strings"

	"github.com/stockpilot/internal/constants"
	"github.com/stockpilot/internal/models"
)

// ProductInput 创建/更新商品输入
type ProductInput struct {
	Name        string
	Category    string
	Description string
	BasePrice   models.Money
	Image       string
	Remarks     string
	AlertLimit  int
}

// SubProductInput 创建/更新规格输入
type SubProductInput struct {
	SKU         string
	Name        string
	Description string
	Color       string
	Price       *models.Money
	Quantity    int
	Weight      string
	Dimensions  string
	Image       string
	Remarks     string
}

// CreateProduct 创建商品
func (s *CatalogService) CreateProduct(input ProductInput) (*models.Product, *ChangeResult, error) {
	if strings.TrimSpace(input.Name) == "" || input.BasePrice.IsNegative() || input.AlertLimit < 0 {
		return nil, nil, ErrProductInvalid
	}

	product := models.Product{
		ID:          models.NewID(),
		Name:        strings.TrimSpace(input.Name),
		Category:    strings.TrimSpace(input.Category),
		Description: input.Description,
		BasePrice:   input.BasePrice,
		Image:       strings.TrimSpace(input.Image),
		Remarks:     input.Remarks,
		AlertLimit:  input.AlertLimit,
		SubProducts: []models.SubProduct{},
	}
	if product.Category == "" {
		product.Category = constants.DefaultCategory
	}
	if product.Image == "" {
		product.Image = constants.DefaultProductImage
	}

	result, err := s.Mutate(false, func(products []models.Product) ([]models.Product, error) {
		return append(products, product), nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &product, result, nil
}

// UpdateProduct 更新商品字段（不触碰规格列表）
func (s *CatalogService) UpdateProduct(id string, input ProductInput) (*models.Product, *ChangeResult, error) {
	if strings.TrimSpace(input.Name) == "" || input.BasePrice.IsNegative() || input.AlertLimit < 0 {
		return nil, nil, ErrProductInvalid
	}

	var updated models.Product
	result, err := s.Mutate(false, func(products []models.Product) ([]models.Product, error) {
		for i := range products {
			if products[i].ID != id {
				continue
			}
			products[i].Name = strings.TrimSpace(input.Name)
			products[i].Category = strings.TrimSpace(input.Category)
			products[i].Description = input.Description
			products[i].BasePrice = input.BasePrice
			products[i].Image = strings.TrimSpace(input.Image)
			products[i].Remarks = input.Remarks
			products[i].AlertLimit = input.AlertLimit
			updated = products[i]
			return products, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, nil, err
	}
	return &updated, result, nil
}

// DeleteProduct 删除商品（连同其全部规格）
func (s *CatalogService) DeleteProduct(id string) (*ChangeResult, error) {
	return s.Mutate(false, func(products []models.Product) ([]models.Product, error) {
		for i := range products {
			if products[i].ID == id {
				return append(products[:i], products[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
}

// AddSubProduct 向指定商品追加规格
func (s *CatalogService) AddSubProduct(productID string, input SubProductInput) (*models.SubProduct, *ChangeResult, error) {
	if input.Quantity < 0 {
		input.Quantity = 0
	}

	var created models.SubProduct
	result, err := s.Mutate(false, func(products []models.Product) ([]models.Product, error) {
		for i := range products {
			if products[i].ID != productID {
				continue
			}
			sub := buildSubProductFromInput(products[i], input)
			products[i].SubProducts = append(products[i].SubProducts, sub)
			created = sub
			return products, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, nil, err
	}
	return &created, result, nil
}

// UpdateSubProduct 更新规格字段
func (s *CatalogService) UpdateSubProduct(productID, subID string, input SubProductInput) (*models.SubProduct, *ChangeResult, error) {
	if input.Quantity < 0 {
		input.Quantity = 0
	}

	var updated models.SubProduct
	result, err := s.Mutate(false, func(products []models.Product) ([]models.Product, error) {
		for i := range products {
			if products[i].ID != productID {
				continue
			}
			for j := range products[i].SubProducts {
				if products[i].SubProducts[j].ID != subID {
					continue
				}
				sub := &products[i].SubProducts[j]
				sub.SKU = strings.TrimSpace(input.SKU)
				sub.Name = input.Name
				sub.Description = input.Description
				sub.Color = strings.TrimSpace(input.Color)
				if input.Price != nil && !input.Price.IsNegative() {
					sub.Price = *input.Price
				}
				sub.Quantity = input.Quantity
				sub.Weight = input.Weight
				sub.Dimensions = input.Dimensions
				sub.Image = input.Image
				sub.Remarks = input.Remarks
				updated = *sub
				return products, nil
			}
			return nil, ErrNotFound
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, nil, err
	}
	return &updated, result, nil
}

// DeleteSubProduct 删除规格
func (s *CatalogService) DeleteSubProduct(productID, subID string) (*ChangeResult, error) {
	return s.Mutate(false, func(products []models.Product) ([]models.Product, error) {
		for i := range products {
			if products[i].ID != productID {
				continue
			}
			for j := range products[i].SubProducts {
				if products[i].SubProducts[j].ID == subID {
					products[i].SubProducts = append(products[i].SubProducts[:j], products[i].SubProducts[j+1:]...)
					return products, nil
				}
			}
			return nil, ErrNotFound
		}
		return nil, ErrNotFound
	})
}

// ReplaceCatalog 整体替换目录（来自前端整页编辑提交）
// deliberateClear 标记此次空目录是用户有意清空，允许穿过写保护。
func (s *CatalogService) ReplaceCatalog(products []models.Product, deliberateClear bool) (*ChangeResult, error) {
	sanitized := models.CloneProducts(products)
	for i := range sanitized {
		for j := range sanitized[i].SubProducts {
			if sanitized[i].SubProducts[j].Quantity < 0 {
				sanitized[i].SubProducts[j].Quantity = 0
			}
		}
	}
	return s.Mutate(deliberateClear, func([]models.Product) ([]models.Product, error) {
		return sanitized, nil
	})
}

// buildSubProductFromInput 依据输入构造规格（缺省回退规则与动作路径一致）
func buildSubProductFromInput(parent models.Product, input SubProductInput) models.SubProduct {
	sub := models.SubProduct{
		ID:          models.NewID(),
		SKU:         strings.TrimSpace(input.SKU),
		Name:        input.Name,
		Description: input.Description,
		Color:       strings.TrimSpace(input.Color),
		Price:       parent.BasePrice,
		Quantity:    input.Quantity,
		Weight:      input.Weight,
		Dimensions:  input.Dimensions,
		Image:       input.Image,
		Remarks:     input.Remarks,
	}
	if input.Price != nil && !input.Price.IsNegative() {
		sub.Price = *input.Price
	}
	if sub.SKU == "" {
		sub.SKU = generatePlaceholderSKU()
	}
	if sub.Color == "" {
		sub.Color = constants.DefaultColor
	}
	return sub
}
