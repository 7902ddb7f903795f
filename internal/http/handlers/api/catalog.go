package api

import (
	"github.com/stockpilot/internal/http/response"
	"github.com/stockpilot/internal/models"
	"github.com/stockpilot/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest 创建/更新商品请求
type ProductRequest struct {
	Name        string       `json:"name" binding:"required"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
	BasePrice   models.Money `json:"basePrice"`
	Image       string       `json:"image"`
	Remarks     string       `json:"remarks"`
	AlertLimit  int          `json:"alertLimit"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		BasePrice:   r.BasePrice,
		Image:       r.Image,
		Remarks:     r.Remarks,
		AlertLimit:  r.AlertLimit,
	}
}

// SubProductRequest 创建/更新规格请求
type SubProductRequest struct {
	SKU         string        `json:"sku"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Color       string        `json:"color"`
	Price       *models.Money `json:"price"`
	Quantity    int           `json:"quantity"`
	Weight      string        `json:"weight"`
	Dimensions  string        `json:"dimensions"`
	Image       string        `json:"image"`
	Remarks     string        `json:"remarks"`
}

func (r SubProductRequest) toInput() service.SubProductInput {
	return service.SubProductInput{
		SKU:         r.SKU,
		Name:        r.Name,
		Description: r.Description,
		Color:       r.Color,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Weight:      r.Weight,
		Dimensions:  r.Dimensions,
		Image:       r.Image,
		Remarks:     r.Remarks,
	}
}

// ReplaceCatalogRequest 整体替换目录请求
type ReplaceCatalogRequest struct {
	Products        []models.Product `json:"products"`
	DeliberateClear bool             `json:"deliberateClear"`
}

// changePayload 统一输出变更后的预警与落盘状态。
func changePayload(res *service.ChangeResult) gin.H {
	payload := gin.H{
		"alerts": res.Alerts,
		"saved":  res.Saved,
	}
	if res.SaveErr != nil {
		payload["saveError"] = res.SaveErr.Error()
	}
	return payload
}

// GetCatalog 查询完整商品目录
func (h *Handler) GetCatalog(c *gin.Context) {
	response.Success(c, gin.H{
		"products":    h.CatalogService.Snapshot(),
		"alerts":      h.CatalogService.Alerts(),
		"bootSource":  h.CatalogService.BootSource(),
		"lastSavedAt": h.CatalogService.LastSavedAt(),
	})
}

// ReplaceCatalog 整体替换商品目录
func (h *Handler) ReplaceCatalog(c *gin.Context) {
	var req ReplaceCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不正确", err)
		return
	}
	res, err := h.CatalogService.ReplaceCatalog(req.Products, req.DeliberateClear)
	if err != nil {
		respondServiceError(c, err, "目录替换失败")
		return
	}
	response.Success(c, changePayload(res))
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不正确", err)
		return
	}
	product, res, err := h.CatalogService.CreateProduct(req.toInput())
	if err != nil {
		respondServiceError(c, err, "商品创建失败")
		return
	}
	payload := changePayload(res)
	payload["product"] = product
	response.Success(c, payload)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不正确", err)
		return
	}
	product, res, err := h.CatalogService.UpdateProduct(c.Param("id"), req.toInput())
	if err != nil {
		respondServiceError(c, err, "商品更新失败")
		return
	}
	payload := changePayload(res)
	payload["product"] = product
	response.Success(c, payload)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	res, err := h.CatalogService.DeleteProduct(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "商品删除失败")
		return
	}
	response.Success(c, changePayload(res))
}

// AddSubProduct 新增商品规格
func (h *Handler) AddSubProduct(c *gin.Context) {
	var req SubProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不正确", err)
		return
	}
	sub, res, err := h.CatalogService.AddSubProduct(c.Param("id"), req.toInput())
	if err != nil {
		respondServiceError(c, err, "规格创建失败")
		return
	}
	payload := changePayload(res)
	payload["subProduct"] = sub
	response.Success(c, payload)
}

// UpdateSubProduct 更新商品规格
func (h *Handler) UpdateSubProduct(c *gin.Context) {
	var req SubProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不正确", err)
		return
	}
	sub, res, err := h.CatalogService.UpdateSubProduct(c.Param("id"), c.Param("sub_id"), req.toInput())
	if err != nil {
		respondServiceError(c, err, "规格更新失败")
		return
	}
	payload := changePayload(res)
	payload["subProduct"] = sub
	response.Success(c, payload)
}

// DeleteSubProduct 删除商品规格
func (h *Handler) DeleteSubProduct(c *gin.Context) {
	res, err := h.CatalogService.DeleteSubProduct(c.Param("id"), c.Param("sub_id"))
	if err != nil {
		respondServiceError(c, err, "规格删除失败")
		return
	}
	response.Success(c, changePayload(res))
}

// GetAlerts 查询当前低库存预警
func (h *Handler) GetAlerts(c *gin.Context) {
	response.Success(c, gin.H{"alerts": h.CatalogService.Alerts()})
}
