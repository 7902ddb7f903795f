package api

import (
	"time"

	"github.com/stockpilot/internal/cache"
	"github.com/stockpilot/internal/http/response"
	"github.com/stockpilot/internal/logger"

	"github.com/gin-gonic/gin"
)

const currencyCacheKey = "setting:currency"
const currencyCacheTTL = 10 * time.Minute

// CurrencyRequest 更新货币符号请求
type CurrencyRequest struct {
	Currency string `json:"currency" binding:"required"`
}

// GetCurrency 查询货币符号
func (h *Handler) GetCurrency(c *gin.Context) {
	var cached string
	if hit, err := cache.GetJSON(c.Request.Context(), currencyCacheKey, &cached); err == nil && hit {
		response.Success(c, gin.H{"currency": cached})
		return
	}

	currency, err := h.CatalogService.Currency()
	if err != nil {
		respondError(c, response.CodeInternal, "货币符号读取失败", err)
		return
	}
	if err := cache.SetJSON(c.Request.Context(), currencyCacheKey, currency, currencyCacheTTL); err != nil {
		logger.Warnw("currency_cache_set_failed", "error", err)
	}
	response.Success(c, gin.H{"currency": currency})
}

// UpdateCurrency 更新货币符号
func (h *Handler) UpdateCurrency(c *gin.Context) {
	var req CurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不正确", err)
		return
	}
	if err := h.CatalogService.SetCurrency(req.Currency); err != nil {
		respondError(c, response.CodeInternal, "货币符号保存失败", err)
		return
	}
	if err := cache.Del(c.Request.Context(), currencyCacheKey); err != nil {
		logger.Warnw("currency_cache_del_failed", "error", err)
	}
	currency, err := h.CatalogService.Currency()
	if err != nil {
		respondError(c, response.CodeInternal, "货币符号读取失败", err)
		return
	}
	response.Success(c, gin.H{"currency": currency})
}
