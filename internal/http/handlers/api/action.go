package api

import (
	"github.com/stockpilot/internal/http/response"
	"github.com/stockpilot/internal/models"

	"github.com/gin-gonic/gin"
)

// ApplyAction 执行一条结构化库存动作
func (h *Handler) ApplyAction(c *gin.Context) {
	var action models.InventoryAction
	if err := c.ShouldBindJSON(&action); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不正确", err)
		return
	}
	outcome, res := h.CatalogService.ApplyAction(action)
	payload := gin.H{"outcome": outcome}
	if res != nil {
		payload = changePayload(res)
		payload["outcome"] = outcome
	}
	response.Success(c, payload)
}
