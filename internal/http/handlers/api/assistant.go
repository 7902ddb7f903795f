package api

import (
	"github.com/stockpilot/internal/assistant"
	"github.com/stockpilot/internal/http/response"

	"github.com/gin-gonic/gin"
)

// VoiceCommandRequest 语音指令请求
type VoiceCommandRequest struct {
	Transcript string `json:"transcript" binding:"required"`
}

// VoiceCommand 解析语音指令并执行对应的库存动作
func (h *Handler) VoiceCommand(c *gin.Context) {
	if h.Assistant == nil {
		respondError(c, response.CodeBadRequest, "语音助手未启用", nil)
		return
	}
	var req VoiceCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不正确", err)
		return
	}

	summary := assistant.BuildContextSummary(h.CatalogService.Snapshot())
	action := h.Assistant.Interpret(c.Request.Context(), req.Transcript, summary)
	outcome, res := h.CatalogService.ApplyAction(action)

	payload := gin.H{"action": action, "outcome": outcome}
	if res != nil {
		payload = changePayload(res)
		payload["action"] = action
		payload["outcome"] = outcome
	}
	response.Success(c, payload)
}
