package api

import (
	"github.com/stockpilot/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ForceSave 跳过写保护，强制把当前目录写入持久化存储
func (h *Handler) ForceSave(c *gin.Context) {
	if err := h.CatalogService.ForceSave(); err != nil {
		respondError(c, response.CodeInternal, "强制保存失败", err)
		return
	}
	response.SuccessWithMsg(c, "保存成功", gin.H{
		"lastSavedAt": h.CatalogService.LastSavedAt(),
	})
}

// RestoreBackupRequest 备份恢复请求
type RestoreBackupRequest struct {
	Confirm bool `json:"confirm"`
}

// RestoreBackup 从安全备份键恢复目录
func (h *Handler) RestoreBackup(c *gin.Context) {
	var req RestoreBackupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	if !req.Confirm {
		respondError(c, response.CodeBadRequest, "恢复会覆盖当前全部数据，请先确认", nil)
		return
	}
	res, err := h.CatalogService.RestoreSafetyBackup()
	if err != nil {
		respondServiceError(c, err, "备份恢复失败")
		return
	}
	payload := changePayload(res)
	payload["productCount"] = len(h.CatalogService.Snapshot())
	response.SuccessWithMsg(c, "恢复成功", payload)
}

// StorageStatus 查询持久化状态
func (h *Handler) StorageStatus(c *gin.Context) {
	response.Success(c, gin.H{
		"bootSource":  h.CatalogService.BootSource(),
		"lastSavedAt": h.CatalogService.LastSavedAt(),
	})
}
