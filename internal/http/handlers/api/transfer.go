package api

import (
	"fmt"
	"time"

	"github.com/stockpilot/internal/http/response"
	"github.com/stockpilot/internal/service"

	"github.com/gin-gonic/gin"
)

// ExportJSON 导出完整目录的 JSON 备份文件
func (h *Handler) ExportJSON(c *gin.Context) {
	data, filename, err := service.BuildJSONBackup(h.CatalogService.Snapshot(), time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "备份导出失败", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "application/json", data)
}

// ExportCSV 导出逐规格明细的 CSV 文件
func (h *Handler) ExportCSV(c *gin.Context) {
	data, filename, err := service.BuildCSVExport(h.CatalogService.Snapshot(), time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "CSV 导出失败", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "text/csv; charset=utf-8", data)
}

// ImportCatalogRequest 导入目录请求
// Content 为用户上传的 JSON 文本，Confirm 为覆盖确认。
type ImportCatalogRequest struct {
	Content string `json:"content" binding:"required"`
	Confirm bool   `json:"confirm"`
}

// ImportCatalog 解析导入文件并整体覆盖当前目录
func (h *Handler) ImportCatalog(c *gin.Context) {
	var req ImportCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不正确", err)
		return
	}
	if !req.Confirm {
		respondError(c, response.CodeBadRequest, "导入会覆盖当前全部数据，请先确认", nil)
		return
	}
	products, err := service.ParseCatalogImport([]byte(req.Content))
	if err != nil {
		respondServiceError(c, err, "导入解析失败")
		return
	}
	res := h.CatalogService.RestoreImported(products)
	payload := changePayload(res)
	payload["productCount"] = len(products)
	response.Success(c, payload)
}
