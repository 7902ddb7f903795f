package api

import (
	"errors"

	"github.com/stockpilot/internal/http/response"
	"github.com/stockpilot/internal/logger"
	"github.com/stockpilot/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requestLog 提供携带 request_id 的日志实例。
func requestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// respondError 返回错误响应，并在有原始错误时记录日志。
func respondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		requestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// respondServiceError 按业务错误类型映射错误响应。
func respondServiceError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "记录不存在", nil)
	case errors.Is(err, service.ErrProductInvalid):
		respondError(c, response.CodeBadRequest, "商品数据不合法", nil)
	case errors.Is(err, service.ErrImportFormat):
		respondError(c, response.CodeBadRequest, "导入文件格式不正确", nil)
	case errors.Is(err, service.ErrBackupMissing):
		respondError(c, response.CodeNotFound, "未找到备份数据", nil)
	case errors.Is(err, service.ErrBackupCorrupt):
		respondError(c, response.CodeInternal, "备份数据已损坏", err)
	case errors.Is(err, service.ErrSaveGuarded):
		respondError(c, response.CodeBadRequest, "已阻止可疑的清空写入，如确需清空请显式确认", nil)
	default:
		respondError(c, response.CodeInternal, fallbackMsg, err)
	}
}
