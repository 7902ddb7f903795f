package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/stockpilot/internal/constants"
	"github.com/stockpilot/internal/logger"
	"github.com/stockpilot/internal/models"
)

const (
	defaultTimeout     = 15 * time.Second
	maxResponseBodyLen = 1 << 20
)

// 协作方失败时的兜底说明
const fallbackReason = "语音助手暂时不可用，请稍后重试"

// Config 外部 AI 协作方配置
type Config struct {
	Endpoint  string // 解析服务地址
	APIKey    string // 鉴权密钥（可选）
	TimeoutMS int    // 请求超时毫秒数
}

// Client 外部 AI 指令解析客户端
// 协作方契约：输入转写文本与目录上下文摘要，输出结构化库存动作。
// 任何传输或解析失败都降级为 Unknown 动作，绝不向上抛原始错误。
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewClient 创建解析客户端
func NewClient(cfg Config) *Client {
	timeout := defaultTimeout
	if cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	return &Client{
		endpoint:   strings.TrimSpace(cfg.Endpoint),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// interpretRequest 请求载荷
type interpretRequest struct {
	Transcript string `json:"transcript"` // 语音转写文本
	Context    string `json:"context"`    // 目录上下文摘要
}

// Interpret 将转写文本解析为结构化库存动作
// 永不返回错误：失败路径统一产出携带通用原因的 Unknown 动作。
func (c *Client) Interpret(ctx context.Context, transcript, summary string) models.InventoryAction {
	if c == nil || c.endpoint == "" {
		return unknownAction("语音助手未配置")
	}
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return unknownAction("未收到有效的语音内容")
	}

	body, err := json.Marshal(interpretRequest{Transcript: transcript, Context: summary})
	if err != nil {
		logger.Warnw("assistant_marshal_failed", "error", err)
		return unknownAction(fallbackReason)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		logger.Warnw("assistant_request_build_failed", "error", err)
		return unknownAction(fallbackReason)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warnw("assistant_request_failed", "error", err)
		return unknownAction(fallbackReason)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyLen))
	if err != nil {
		logger.Warnw("assistant_read_body_failed", "error", err)
		return unknownAction(fallbackReason)
	}
	if resp.StatusCode != http.StatusOK {
		logger.Warnw("assistant_bad_status", "status", resp.StatusCode)
		return unknownAction(fallbackReason)
	}

	var action models.InventoryAction
	if err := json.Unmarshal(payload, &action); err != nil {
		logger.Warnw("assistant_unmarshal_failed", "error", err)
		return unknownAction(fallbackReason)
	}
	return normalizeAction(action)
}

// normalizeAction 校验协作方返回的动作类型
func normalizeAction(action models.InventoryAction) models.InventoryAction {
	switch action.Type {
	case constants.ActionCreateProduct, constants.ActionAddSubProduct, constants.ActionUpdateStock:
		if strings.TrimSpace(action.Reason) == "" {
			action.Reason = fmt.Sprintf("执行 %s 动作", action.Type)
		}
		return action
	case constants.ActionUnknown:
		if strings.TrimSpace(action.Reason) == "" {
			action.Reason = "未能识别该指令"
		}
		return action
	default:
		logger.Warnw("assistant_unknown_action_type", "type", action.Type)
		return unknownAction("未能识别该指令")
	}
}

func unknownAction(reason string) models.InventoryAction {
	return models.InventoryAction{
		Type:   constants.ActionUnknown,
		Reason: reason,
	}
}
