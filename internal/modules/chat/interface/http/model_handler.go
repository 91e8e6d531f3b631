package handler

import (
	"context"
	"time"

	"FitBuddy/internal/modules/ai/infrastructure/llm"
	"FitBuddy/internal/modules/chat/application/dto/request"
	"FitBuddy/internal/modules/chat/application/service"
	"FitBuddy/pkg/back"
	"FitBuddy/pkg/xerr"
	"FitBuddy/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ModelHandler struct {
	svc service.ChatService
}

func NewModelHandler(svc service.ChatService) *ModelHandler {
	return &ModelHandler{svc: svc}
}

// Tags 列出本地后端已安装的模型。本地后端不可达时返回空列表，
// 前端据此只展示托管模型。
func (h *ModelHandler) Tags(c *gin.Context) {
	models, err := h.svc.ListLocalModels(c.Request.Context())
	if err != nil {
		zlog.Warn("local model listing failed", zap.Error(err))
		back.OK(c, gin.H{"models": []llm.LocalModel{}})
		return
	}
	back.OK(c, gin.H{"models": models})
}

// Unload 请求本地后端卸载模型。fire-and-forget：卸载在独立 goroutine
// 里带自己的超时执行，从不阻塞或影响响应。
func (h *ModelHandler) Unload(c *gin.Context) {
	var req request.UnloadModelRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Fail(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	go func(model string) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.svc.Unload(ctx, model); err != nil {
			zlog.Warn("model unload failed", zap.String("model", model), zap.Error(err))
		}
	}(req.Model)

	back.OK(c, gin.H{"success": true})
}
