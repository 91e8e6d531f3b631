package handler

import (
	"FitBuddy/internal/modules/chat/application/dto/request"
	"FitBuddy/internal/modules/chat/application/dto/respond"
	"FitBuddy/internal/modules/chat/application/service"
	"FitBuddy/pkg/back"
	"FitBuddy/pkg/xerr"
	"FitBuddy/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	svc service.SettingsService
}

func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// Get 返回合并默认值后的生效配置。游客拿到固定默认值。
func (h *SettingsHandler) Get(c *gin.Context) {
	modelID := c.Query("modelId")
	if modelID == "" {
		back.Fail(c, xerr.BadRequest, "Model ID required")
		return
	}

	resolved := h.svc.Resolve(c.Request.Context(), modelID, c.GetString("uuid"))
	back.OK(c, respond.SettingsRespond{
		ModelId:      modelID,
		SystemPrompt: resolved.SystemPrompt,
		UseRAG:       resolved.UseRAG,
		Temperature:  resolved.Temperature,
	})
}

// Save 保存用户作用域配置，未认证调用返回 401
func (h *SettingsHandler) Save(c *gin.Context) {
	var req request.SaveSettingsRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Fail(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.Save(c.Request.Context(), c.GetString("uuid"), req)
	back.Result(c, data, err)
}
