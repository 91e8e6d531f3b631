package handler

import (
	"errors"
	"net/http"

	"FitBuddy/internal/modules/chat/application/dto/request"
	"FitBuddy/internal/modules/chat/application/dto/respond"
	"FitBuddy/internal/modules/chat/application/service"
	"FitBuddy/pkg/back"
	"FitBuddy/pkg/xerr"
	"FitBuddy/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatSvc    service.ChatService
	sessionSvc service.SessionService
}

func NewChatHandler(chatSvc service.ChatService, sessionSvc service.SessionService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc, sessionSvc: sessionSvc}
}

// providerStatus 把 provider 层错误映射到对外状态码。
// 上游认证/传输问题不是调用方的错，归为 502；限流透传 429。
func providerStatus(err error) (int, string, bool) {
	var pe *xerr.ProviderError
	if !errors.As(err, &pe) {
		return 0, "", false
	}
	switch pe.Kind {
	case xerr.ProviderRateLimited:
		return http.StatusTooManyRequests, pe.Error(), true
	case xerr.ProviderNotConfigured:
		return http.StatusInternalServerError, pe.Error(), true
	default:
		return http.StatusBadGateway, pe.Error(), true
	}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req request.ChatRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Fail(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	resp, err := h.chatSvc.Chat(c.Request.Context(), c.GetString("uuid"), req)
	if err != nil {
		if status, msg, ok := providerStatus(err); ok {
			back.Fail(c, status, msg)
			return
		}
	}
	back.Result(c, resp, err)
}

// FollowUps 永远返回 200，失败退化为空列表
func (h *ChatHandler) FollowUps(c *gin.Context) {
	var req request.FollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.OK(c, respond.FollowUpRespond{FollowUps: []string{}})
		return
	}
	back.OK(c, respond.FollowUpRespond{FollowUps: h.chatSvc.FollowUps(c.Request.Context(), req)})
}

// DeleteMessage 删除消息；user 消息成对带走其 assistant 回复
func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		var body struct {
			Id string `json:"id"`
		}
		if err := c.BindJSON(&body); err == nil {
			id = body.Id
		}
	}

	deleted, err := h.sessionSvc.DeleteMessage(c.Request.Context(), id)
	back.Result(c, gin.H{"deleted": deleted}, err)
}

// Suggestions 从语料库抽取开场建议，语料缺失时返回空列表
func (h *ChatHandler) Suggestions(c *gin.Context) {
	back.OK(c, gin.H{"suggestions": h.chatSvc.Suggestions(4)})
}
