package handler

import (
	"FitBuddy/internal/modules/chat/application/dto/request"
	"FitBuddy/internal/modules/chat/application/service"
	"FitBuddy/pkg/back"
	"FitBuddy/pkg/xerr"
	"FitBuddy/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	svc service.SessionService
}

func NewSessionHandler(svc service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

func (h *SessionHandler) History(c *gin.Context) {
	sessionID := c.Query("sessionId")
	data, err := h.svc.History(c.Request.Context(), sessionID)
	back.Result(c, gin.H{"messages": data}, err)
}

func (h *SessionHandler) ClearHistory(c *gin.Context) {
	sessionID := c.Query("sessionId")
	err := h.svc.ClearHistory(c.Request.Context(), sessionID)
	back.Result(c, gin.H{"success": err == nil}, err)
}

func (h *SessionHandler) List(c *gin.Context) {
	data, err := h.svc.List(c.Request.Context(), c.GetString("uuid"))
	back.Result(c, gin.H{"sessions": data}, err)
}

func (h *SessionHandler) Rename(c *gin.Context) {
	var req request.RenameSessionRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Fail(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.Rename(c.Request.Context(), req)
	back.Result(c, data, err)
}

func (h *SessionHandler) Delete(c *gin.Context) {
	id := c.Query("id")
	err := h.svc.Delete(c.Request.Context(), id)
	back.Result(c, gin.H{"success": err == nil}, err)
}

func (h *SessionHandler) Migrate(c *gin.Context) {
	var req request.MigrateSessionRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Fail(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	migrated, err := h.svc.Migrate(c.Request.Context(), c.GetString("uuid"), req)
	back.Result(c, gin.H{"migrated": migrated}, err)
}
