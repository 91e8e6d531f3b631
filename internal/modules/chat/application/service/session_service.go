package service

import (
	"context"
	"errors"
	"time"

	"FitBuddy/internal/modules/chat/application/dto/request"
	"FitBuddy/internal/modules/chat/application/dto/respond"
	"FitBuddy/internal/modules/chat/domain/entity"
	chatRepository "FitBuddy/internal/modules/chat/domain/repository"
	"FitBuddy/pkg/xerr"
	"FitBuddy/pkg/zlog"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// migrationNamespace 迁移消息的确定性 id 命名空间：同一条本地消息
// 重复迁移会算出同一个 id，配合跳过冲突的批量插入实现幂等
var migrationNamespace = uuid.MustParse("9a4f2b7e-33d1-4c8a-9f6e-0c5d8e7a1b42")

type SessionService interface {
	// History 按时间升序返回会话消息
	History(ctx context.Context, sessionID string) ([]respond.MessageItem, error)
	ClearHistory(ctx context.Context, sessionID string) error
	List(ctx context.Context, userID string) ([]respond.SessionItem, error)
	Rename(ctx context.Context, req request.RenameSessionRequest) (*respond.SessionItem, error)
	Delete(ctx context.Context, id string) error
	// Migrate 把游客会话挂到用户名下。已有归属的会话直接跳过（幂等），
	// 返回迁移的消息数
	Migrate(ctx context.Context, userID string, req request.MigrateSessionRequest) (int, error)
	// DeleteMessage 删除一条消息；删除 user 消息时连带删除紧随其后的
	// assistant 回复（成对删除），返回实际删除的消息 id
	DeleteMessage(ctx context.Context, id string) ([]string, error)
}

type sessionServiceImpl struct {
	sessionRepo chatRepository.SessionRepository
	messageRepo chatRepository.MessageRepository
}

func NewSessionService(sessionRepo chatRepository.SessionRepository, messageRepo chatRepository.MessageRepository) SessionService {
	return &sessionServiceImpl{
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
	}
}

func (s *sessionServiceImpl) History(ctx context.Context, sessionID string) ([]respond.MessageItem, error) {
	if sessionID == "" {
		return nil, xerr.New(xerr.BadRequest, "Session ID required")
	}
	msgs, err := s.messageRepo.ListBySession(ctx, sessionID)
	if err != nil {
		zlog.Error("failed to fetch history", zap.String("sessionId", sessionID), zap.Error(err))
		return nil, xerr.ErrServerError
	}

	out := make([]respond.MessageItem, 0, len(msgs))
	for i := range msgs {
		out = append(out, toMessageItem(&msgs[i]))
	}
	return out, nil
}

func (s *sessionServiceImpl) ClearHistory(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return xerr.New(xerr.BadRequest, "Session ID required")
	}
	if err := s.messageRepo.DeleteBySession(ctx, sessionID); err != nil {
		zlog.Error("failed to clear history", zap.String("sessionId", sessionID), zap.Error(err))
		return xerr.ErrServerError
	}
	return nil
}

func (s *sessionServiceImpl) List(ctx context.Context, userID string) ([]respond.SessionItem, error) {
	summaries, err := s.sessionRepo.ListActive(ctx, userID)
	if err != nil {
		zlog.Error("failed to list sessions", zap.Error(err))
		return nil, xerr.ErrServerError
	}

	out := make([]respond.SessionItem, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, respond.SessionItem{
			Id:           summary.Session.Id,
			UserId:       summary.Session.UserId,
			Title:        summary.Session.Title,
			MessageCount: summary.MessageCount,
			CreatedAt:    summary.Session.CreatedAt,
			UpdatedAt:    summary.Session.UpdatedAt,
		})
	}
	return out, nil
}

func (s *sessionServiceImpl) Rename(ctx context.Context, req request.RenameSessionRequest) (*respond.SessionItem, error) {
	if err := s.sessionRepo.UpdateTitle(ctx, req.Id, req.Title); err != nil {
		zlog.Error("failed to rename session", zap.String("sessionId", req.Id), zap.Error(err))
		return nil, xerr.ErrServerError
	}
	session, err := s.sessionRepo.GetByID(ctx, req.Id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.New(xerr.NotFound, "Session not found")
		}
		return nil, xerr.ErrServerError
	}
	return &respond.SessionItem{
		Id:        session.Id,
		UserId:    session.UserId,
		Title:     session.Title,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}, nil
}

func (s *sessionServiceImpl) Delete(ctx context.Context, id string) error {
	if id == "" {
		return xerr.New(xerr.BadRequest, "ID required")
	}
	if err := s.sessionRepo.Delete(ctx, id); err != nil {
		zlog.Error("failed to delete session", zap.String("sessionId", id), zap.Error(err))
		return xerr.ErrServerError
	}
	return nil
}

func (s *sessionServiceImpl) Migrate(ctx context.Context, userID string, req request.MigrateSessionRequest) (int, error) {
	if userID == "" {
		return 0, xerr.ErrUnauthorized
	}
	if req.SessionId == "" {
		return 0, xerr.New(xerr.BadRequest, "sessionId required")
	}

	existing, err := s.sessionRepo.GetByID(ctx, req.SessionId)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		zlog.Error("session migration lookup failed", zap.String("sessionId", req.SessionId), zap.Error(err))
		return 0, xerr.ErrServerError
	}
	if existing != nil && existing.UserId != "" {
		// 已有归属，迁移是 no-op
		return 0, nil
	}

	title := req.Title
	if title == "" {
		title = "New Chat"
	}
	now := time.Now()
	session := &entity.Session{
		Id:        req.SessionId,
		UserId:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessionRepo.AttachOwner(ctx, session); err != nil {
		zlog.Error("session migration upsert failed", zap.String("sessionId", req.SessionId), zap.Error(err))
		return 0, xerr.ErrServerError
	}

	if len(req.Messages) == 0 {
		zlog.Info("session migrated", zap.String("sessionId", req.SessionId), zap.String("userId", userID))
		return 0, nil
	}

	msgs := make([]*entity.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		createdAt := now
		if m.CreatedAt != "" {
			if parsed, perr := time.Parse(time.RFC3339, m.CreatedAt); perr == nil {
				createdAt = parsed
			}
		}
		// id 由消息内容确定性派生，重放迁移不会产生重复行
		id := uuid.NewSHA1(migrationNamespace,
			[]byte(req.SessionId+"|"+m.Role+"|"+m.Content+"|"+createdAt.UTC().Format(time.RFC3339Nano))).String()
		msgs = append(msgs, &entity.Message{
			Id:        id,
			SessionId: req.SessionId,
			Role:      m.Role,
			Content:   m.Content,
			Model:     m.Model,
			CreatedAt: createdAt,
		})
	}
	if err := s.messageRepo.CreateSkipDuplicates(ctx, msgs); err != nil {
		zlog.Error("session migration message insert failed", zap.String("sessionId", req.SessionId), zap.Error(err))
		return 0, xerr.ErrServerError
	}

	zlog.Info("session migrated",
		zap.String("sessionId", req.SessionId),
		zap.String("userId", userID),
		zap.Int("messages", len(msgs)))
	return len(msgs), nil
}

func (s *sessionServiceImpl) DeleteMessage(ctx context.Context, id string) ([]string, error) {
	if id == "" {
		return nil, xerr.New(xerr.BadRequest, "Message ID required")
	}

	msg, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.New(xerr.NotFound, "Message not found")
		}
		zlog.Error("failed to load message for deletion", zap.String("id", id), zap.Error(err))
		return nil, xerr.ErrServerError
	}

	deleted := make([]string, 0, 2)

	// user 消息连带删除紧随其后的 assistant 回复；单独的 assistant 消息只删自己
	if msg.Role == "user" {
		next, nerr := s.messageRepo.FindNextAssistantAfter(ctx, msg.SessionId, msg.CreatedAt)
		if nerr != nil && !errors.Is(nerr, gorm.ErrRecordNotFound) {
			zlog.Error("failed to find paired assistant message", zap.String("id", id), zap.Error(nerr))
			return nil, xerr.ErrServerError
		}
		if next != nil {
			if derr := s.messageRepo.Delete(ctx, next.Id); derr != nil {
				zlog.Error("failed to delete paired assistant message", zap.String("id", next.Id), zap.Error(derr))
				return nil, xerr.ErrServerError
			}
			deleted = append(deleted, next.Id)
		}
	}

	if err := s.messageRepo.Delete(ctx, msg.Id); err != nil {
		zlog.Error("failed to delete message", zap.String("id", id), zap.Error(err))
		return nil, xerr.ErrServerError
	}
	deleted = append(deleted, msg.Id)
	return deleted, nil
}

func toMessageItem(m *entity.Message) respond.MessageItem {
	versions := make([]respond.MessageVersionItem, 0, len(m.Versions))
	for _, v := range m.Versions {
		versions = append(versions, respond.MessageVersionItem{
			Content:   v.Content,
			Model:     v.Model,
			CreatedAt: v.CreatedAt,
		})
	}
	return respond.MessageItem{
		Id:        m.Id,
		SessionId: m.SessionId,
		Role:      m.Role,
		Content:   m.Content,
		Model:     m.Model,
		Source:    m.Source,
		Intent:    m.Intent,
		Versions:  versions,
		CreatedAt: m.CreatedAt,
	}
}
