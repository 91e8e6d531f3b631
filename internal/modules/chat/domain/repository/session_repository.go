package repository

import (
	"context"
	"time"

	"FitBuddy/internal/modules/chat/domain/entity"
)

// SessionSummary 会话列表项，带消息数
type SessionSummary struct {
	Session      entity.Session
	MessageCount int64
}

type SessionRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	Create(ctx context.Context, session *entity.Session) error
	UpdateTitle(ctx context.Context, id string, title string) error
	// Touch 刷新会话的 updated_at
	Touch(ctx context.Context, id string, at time.Time) error
	// ListActive 返回至少有一条消息的会话，按 updated_at 倒序
	ListActive(ctx context.Context, userID string) ([]SessionSummary, error)
	Delete(ctx context.Context, id string) error
	// AttachOwner 会话迁移的幂等 upsert：不存在则插入，存在则补上 user_id/title
	AttachOwner(ctx context.Context, session *entity.Session) error
}
