package repository

import (
	"context"
	"time"

	"FitBuddy/internal/modules/chat/domain/entity"
)

type MessageRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Message, error)
	Create(ctx context.Context, message *entity.Message) error
	// Update 整行保存，用于再生成时回写 content/model/versions
	Update(ctx context.Context, message *entity.Message) error
	Delete(ctx context.Context, id string) error
	// ListBySession 按 created_at 升序返回会话内全部消息
	ListBySession(ctx context.Context, sessionID string) ([]entity.Message, error)
	DeleteBySession(ctx context.Context, sessionID string) error
	// FindRecentDuplicate 查找 since 之后同会话内相同 (role, content) 的消息，
	// 用于客户端重试导致的重复提交去重
	FindRecentDuplicate(ctx context.Context, sessionID, role, content string, since time.Time) (*entity.Message, error)
	// FindNextAssistantAfter 找该时刻之后最早的 assistant 消息，用于成对删除
	FindNextAssistantAfter(ctx context.Context, sessionID string, after time.Time) (*entity.Message, error)
	// CreateSkipDuplicates 批量插入，主键冲突的行跳过（迁移用）
	CreateSkipDuplicates(ctx context.Context, messages []*entity.Message) error
}
