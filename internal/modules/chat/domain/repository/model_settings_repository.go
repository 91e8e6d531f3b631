package repository

import (
	"context"

	"FitBuddy/internal/modules/chat/domain/entity"
)

type ModelSettingsRepository interface {
	// Get 按 (modelId, userId) 读取；无记录返回 gorm.ErrRecordNotFound
	Get(ctx context.Context, modelID, userID string) (*entity.ModelSettings, error)
	// Upsert 按 (modelId, userId) 创建或覆盖
	Upsert(ctx context.Context, settings *entity.ModelSettings) error
}
