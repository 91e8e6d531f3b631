package persistence

import (
	"context"

	"FitBuddy/internal/modules/chat/domain/entity"
	chatRepository "FitBuddy/internal/modules/chat/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type modelSettingsRepositoryImpl struct {
	db *gorm.DB
}

func NewModelSettingsRepository(db *gorm.DB) chatRepository.ModelSettingsRepository {
	return &modelSettingsRepositoryImpl{db: db}
}

func (r *modelSettingsRepositoryImpl) Get(ctx context.Context, modelID, userID string) (*entity.ModelSettings, error) {
	var settings entity.ModelSettings
	err := r.db.WithContext(ctx).
		Where("model_id = ? AND user_id = ?", modelID, userID).
		First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *modelSettingsRepositoryImpl) Upsert(ctx context.Context, settings *entity.ModelSettings) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "model_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"system_prompt", "use_rag", "temperature", "updated_at"}),
	}).Create(settings).Error
}
