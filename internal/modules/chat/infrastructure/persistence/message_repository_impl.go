package persistence

import (
	"context"
	"time"

	"FitBuddy/internal/modules/chat/domain/entity"
	chatRepository "FitBuddy/internal/modules/chat/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type messageRepositoryImpl struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) chatRepository.MessageRepository {
	return &messageRepositoryImpl{db: db}
}

func (r *messageRepositoryImpl) GetByID(ctx context.Context, id string) (*entity.Message, error) {
	var msg entity.Message
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepositoryImpl) Create(ctx context.Context, message *entity.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepositoryImpl) Update(ctx context.Context, message *entity.Message) error {
	return r.db.WithContext(ctx).Save(message).Error
}

func (r *messageRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Message{}).Error
}

func (r *messageRepositoryImpl) ListBySession(ctx context.Context, sessionID string) ([]entity.Message, error) {
	var msgs []entity.Message
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepositoryImpl) DeleteBySession(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&entity.Message{}).Error
}

func (r *messageRepositoryImpl) FindRecentDuplicate(ctx context.Context, sessionID, role, content string, since time.Time) (*entity.Message, error) {
	var msg entity.Message
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND role = ? AND content = ? AND created_at >= ?", sessionID, role, content, since).
		Order("created_at DESC").
		First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepositoryImpl) FindNextAssistantAfter(ctx context.Context, sessionID string, after time.Time) (*entity.Message, error) {
	var msg entity.Message
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND role = ? AND created_at > ?", sessionID, "assistant", after).
		Order("created_at ASC").
		First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepositoryImpl) CreateSkipDuplicates(ctx context.Context, messages []*entity.Message) error {
	if len(messages) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(messages).Error
}
