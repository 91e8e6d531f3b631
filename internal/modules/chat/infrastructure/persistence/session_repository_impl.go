package persistence

import (
	"context"
	"time"

	"FitBuddy/internal/modules/chat/domain/entity"
	chatRepository "FitBuddy/internal/modules/chat/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sessionRepositoryImpl struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) chatRepository.SessionRepository {
	return &sessionRepositoryImpl{db: db}
}

func (r *sessionRepositoryImpl) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	var session entity.Session
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepositoryImpl) Create(ctx context.Context, session *entity.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepositoryImpl) UpdateTitle(ctx context.Context, id string, title string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Session{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"title": title, "updated_at": time.Now()}).Error
}

func (r *sessionRepositoryImpl) Touch(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.Session{}).
		Where("id = ?", id).
		Update("updated_at", at).Error
}

func (r *sessionRepositoryImpl) ListActive(ctx context.Context, userID string) ([]chatRepository.SessionSummary, error) {
	var sessions []entity.Session
	query := r.db.WithContext(ctx).Order("updated_at DESC")
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}

	out := make([]chatRepository.SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&entity.Message{}).
			Where("session_id = ?", s.Id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			continue
		}
		out = append(out, chatRepository.SessionSummary{Session: s, MessageCount: count})
	}
	return out, nil
}

func (r *sessionRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&entity.Message{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Session{}).Error
	})
}

func (r *sessionRepositoryImpl) AttachOwner(ctx context.Context, session *entity.Session) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "title", "updated_at"}),
	}).Create(session).Error
}
