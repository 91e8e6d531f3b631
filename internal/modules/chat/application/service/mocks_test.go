package service

import (
	"context"
	"time"

	"FitBuddy/internal/modules/ai/infrastructure/llm"
	"FitBuddy/internal/modules/chat/domain/entity"
	chatRepository "FitBuddy/internal/modules/chat/domain/repository"

	"github.com/stretchr/testify/mock"
)

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*entity.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepo) UpdateTitle(ctx context.Context, id string, title string) error {
	return m.Called(ctx, id, title).Error(0)
}

func (m *mockSessionRepo) Touch(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *mockSessionRepo) ListActive(ctx context.Context, userID string) ([]chatRepository.SessionSummary, error) {
	args := m.Called(ctx, userID)
	if s := args.Get(0); s != nil {
		return s.([]chatRepository.SessionSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSessionRepo) AttachOwner(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}

type mockMessageRepo struct {
	mock.Mock
}

func (m *mockMessageRepo) GetByID(ctx context.Context, id string) (*entity.Message, error) {
	args := m.Called(ctx, id)
	if msg := args.Get(0); msg != nil {
		return msg.(*entity.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	return m.Called(ctx, message).Error(0)
}

func (m *mockMessageRepo) Update(ctx context.Context, message *entity.Message) error {
	return m.Called(ctx, message).Error(0)
}

func (m *mockMessageRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMessageRepo) ListBySession(ctx context.Context, sessionID string) ([]entity.Message, error) {
	args := m.Called(ctx, sessionID)
	if msgs := args.Get(0); msgs != nil {
		return msgs.([]entity.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMessageRepo) DeleteBySession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *mockMessageRepo) FindRecentDuplicate(ctx context.Context, sessionID, role, content string, since time.Time) (*entity.Message, error) {
	args := m.Called(ctx, sessionID, role, content, since)
	if msg := args.Get(0); msg != nil {
		return msg.(*entity.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMessageRepo) FindNextAssistantAfter(ctx context.Context, sessionID string, after time.Time) (*entity.Message, error) {
	args := m.Called(ctx, sessionID, after)
	if msg := args.Get(0); msg != nil {
		return msg.(*entity.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMessageRepo) CreateSkipDuplicates(ctx context.Context, messages []*entity.Message) error {
	return m.Called(ctx, messages).Error(0)
}

type mockSettingsRepo struct {
	mock.Mock
}

func (m *mockSettingsRepo) Get(ctx context.Context, modelID, userID string) (*entity.ModelSettings, error) {
	args := m.Called(ctx, modelID, userID)
	if s := args.Get(0); s != nil {
		return s.(*entity.ModelSettings), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSettingsRepo) Upsert(ctx context.Context, settings *entity.ModelSettings) error {
	return m.Called(ctx, settings).Error(0)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) GetCompletion(ctx context.Context, target llm.Target, messages []llm.Message, temperature float64) (string, error) {
	args := m.Called(ctx, target, messages, temperature)
	return args.String(0), args.Error(1)
}

func (m *mockProvider) Unload(ctx context.Context, target llm.Target) error {
	return m.Called(ctx, target).Error(0)
}

func (m *mockProvider) ListLocalModels(ctx context.Context) ([]llm.LocalModel, error) {
	args := m.Called(ctx)
	if models := args.Get(0); models != nil {
		return models.([]llm.LocalModel), args.Error(1)
	}
	return nil, args.Error(1)
}
