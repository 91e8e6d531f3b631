package service

import (
	"context"
	"errors"
	"testing"

	"FitBuddy/internal/modules/chat/application/dto/request"
	"FitBuddy/internal/modules/chat/domain/entity"
	"FitBuddy/pkg/xerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string     { return &s }
func boolPtr(b bool) *bool        { return &b }
func floatPtr(f float64) *float64 { return &f }

func TestResolveGuestGetsDefaults(t *testing.T) {
	repo := new(mockSettingsRepo)
	svc := NewSettingsService(repo)

	resolved := svc.Resolve(context.Background(), "llama-3.3-70b-versatile", "")
	assert.Equal(t, DefaultSystemPrompt, resolved.SystemPrompt)
	assert.True(t, resolved.UseRAG)
	assert.Equal(t, DefaultTemperature, resolved.Temperature)
	// 游客不触发存储读取
	repo.AssertNotCalled(t, "Get")
}

func TestResolveFinetuneModelDisablesRetrieval(t *testing.T) {
	svc := NewSettingsService(new(mockSettingsRepo))

	resolved := svc.Resolve(context.Background(), "Ollama: fitbuddy-Finetune-v2", "")
	assert.False(t, resolved.UseRAG)
}

func TestResolveMissingRowFallsBackToDefaults(t *testing.T) {
	repo := new(mockSettingsRepo)
	repo.On("Get", mock.Anything, "modelA", "user1").Return(nil, gorm.ErrRecordNotFound)
	svc := NewSettingsService(repo)

	resolved := svc.Resolve(context.Background(), "modelA", "user1")
	assert.Equal(t, DefaultSystemPrompt, resolved.SystemPrompt)
	assert.True(t, resolved.UseRAG)
}

func TestResolveOverlaysStoredFields(t *testing.T) {
	repo := new(mockSettingsRepo)
	repo.On("Get", mock.Anything, "modelA", "user1").Return(&entity.ModelSettings{
		ModelId:     "modelA",
		UserId:      "user1",
		Temperature: floatPtr(0.2),
	}, nil)
	svc := NewSettingsService(repo)

	resolved := svc.Resolve(context.Background(), "modelA", "user1")
	// 未设置的列保持默认，设置过的列覆盖
	assert.Equal(t, DefaultSystemPrompt, resolved.SystemPrompt)
	assert.True(t, resolved.UseRAG)
	assert.Equal(t, 0.2, resolved.Temperature)
}

func TestResolveExplicitEmptyPersona(t *testing.T) {
	repo := new(mockSettingsRepo)
	repo.On("Get", mock.Anything, "modelA", "user1").Return(&entity.ModelSettings{
		ModelId:      "modelA",
		UserId:       "user1",
		SystemPrompt: strPtr(""),
	}, nil)
	svc := NewSettingsService(repo)

	// 显式空串人设不同于"未设置"，不回落默认
	assert.Empty(t, svc.Resolve(context.Background(), "modelA", "user1").SystemPrompt)
}

func TestResolveReadFailureDegradesToDefaults(t *testing.T) {
	repo := new(mockSettingsRepo)
	repo.On("Get", mock.Anything, "modelA", "user1").Return(nil, errors.New("connection refused"))
	svc := NewSettingsService(repo)

	resolved := svc.Resolve(context.Background(), "modelA", "user1")
	assert.Equal(t, DefaultSystemPrompt, resolved.SystemPrompt)
}

func TestSaveRejectsGuest(t *testing.T) {
	repo := new(mockSettingsRepo)
	svc := NewSettingsService(repo)

	_, err := svc.Save(context.Background(), "", request.SaveSettingsRequest{ModelId: "modelA"})
	require.Error(t, err)
	assert.Equal(t, xerr.ErrUnauthorized, err)
	// 绝不降级为游客作用域写入
	repo.AssertNotCalled(t, "Upsert")
}

func TestSaveUpsertsAndReturnsResolved(t *testing.T) {
	repo := new(mockSettingsRepo)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(s *entity.ModelSettings) bool {
		return s.ModelId == "modelA" && s.UserId == "user1" &&
			s.UseRAG != nil && !*s.UseRAG
	})).Return(nil)
	repo.On("Get", mock.Anything, "modelA", "user1").Return(&entity.ModelSettings{
		ModelId: "modelA",
		UserId:  "user1",
		UseRAG:  boolPtr(false),
	}, nil)
	svc := NewSettingsService(repo)

	resp, err := svc.Save(context.Background(), "user1", request.SaveSettingsRequest{
		ModelId: "modelA",
		UseRAG:  boolPtr(false),
	})
	require.NoError(t, err)
	assert.False(t, resp.UseRAG)
	assert.Equal(t, DefaultTemperature, resp.Temperature)
	repo.AssertExpectations(t)
}
