package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"FitBuddy/internal/modules/chat/application/dto/request"
	"FitBuddy/internal/modules/chat/application/dto/respond"
	"FitBuddy/internal/modules/chat/domain/entity"
	chatRepository "FitBuddy/internal/modules/chat/domain/repository"
	"FitBuddy/pkg/xerr"
	"FitBuddy/pkg/zlog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 游客与无覆盖用户的固定默认配置
const (
	DefaultSystemPrompt = "You are a helpful assistant."
	DefaultTemperature  = 0.7
)

// ResolvedSettings 合并默认值后的生效配置
type ResolvedSettings struct {
	SystemPrompt string
	UseRAG       bool
	Temperature  float64
}

// SettingsService 按 (modelId, userId) 解析与保存模型配置
type SettingsService interface {
	// Resolve 读取生效配置。读失败降级为默认值，不让请求失败。
	Resolve(ctx context.Context, modelID, userID string) ResolvedSettings
	// Save 保存用户作用域的配置；未认证调用返回 Unauthorized，绝不降级为游客写入
	Save(ctx context.Context, userID string, req request.SaveSettingsRequest) (*respond.SettingsRespond, error)
}

type settingsServiceImpl struct {
	settingsRepo chatRepository.ModelSettingsRepository
}

func NewSettingsService(settingsRepo chatRepository.ModelSettingsRepository) SettingsService {
	return &settingsServiceImpl{settingsRepo: settingsRepo}
}

// defaultsFor 通用默认值，外加一条特例：模型名含 "finetune" 时检索默认关闭，
// 微调模型被认为已经编码了所需知识
func defaultsFor(modelID string) ResolvedSettings {
	useRAG := true
	if strings.Contains(strings.ToLower(modelID), "finetune") {
		useRAG = false
	}
	return ResolvedSettings{
		SystemPrompt: DefaultSystemPrompt,
		UseRAG:       useRAG,
		Temperature:  DefaultTemperature,
	}
}

func (s *settingsServiceImpl) Resolve(ctx context.Context, modelID, userID string) ResolvedSettings {
	resolved := defaultsFor(modelID)
	if userID == "" {
		return resolved
	}

	stored, err := s.settingsRepo.Get(ctx, modelID, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zlog.Error("settings lookup failed, using defaults",
				zap.String("modelId", modelID), zap.Error(err))
		}
		return resolved
	}

	// 逐字段覆盖：NULL 列表示保持默认；非 NULL 空串人设是"显式无人设"
	if stored.SystemPrompt != nil {
		resolved.SystemPrompt = *stored.SystemPrompt
	}
	if stored.UseRAG != nil {
		resolved.UseRAG = *stored.UseRAG
	}
	if stored.Temperature != nil {
		resolved.Temperature = *stored.Temperature
	}
	return resolved
}

func (s *settingsServiceImpl) Save(ctx context.Context, userID string, req request.SaveSettingsRequest) (*respond.SettingsRespond, error) {
	if userID == "" {
		return nil, xerr.ErrUnauthorized
	}

	now := time.Now()
	settings := &entity.ModelSettings{
		ModelId:      req.ModelId,
		UserId:       userID,
		SystemPrompt: req.SystemPrompt,
		UseRAG:       req.UseRAG,
		Temperature:  req.Temperature,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		zlog.Error("failed to save model settings",
			zap.String("modelId", req.ModelId), zap.String("userId", userID), zap.Error(err))
		return nil, xerr.ErrServerError
	}

	resolved := s.Resolve(ctx, req.ModelId, userID)
	return &respond.SettingsRespond{
		ModelId:      req.ModelId,
		SystemPrompt: resolved.SystemPrompt,
		UseRAG:       resolved.UseRAG,
		Temperature:  resolved.Temperature,
	}, nil
}
