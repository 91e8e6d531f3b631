package llm

import (
	"context"

	"FitBuddy/internal/config"
)

// Router 按解析好的 Target 把补全调用分发到具体后端适配器
type Router struct {
	groq   *GroqClient
	gemini *GeminiClient
	ollama *OllamaClient
}

func NewRouter(conf *config.Config) *Router {
	return &Router{
		groq:   NewGroqClient(conf.AIConfig.Groq),
		gemini: NewGeminiClient(conf.AIConfig.Gemini),
		ollama: NewOllamaClient(conf.AIConfig.Ollama),
	}
}

func (r *Router) GetCompletion(ctx context.Context, target Target, messages []Message, temperature float64) (string, error) {
	switch target.Kind {
	case TargetGemini:
		return r.gemini.Chat(ctx, messages, temperature)
	case TargetOllama:
		return r.ollama.Chat(ctx, target.LocalModel, messages, temperature)
	default:
		return r.groq.Chat(ctx, messages, temperature)
	}
}

// Unload 非本地目标直接 no-op
func (r *Router) Unload(ctx context.Context, target Target) error {
	if target.Kind != TargetOllama {
		return nil
	}
	return r.ollama.Unload(ctx, target.LocalModel)
}

func (r *Router) ListLocalModels(ctx context.Context) ([]LocalModel, error) {
	return r.ollama.ListModels(ctx)
}
