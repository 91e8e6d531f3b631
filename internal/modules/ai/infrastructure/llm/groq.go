package llm

import (
	"context"
	"errors"

	"FitBuddy/internal/config"
	"FitBuddy/pkg/xerr"

	openai "github.com/sashabaranov/go-openai"
)

// GroqClient 托管低延迟推理后端，走 OpenAI 兼容接口
type GroqClient struct {
	client *openai.Client
	model  string
	hasKey bool
}

// NewGroqClient 创建 Groq 客户端。凭证缺失不在这里报错，
// 调用时区分"未配置"与远端的 401/429。
func NewGroqClient(conf config.GroqConfig) *GroqClient {
	clientConfig := openai.DefaultConfig(conf.APIKey)
	if conf.BaseURL != "" {
		clientConfig.BaseURL = conf.BaseURL
	}

	return &GroqClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  conf.Model,
		hasKey: conf.APIKey != "",
	}
}

// Chat 发送完整消息列表（含单条前置 system 消息）
func (c *GroqClient) Chat(ctx context.Context, messages []Message, temperature float64) (string, error) {
	if !c.hasKey {
		return "", xerr.NewProviderError(xerr.ProviderNotConfigured, "Groq", nil)
	}

	openaiMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		openaiMessages = append(openaiMessages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    openaiMessages,
		Temperature: float32(temperature),
	})
	if err != nil {
		return "", c.mapError(err)
	}

	if len(resp.Choices) == 0 {
		return "", xerr.NewProviderError(xerr.ProviderTransport, "Groq", errors.New("empty completion"))
	}
	return StripReasoning(resp.Choices[0].Message.Content), nil
}

// mapError 把远端错误映射成可区分的错误类别：401 凭证被拒、429 限流、其余按传输失败
func (c *GroqClient) mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 401:
			return xerr.NewProviderError(xerr.ProviderAuthRejected, "Groq", err)
		case 429:
			return xerr.NewProviderError(xerr.ProviderRateLimited, "Groq", err)
		}
	}
	return xerr.NewProviderError(xerr.ProviderTransport, "Groq", err)
}
