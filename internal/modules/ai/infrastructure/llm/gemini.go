package llm

import (
	"context"
	"errors"
	"sync"

	"FitBuddy/internal/config"
	"FitBuddy/pkg/xerr"

	"google.golang.org/genai"
)

// GeminiClient 托管多轮生成式后端。该后端不接受一等公民的 system 角色：
// system 内容折叠进最后一个用户回合，历史消息角色重映射为 user/model。
type GeminiClient struct {
	apiKey string
	model  string

	initOnce sync.Once
	client   *genai.Client
	initErr  error
}

func NewGeminiClient(conf config.GeminiConfig) *GeminiClient {
	return &GeminiClient{
		apiKey: conf.APIKey,
		model:  conf.Model,
	}
}

func (c *GeminiClient) ensureClient(ctx context.Context) (*genai.Client, error) {
	if c.apiKey == "" {
		return nil, xerr.NewProviderError(xerr.ProviderNotConfigured, "Gemini", nil)
	}
	c.initOnce.Do(func() {
		c.client, c.initErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  c.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
	if c.initErr != nil {
		return nil, xerr.NewProviderError(xerr.ProviderTransport, "Gemini", c.initErr)
	}
	return c.client, nil
}

// Chat 调用生成式后端。messages 里的 system 消息被剥离，
// 其内容前置到最后一个用户回合的文本里。
func (c *GeminiClient) Chat(ctx context.Context, messages []Message, temperature float64) (string, error) {
	client, err := c.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	systemContent := ""
	var turns []Message
	for _, msg := range messages {
		if msg.Role == "system" {
			systemContent = msg.Content
			continue
		}
		turns = append(turns, msg)
	}
	if len(turns) == 0 {
		return "", xerr.NewProviderError(xerr.ProviderTransport, "Gemini", errors.New("no user turns"))
	}

	last := turns[len(turns)-1]
	prompt := last.Content
	if systemContent != "" {
		prompt = systemContent + "\n\n" + prompt
	}

	contents := make([]*genai.Content, 0, len(turns))
	for _, msg := range turns[:len(turns)-1] {
		var role genai.Role = genai.RoleModel
		if msg.Role == "user" {
			role = genai.RoleUser
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}
	contents = append(contents, genai.NewContentFromText(prompt, genai.RoleUser))

	resp, err := client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(temperature)),
		MaxOutputTokens: 1024,
	})
	if err != nil {
		return "", c.mapError(err)
	}

	text := resp.Text()
	if text == "" {
		return "", xerr.NewProviderError(xerr.ProviderTransport, "Gemini", errors.New("empty completion"))
	}
	return StripReasoning(text), nil
}

func (c *GeminiClient) mapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			return xerr.NewProviderError(xerr.ProviderAuthRejected, "Gemini", err)
		case 429:
			return xerr.NewProviderError(xerr.ProviderRateLimited, "Gemini", err)
		}
	}
	return xerr.NewProviderError(xerr.ProviderTransport, "Gemini", err)
}
