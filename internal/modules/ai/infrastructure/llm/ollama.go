package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"FitBuddy/internal/config"
	"FitBuddy/pkg/xerr"
)

// OllamaClient 本地推理服务，明文 HTTP，消息列表原样下发（含 system 消息）
type OllamaClient struct {
	baseURL    string
	numPredict int
	client     *http.Client
}

func NewOllamaClient(conf config.OllamaConfig) *OllamaClient {
	timeout := 300 * time.Second
	if conf.TimeoutSeconds > 0 {
		timeout = time.Duration(conf.TimeoutSeconds) * time.Second
	}

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
	}

	return &OllamaClient{
		baseURL:    conf.BaseURL,
		numPredict: conf.NumPredict,
		client:     client,
	}
}

type ollamaChatRequest struct {
	Model    string        `json:"model"`
	Messages []Message     `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	NumPredict  int     `json:"num_predict"`
	Temperature float64 `json:"temperature"`
}

type ollamaChatResponse struct {
	Message Message `json:"message"`
	Done    bool    `json:"done"`
}

// Chat 非流式补全调用；非 2xx 状态按传输失败处理并带上后端名
func (c *OllamaClient) Chat(ctx context.Context, model string, messages []Message, temperature float64) (string, error) {
	reqBody := ollamaChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
		Options: ollamaOptions{
			NumPredict:  c.numPredict,
			Temperature: temperature,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", xerr.NewProviderError(xerr.ProviderTransport, "Ollama", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", xerr.NewProviderError(xerr.ProviderTransport, "Ollama", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", xerr.NewProviderError(xerr.ProviderTransport, "Ollama", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", xerr.NewProviderError(xerr.ProviderTransport, "Ollama",
			fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	var chatResp ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", xerr.NewProviderError(xerr.ProviderTransport, "Ollama", err)
	}

	return StripReasoning(chatResp.Message.Content), nil
}

// Unload 发送 keep_alive: 0 让本地后端立刻逐出模型
func (c *OllamaClient) Unload(ctx context.Context, model string) error {
	body, err := json.Marshal(map[string]interface{}{
		"model":      model,
		"keep_alive": 0,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unload status %d", resp.StatusCode)
	}
	return nil
}

// LocalModel 本地后端已安装的一个模型
type LocalModel struct {
	Name       string `json:"name"`
	Size       int64  `json:"size,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty"`
}

type ollamaTagsResponse struct {
	Models []LocalModel `json:"models"`
}

// ListModels 代理本地后端的 /api/tags
func (c *OllamaClient) ListModels(ctx context.Context) ([]LocalModel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tags status %d", resp.StatusCode)
	}

	var tags ollamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, err
	}
	return tags.Models, nil
}
