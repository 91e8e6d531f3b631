package llm

import (
	"context"
	"regexp"
	"strings"
)

// Message 发往后端的一条对话消息
type Message struct {
	Role    string `json:"role"` // "system" / "user" / "assistant"
	Content string `json:"content"`
}

// Provider 统一的补全调用契约，屏蔽各后端的请求/响应差异
type Provider interface {
	// GetCompletion 按目标后端发起一次补全调用
	GetCompletion(ctx context.Context, target Target, messages []Message, temperature float64) (string, error)
	// Unload 请求本地后端卸载模型，尽力而为；非本地目标为 no-op
	Unload(ctx context.Context, target Target) error
	// ListLocalModels 列出本地后端已安装的模型
	ListLocalModels(ctx context.Context) ([]LocalModel, error)
}

var thinkPattern = regexp.MustCompile(`(?s)<think>.*?</think>`)

// StripReasoning 去掉 <think>…</think> 推理痕迹并裁剪空白。
// 部分后端会把内部思维链包在该标记里，绝不能进入用户或持久化存储。
func StripReasoning(s string) string {
	return strings.TrimSpace(thinkPattern.ReplaceAllString(s, ""))
}
