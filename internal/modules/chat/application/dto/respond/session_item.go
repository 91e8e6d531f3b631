package respond

import "time"

// SessionItem 会话列表项
type SessionItem struct {
	Id           string    `json:"id"`
	UserId       string    `json:"userId,omitempty"`
	Title        string    `json:"title"`
	MessageCount int64     `json:"messageCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SettingsRespond 生效的模型配置（已合并默认值）
type SettingsRespond struct {
	ModelId      string  `json:"modelId"`
	SystemPrompt string  `json:"systemPrompt"`
	UseRAG       bool    `json:"useRAG"`
	Temperature  float64 `json:"temperature"`
}
