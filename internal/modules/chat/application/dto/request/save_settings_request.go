package request

// SaveSettingsRequest 保存按 (modelId, userId) 作用域的模型配置。
// 指针字段区分"未提交（保持默认）"和"显式提交的值"；
// 显式提交空串 systemPrompt 表示明确不要人设。
type SaveSettingsRequest struct {
	ModelId      string   `json:"modelId" binding:"required"`
	SystemPrompt *string  `json:"systemPrompt"`
	UseRAG       *bool    `json:"useRAG"`
	Temperature  *float64 `json:"temperature"`
}
