package request

// ChatMessage 请求里的一条对话消息
type ChatMessage struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// ChatRequest 发送/再生成一条消息
type ChatRequest struct {
	Messages  []ChatMessage `json:"messages" binding:"required"`
	Model     string        `json:"model" binding:"required"`
	SessionId string        `json:"sessionId"`
	// RegenerateId 非空表示就地再生成：替换该 assistant 消息的内容，
	// 旧内容进入版本历史
	RegenerateId string `json:"regenerateId"`
}
