package request

// MigratedMessage 游客端本地存储里的一条消息
type MigratedMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Model     string `json:"model"`
	CreatedAt string `json:"createdAt"` // RFC 3339，可空
}

// MigrateSessionRequest 登录后把游客会话挂到用户名下，幂等
type MigrateSessionRequest struct {
	SessionId string            `json:"sessionId" binding:"required"`
	Title     string            `json:"title"`
	Messages  []MigratedMessage `json:"messages"`
}
