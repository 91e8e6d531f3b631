package request

// FollowUpRequest 基于最后一条 assistant 回答生成追问建议
type FollowUpRequest struct {
	Messages []ChatMessage `json:"messages" binding:"required"`
	Model    string        `json:"model" binding:"required"`
}
