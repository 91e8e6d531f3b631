package respond

import "time"

// MessageVersionItem 消息的一个历史版本
type MessageVersionItem struct {
	Content   string    `json:"content"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"createdAt"`
}

// MessageItem 持久化后的消息，回传服务端分配的 id/时间戳
type MessageItem struct {
	Id        string               `json:"id"`
	SessionId string               `json:"sessionId"`
	Role      string               `json:"role"`
	Content   string               `json:"content"`
	Model     string               `json:"model,omitempty"`
	Source    string               `json:"source,omitempty"`
	Intent    string               `json:"intent,omitempty"`
	Versions  []MessageVersionItem `json:"versions,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
}

// ChatRespond 一次聊天回合的结果
type ChatRespond struct {
	Response          string       `json:"response"`
	Title             string       `json:"title,omitempty"`
	RegeneratedId     string       `json:"regeneratedId,omitempty"`
	MessageObject     *MessageItem `json:"messageObject,omitempty"`
	UserMessageObject *MessageItem `json:"userMessageObject,omitempty"`
}

// FollowUpRespond 追问建议，最多 3 条，失败时为空列表
type FollowUpRespond struct {
	FollowUps []string `json:"followUps"`
}
