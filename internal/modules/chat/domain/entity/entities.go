package entity

import "time"

// Session 一次对话。UserId 为空串表示游客会话尚未被认领（迁移前仅存在于客户端）。
type Session struct {
	Id        string    `gorm:"column:id;type:char(36);primaryKey"`
	UserId    string    `gorm:"column:user_id;type:char(36);index:idx_chat_session_user"`
	Title     string    `gorm:"column:title;type:varchar(120);not null;default:''"`
	CreatedAt time.Time `gorm:"column:created_at;type:datetime;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:datetime;not null"`
}

func (Session) TableName() string { return "chat_session" }

// MessageVersion 被再生成取代的一个历史版本
type MessageVersion struct {
	Content   string    `json:"content"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"createdAt"`
}

// Message 会话内的一条消息。Versions 是只追加的被取代内容日志：
// 活跃的 Content/Model 永远是最新版本，len(Versions)+1 等于该消息槽被产出的次数。
type Message struct {
	Id        string           `gorm:"column:id;type:char(36);primaryKey"`
	SessionId string           `gorm:"column:session_id;type:char(36);not null;index:idx_chat_message_session"`
	Role      string           `gorm:"column:role;type:varchar(16);not null"`
	Content   string           `gorm:"column:content;type:mediumtext"`
	Model     string           `gorm:"column:model;type:varchar(64)"`
	Source    string           `gorm:"column:source;type:varchar(16)"` // "rule-based" / "ai"
	Intent    string           `gorm:"column:intent;type:varchar(32)"`
	Versions  []MessageVersion `gorm:"column:versions;type:json;serializer:json"`
	CreatedAt time.Time        `gorm:"column:created_at;type:datetime;not null;index:idx_chat_message_created"`
}

func (Message) TableName() string { return "chat_message" }

// ModelSettings 按 (modelId, userId) 作用域保存的模型配置。
// 三个配置列都可空：NULL 表示未覆盖（用默认值），
// 非 NULL 空串的 system_prompt 表示"显式无人设"，与未设置不同。
type ModelSettings struct {
	Id           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ModelId      string    `gorm:"column:model_id;type:varchar(64);not null;uniqueIndex:uniq_model_settings_scope"`
	UserId       string    `gorm:"column:user_id;type:char(36);not null;uniqueIndex:uniq_model_settings_scope"`
	SystemPrompt *string   `gorm:"column:system_prompt;type:text"`
	UseRAG       *bool     `gorm:"column:use_rag"`
	Temperature  *float64  `gorm:"column:temperature"`
	CreatedAt    time.Time `gorm:"column:created_at;type:datetime;not null"`
	UpdatedAt    time.Time `gorm:"column:updated_at;type:datetime;not null"`
}

func (ModelSettings) TableName() string { return "model_settings" }
