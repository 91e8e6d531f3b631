package llm

import "strings"

// TargetKind 后端种类，封闭枚举
type TargetKind int

const (
	// TargetGroq 托管低延迟推理后端（默认分支）
	TargetGroq TargetKind = iota
	// TargetGemini 托管多轮生成式后端
	TargetGemini
	// TargetOllama 本地推理服务
	TargetOllama
)

// Target 在边界处从模型标识字符串解析一次，编排层不再做字符串判断
type Target struct {
	Kind TargetKind
	// Raw 原始模型标识，用于设置作用域与日志
	Raw string
	// LocalModel 本地后端的模型名，仅 TargetOllama 有效
	LocalModel string
}

const ollamaPrefix = "Ollama:"

// ParseTarget 解析模型标识："Gemini" 精确匹配生成式后端，
// "Ollama: <name>" 前缀匹配本地后端，其余走默认托管后端。
func ParseTarget(model string) Target {
	if model == "Gemini" {
		return Target{Kind: TargetGemini, Raw: model}
	}
	if strings.HasPrefix(model, ollamaPrefix) {
		name := strings.TrimSpace(strings.TrimPrefix(model, ollamaPrefix))
		return Target{Kind: TargetOllama, Raw: model, LocalModel: name}
	}
	return Target{Kind: TargetGroq, Raw: model}
}

// BackendName 用户可见的后端名，用于错误信息
func (t Target) BackendName() string {
	switch t.Kind {
	case TargetGemini:
		return "Gemini"
	case TargetOllama:
		return "Ollama"
	default:
		return "Groq"
	}
}
