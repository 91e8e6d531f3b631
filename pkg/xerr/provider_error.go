package xerr

import "fmt"

// ProviderErrorKind AI 后端错误分类
type ProviderErrorKind int

const (
	// ProviderNotConfigured 缺少凭证，属于部署配置问题
	ProviderNotConfigured ProviderErrorKind = iota
	// ProviderAuthRejected 远端拒绝了凭证（HTTP 401）
	ProviderAuthRejected
	// ProviderRateLimited 远端限流（HTTP 429）
	ProviderRateLimited
	// ProviderTransport 网络失败或非 2xx 响应
	ProviderTransport
)

// ProviderError AI 后端调用失败，Kind 区分"未配置/凭证被拒/限流/传输失败"
type ProviderError struct {
	Kind    ProviderErrorKind
	Backend string
	Cause   error
}

func (e *ProviderError) Error() string {
	switch e.Kind {
	case ProviderNotConfigured:
		return fmt.Sprintf("%s is not configured: set the API key in the environment or config file", e.Backend)
	case ProviderAuthRejected:
		return fmt.Sprintf("%s rejected the configured API key", e.Backend)
	case ProviderRateLimited:
		return fmt.Sprintf("%s rate limit reached, please try again later", e.Backend)
	default:
		if e.Cause != nil {
			return fmt.Sprintf("%s request failed: %v", e.Backend, e.Cause)
		}
		return fmt.Sprintf("%s request failed", e.Backend)
	}
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NewProviderError 创建 ProviderError
func NewProviderError(kind ProviderErrorKind, backend string, cause error) *ProviderError {
	return &ProviderError{Kind: kind, Backend: backend, Cause: cause}
}
