package request

// UnloadModelRequest 请求本地后端卸载模型
type UnloadModelRequest struct {
	Model string `json:"model" binding:"required"`
}
