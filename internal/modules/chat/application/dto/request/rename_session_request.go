package request

// RenameSessionRequest 重命名会话
type RenameSessionRequest struct {
	Id    string `json:"id" binding:"required"`
	Title string `json:"title" binding:"required"`
}
