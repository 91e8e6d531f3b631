package back

import (
	"FitBuddy/pkg/xerr"
	"net/http"

	"github.com/gin-gonic/gin"
)

// 前端约定：成功时直接返回业务对象，失败时返回 {"error": "..."} 并带非 2xx 状态码。

// OK 成功返回
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Fail 错误返回
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// Result 统一返回入口：err 为 CodeError 时按其状态码返回
func Result(c *gin.Context, data interface{}, err error) {
	if err == nil {
		OK(c, data)
		return
	}

	if e, ok := err.(*xerr.CodeError); ok {
		Fail(c, e.Code, e.Message)
		return
	}

	Fail(c, xerr.InternalServerError, xerr.ErrServerError.Message)
}
