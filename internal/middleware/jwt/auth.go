package jwt

import (
	"strings"

	"FitBuddy/pkg/back"
	"FitBuddy/pkg/util/myjwt"
	"FitBuddy/pkg/xerr"

	"github.com/gin-gonic/gin"
)

// Auth 强制认证：没有有效令牌直接 401
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c)
		if !ok {
			back.Fail(c, xerr.Unauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}

		c.Set("uuid", claims.Uuid)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// OptionalAuth 可选认证：有效令牌注入用户身份，否则以游客身份放行。
// 游客路径上 uuid 为空串，后续逻辑以此区分。
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c); ok {
			c.Set("uuid", claims.Uuid)
			c.Set("username", claims.Username)
		}
		c.Next()
	}
}

func parseBearer(c *gin.Context) (*myjwt.CustomClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, false
	}
	claims, err := myjwt.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return nil, false
	}
	return claims, true
}
