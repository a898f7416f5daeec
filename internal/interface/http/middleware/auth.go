package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/jwt"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 用户由外部系统管理,这里只校验外部签发的Bearer Token
// 2. 未开启认证时RequireAuth直接放行
// 3. 校验通过后把用户ID注入Context
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	enabled    bool
}

// NewAuthMiddleware 创建认证中间件
// jwtManager为nil等同于关闭认证
func NewAuthMiddleware(jwtManager *jwt.Manager, enabled bool) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		enabled:    enabled && jwtManager != nil,
	}
}

// RequireAuth 要求登录(用于写接口)
// 使用方式：
//
//	books.POST("", authMiddleware.RequireAuth(), bookHandler.CreateBook)
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		// 1. 从Header提取Token
		// 格式：Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		// 2. 解析Token格式
		tokenString, ok := bearerToken(authHeader)
		if !ok {
			response.ErrorWithCode(c, apperrors.ErrCodeInvalidToken, "Token格式错误")
			c.Abort()
			return
		}

		// 3. 验证Token并解析Claims
		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.Error(c, err) // 自动处理ErrTokenExpired、ErrInvalidToken
			c.Abort()
			return
		}

		// 4. 将用户信息注入到Context
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// GetUserID 从Context获取当前登录用户ID
// 使用示例：
//
//	userID := middleware.GetUserID(c)
//	if userID == 0 {
//	    // 未登录或未开启认证
//	}
func GetUserID(c *gin.Context) uint {
	if userID, exists := c.Get("user_id"); exists {
		if uid, ok := userID.(uint); ok {
			return uid
		}
	}
	return 0
}
