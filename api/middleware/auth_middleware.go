package middleware

import (
	"net/http"
	"strings"

	"github.com/anoixa/photo-frame/api/common"
	"github.com/anoixa/photo-frame/internal/auth"
	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey      = "user_id"
	ContextUserNameKey    = "user_name"
	ContextGoogleTokenKey = "google_token"
)

// BearerAuth 解析访问令牌并装载会话
// 会话中保存的 Google 访问令牌注入请求上下文，供编排层调用远端 API
func BearerAuth(jwtService *auth.JWTService, sessions *auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.RespondError(c, http.StatusUnauthorized, "No Authorization request header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.RespondError(c, http.StatusBadRequest, "Authorization field format error")
			c.Abort()
			return
		}

		claims, err := jwtService.ParseToken(parts[1])
		if err != nil {
			common.RespondError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			common.RespondError(c, http.StatusUnauthorized, "user_id not found in token claims")
			c.Abort()
			return
		}

		session, err := sessions.Load(c.Request.Context(), userID)
		if err != nil {
			common.RespondError(c, http.StatusUnauthorized, "session expired, please log in again")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextUserNameKey, session.Name)
		c.Set(ContextGoogleTokenKey, session.AccessToken)

		c.Next()
	}
}

// UserID 从上下文取出当前用户标识
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserIDKey)
}

// GoogleToken 从上下文取出当前用户的 Google 访问令牌
func GoogleToken(c *gin.Context) string {
	return c.GetString(ContextGoogleTokenKey)
}
