package security

import (
	"context"
	"strings"

	"go-customerapi/internal/logging"
	redisrepo "go-customerapi/internal/repository/redis"
	"go-customerapi/internal/security/jwt"
	"go-customerapi/internal/util/retcode"
	"go-customerapi/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	JWT    *jwt.Manager
	Logger *logging.Logger
	Redis  *redisrepo.Client
	Prefix string
}

// Auth Bearer token 认证; redis 非空时校验 JTI 白名单（登出即失效）
func Auth(j *jwt.Manager, lg *logging.Logger, r *redisrepo.Client, prefix string) gin.HandlerFunc {
	m := &AuthMiddleware{JWT: j, Logger: lg, Redis: r, Prefix: prefix}
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			response.Error(c, retcode.AUTH_ERROR, "missing token")
			c.Abort()
			return
		}
		token := strings.TrimSpace(auth[7:])
		claims, err := m.JWT.Parse(token)
		if err != nil {
			response.Error(c, retcode.AUTH_ERROR, "invalid token")
			c.Abort()
			return
		}
		if m.Redis != nil {
			if val := m.Redis.Get(context.Background(), m.Prefix+claims.JTI); val == "" {
				response.Error(c, retcode.ACCESS_TOKEN_TIMEOUT, "token expired")
				c.Abort()
				return
			}
		}
		c.Set("user_id", claims.UserID)
		c.Set("jti", claims.JTI)
		c.Next()
	}
}
