package observability

import (
	"context"

	"go-customerapi/internal/logging"

	"github.com/gin-gonic/gin"
)

// LoggerContextMiddleware 将 trace_id / user_id 注入请求 context，
// handler 侧通过 logging.Logger.WithContext 取回带字段 logger
func LoggerContextMiddleware(base *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if v, ok := c.Get(TraceIDKey); ok {
			if s, ok2 := v.(string); ok2 {
				ctx = context.WithValue(ctx, logging.TraceIDKey, s)
			}
		}
		if uid, ok := c.Get("user_id"); ok {
			if id, ok2 := uid.(int64); ok2 {
				ctx = context.WithValue(ctx, logging.UserIDKey, id)
			}
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
