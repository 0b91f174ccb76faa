package middleware

import (
	"net/http"

	"go-customerapi/internal/util/retcode"

	"github.com/gin-gonic/gin"
)

// ResponseWrapper 兜底: handler 把 gin.H 放入 "resp" 时统一包装输出
func ResponseWrapper() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if c.IsAborted() {
			return
		}
		if v, exists := c.Get("resp"); exists {
			if body, ok := v.(gin.H); ok {
				if _, ok2 := body["code"]; !ok2 {
					body["code"] = retcode.SUCCESS
				}
				if _, ok2 := body["msg"]; !ok2 {
					body["msg"] = "success"
				}
				if _, ok2 := body["data"]; !ok2 {
					body["data"] = gin.H{}
				}
				c.JSON(http.StatusOK, body)
			}
		}
	}
}
