package observability

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"time"

	"go-customerapi/internal/mq/kafka"

	"github.com/gin-gonic/gin"
)

var skipAuditPaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
	"/metrics": {},
}

var sensitiveKeys = []string{"password", "passwd", "pwd", "new_password", "old_password", "token", "authorization"}

// AuditLog 把每个客户操作请求打包成审计事件，异步送 Kafka。
// 请求体/响应体截断并脱敏后随事件落库（消费端负责持久化）。
func AuditLog(s *kafka.AuditAsyncSender) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawPath := c.Request.URL.Path
		if _, ok := skipAuditPaths[rawPath]; ok {
			c.Next()
			return
		}
		start := time.Now()
		var bodyBytes []byte
		if c.Request.Body != nil {
			b, _ := io.ReadAll(io.LimitReader(c.Request.Body, 4096))
			bodyBytes = b
			c.Request.Body = io.NopCloser(bytes.NewBuffer(b))
		}
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = rawPath
		}
		e := map[string]interface{}{
			"action_name": deriveActionName(path, c.Request.Method),
			"customer_id": customerIDOf(c, bodyBytes),
			"path":        path,
			"method":      c.Request.Method,
			"status":      c.Writer.Status(),
			"latency_ms":  time.Since(start).Milliseconds(),
			"ip":          c.ClientIP(),
			"user_id":     c.GetInt64("user_id"),
			"time":        time.Now().Format(time.RFC3339),
			"body":        sanitizeJSON(bodyBytes),
			"query":       truncateString(c.Request.URL.RawQuery, 512),
		}
		if len(c.Errors) > 0 {
			errs := make([]string, 0, len(c.Errors))
			for _, er := range c.Errors {
				errs = append(errs, er.Error())
			}
			e["errors"] = errs
		}
		b, _ := json.Marshal(e)
		headers := map[string]string{}
		if traceID, ok := c.Get(TraceIDKey); ok {
			if s2, ok2 := traceID.(string); ok2 {
				headers["trace_id"] = s2
			}
		}
		s.Enqueue(kafka.AsyncMessage{Ctx: c.Request.Context(), Value: b, Headers: headers, EnqueueAt: time.Now()})
	}
}

// customerIDOf 从 query 或 JSON body 提取客户 id（若有）
func customerIDOf(c *gin.Context, body []byte) string {
	if id := c.Query("id"); id != "" {
		return id
	}
	if len(body) == 0 {
		return ""
	}
	var m map[string]interface{}
	if json.Unmarshal(body, &m) != nil {
		return ""
	}
	if v, ok := m["id"].(string); ok {
		return v
	}
	return ""
}

func sanitizeJSON(src []byte) string {
	if len(src) == 0 {
		return ""
	}
	if len(src) > 4096 {
		src = src[:4096]
	}
	var m interface{}
	if json.Unmarshal(src, &m) != nil {
		return string(src)
	}
	sanitizeValue(&m)
	b, err := json.Marshal(m)
	if err != nil {
		return string(src)
	}
	return string(b)
}

func sanitizeValue(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k, vv := range val {
			lower := strings.ToLower(k)
			masked := false
			for _, s := range sensitiveKeys {
				if lower == s {
					val[k] = "***"
					masked = true
					break
				}
			}
			if !masked {
				sanitizeValue(&vv)
				val[k] = vv
			}
		}
	case []interface{}:
		for i, elem := range val {
			sanitizeValue(&elem)
			val[i] = elem
		}
	}
}

func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func deriveActionName(path, method string) string {
	p := strings.Trim(path, "/")
	if p == "" {
		return method
	}
	p = strings.ReplaceAll(p, "/", "_")
	return strings.ToLower(method + "_" + p)
}
