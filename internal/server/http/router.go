package http

import (
	"net/http"

	"go-customerapi/internal/logging"
	"go-customerapi/internal/mq/kafka"
	redisrepo "go-customerapi/internal/repository/redis"
	"go-customerapi/internal/security/jwt"
	"go-customerapi/internal/server/http/handler"
	"go-customerapi/internal/server/http/middleware"
	"go-customerapi/internal/server/http/middleware/observability"
	"go-customerapi/internal/server/http/middleware/security"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	Handlers    *handler.HandlerSet
	Logger      *logging.Logger
	JWT         *jwt.Manager
	Redis       *redisrepo.Client
	JTIPrefix   string
	AuditSender *kafka.AuditAsyncSender
	Health      *HealthChecker
	Env         string
}

func NewRouter(d RouterDeps) *gin.Engine {
	if d.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(observability.TraceMiddleware())
	r.Use(observability.LoggerContextMiddleware(d.Logger))
	r.Use(middleware.ResponseWrapper())
	r.Use(observability.Metrics())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/readyz", func(c *gin.Context) {
		ok, deps := d.Health.Readiness(c.Request.Context())
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"ready": ok, "deps": deps})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	login := r.Group("/admin/Login")
	{
		login.POST("/index", d.Handlers.Auth.Login)
		login.POST("/refresh", d.Handlers.Auth.Refresh)
	}

	admin := r.Group("/admin")
	admin.Use(security.Auth(d.JWT, d.Logger, d.Redis, d.JTIPrefix))
	if d.AuditSender != nil {
		admin.Use(observability.AuditLog(d.AuditSender))
	}
	{
		admin.GET("/Login/logout", d.Handlers.Auth.Logout)
		admin.GET("/Login/getInfo", d.Handlers.Auth.Info)
		admin.POST("/Login/changePassword", d.Handlers.Auth.ChangePassword)

		admin.GET("/Customer/index", d.Handlers.Customer.Index)
		admin.GET("/Customer/getInfo", d.Handlers.Customer.GetInfo)
		admin.POST("/Customer/add", d.Handlers.Customer.Add)
		admin.POST("/Customer/edit", d.Handlers.Customer.Edit)
		admin.GET("/Customer/del", d.Handlers.Customer.Delete)

		admin.GET("/Log/index", d.Handlers.Audit.Index)
		admin.GET("/Log/del", d.Handlers.Audit.Delete)

		admin.GET("/Cache/metrics", d.Handlers.Cache.Metrics)
		admin.GET("/Cache/reset", d.Handlers.Cache.Reset)
	}

	return r
}
