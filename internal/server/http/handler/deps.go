package handler

import (
	"go-customerapi/internal/config"
	"go-customerapi/internal/logging"
	"go-customerapi/internal/pkg/cache"
	"go-customerapi/internal/security/jwt"
	"go-customerapi/internal/service"
)

// Dependencies handler 层依赖集合
type Dependencies struct {
	Customer *service.CustomerService
	Auth     *service.AuthService
	Audit    *service.AuditService
	JWT      *jwt.Manager
	Config   *config.Config
	Cache    cache.Cache
	Logger   *logging.Logger
}

// HandlerSet 聚合业务 handler，供 router 使用
type HandlerSet struct {
	Customer *CustomerHandler
	Auth     *AuthHandler
	Audit    *AuditHandler
	Cache    *CacheHandler
}

func NewHandlerSet(d Dependencies) *HandlerSet {
	return &HandlerSet{
		Customer: NewCustomerHandler(d),
		Auth:     NewAuthHandler(d),
		Audit:    NewAuditHandler(d),
		Cache:    NewCacheHandler(d),
	}
}
