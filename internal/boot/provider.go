package boot

import (
	"time"

	"go-customerapi/internal/config"
	"go-customerapi/internal/discovery/etcd"
	"go-customerapi/internal/logging"
	"go-customerapi/internal/mq/kafka"
	"go-customerapi/internal/pkg/cache"
	"go-customerapi/internal/repository/dao"
	redisrepo "go-customerapi/internal/repository/redis"
	jwtsec "go-customerapi/internal/security/jwt"
	httpSrv "go-customerapi/internal/server/http"
	"go-customerapi/internal/server/http/handler"
	"go-customerapi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"gorm.io/gorm"
)

// ProvideConfig wraps config.Load for wire with external path param
func ProvideConfig(path string) (*config.Config, error) { return config.Load(path) }

// ProvideLayeredCache 通用 LayeredCache（L1 本地 60s, L2 Redis）
func ProvideLayeredCache(r *redisrepo.Client) cache.Cache {
	l1 := cache.New(60 * time.Second)
	if r == nil {
		return cache.NewLayered(l1, nil)
	}
	return cache.NewLayered(l1, cache.NewRedisAdapter(r))
}

func NewCustomerServiceWithLayered(d *dao.CustomerDAO, lc cache.Cache, c *config.Config) *service.CustomerService {
	return service.NewCustomerServiceWithCache(d, lc,
		time.Duration(c.Cache.ListTTLSeconds)*time.Second,
		time.Duration(c.Cache.InfoTTLSeconds)*time.Second)
}

func NewAuthServiceWithPrefix(a *dao.AccountDAO, j *jwtsec.Manager, r *redisrepo.Client, c *config.Config) *service.AuthService {
	s := service.NewAuthService(a, j, r)
	s.JTIPrefix = c.Redis.JTIPrefix
	return s
}

func ProvideAuditSender(c *config.Config, p *kafka.Producer, l *logging.Logger) *kafka.AuditAsyncSender {
	if len(c.Kafka.Brokers) == 0 || c.Kafka.AuditTopic == "" {
		return nil
	}
	s := kafka.NewAuditAsyncSender(p, l, c.Kafka.QueueSize, c.Kafka.Workers, c.Kafka.MaxBatch,
		time.Duration(c.Kafka.MaxWaitMS)*time.Millisecond)
	s.Start()
	return s
}

func ProvideHandlerSet(cu *service.CustomerService, au *service.AuthService, ad *service.AuditService,
	j *jwtsec.Manager, c *config.Config, lc cache.Cache, l *logging.Logger) *handler.HandlerSet {
	return handler.NewHandlerSet(handler.Dependencies{
		Customer: cu, Auth: au, Audit: ad, JWT: j, Config: c, Cache: lc, Logger: l,
	})
}

func ProvideHealthChecker(db *gorm.DB, r *redisrepo.Client, c *config.Config, e *etcd.Client) *httpSrv.HealthChecker {
	return httpSrv.NewHealthChecker(db, r, c.Kafka.Brokers, e)
}

func ProvideRouter(h *handler.HandlerSet, l *logging.Logger, j *jwtsec.Manager, r *redisrepo.Client,
	s *kafka.AuditAsyncSender, hc *httpSrv.HealthChecker, c *config.Config) *gin.Engine {
	return httpSrv.NewRouter(httpSrv.RouterDeps{
		Handlers: h, Logger: l, JWT: j, Redis: r, JTIPrefix: c.Redis.JTIPrefix,
		AuditSender: s, Health: hc, Env: c.AppMeta.Env,
	})
}

var ProviderSet = wire.NewSet(
	ProvideConfig,
	NewLogger,
	NewPostgres,
	NewRedis,
	NewKafkaProducer,
	NewEtcd,
	NewJWTManager,
	ProvideLayeredCache,
	// DAO
	dao.NewCustomerDAO,
	dao.NewCustomerActionDAO,
	dao.NewAccountDAO,
	// Service
	NewCustomerServiceWithLayered,
	NewAuthServiceWithPrefix,
	service.NewAuditService,
	// HTTP
	ProvideAuditSender,
	ProvideHandlerSet,
	ProvideHealthChecker,
	ProvideRouter,
	ProvideApp,
)
