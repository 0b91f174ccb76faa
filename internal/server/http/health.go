package http

import (
	"context"
	"net"
	"sync"
	"time"

	"go-customerapi/internal/discovery/etcd"
	"go-customerapi/internal/metrics"
	redisrepo "go-customerapi/internal/repository/redis"

	"gorm.io/gorm"
)

// HealthChecker 依赖健康探测; Readiness 结果缓存 checkInterval, 避免探针打挂依赖
type HealthChecker struct {
	DB           *gorm.DB
	Redis        *redisrepo.Client
	KafkaBrokers []string
	Etcd         *etcd.Client

	mu       sync.Mutex
	lastAt   time.Time
	lastOK   bool
	lastDeps map[string]bool

	checkInterval time.Duration
	checkTimeout  time.Duration
}

func NewHealthChecker(db *gorm.DB, r *redisrepo.Client, brokers []string, e *etcd.Client) *HealthChecker {
	return &HealthChecker{
		DB: db, Redis: r, KafkaBrokers: brokers, Etcd: e,
		checkInterval: 5 * time.Second,
		checkTimeout:  2 * time.Second,
	}
}

// Liveness 进程活着即 OK
func (h *HealthChecker) Liveness() bool { return true }

// Readiness 并发探测各依赖; db 必须可用, 其余降级为告警位
func (h *HealthChecker) Readiness(ctx context.Context) (bool, map[string]bool) {
	h.mu.Lock()
	if time.Since(h.lastAt) < h.checkInterval && h.lastDeps != nil {
		ok, deps := h.lastOK, h.lastDeps
		h.mu.Unlock()
		return ok, deps
	}
	h.mu.Unlock()

	deps := map[string]bool{}
	var wg sync.WaitGroup
	var dm sync.Mutex
	probe := func(name string, gauge func(float64), fn func(context.Context) bool) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, h.checkTimeout)
			defer cancel()
			start := time.Now()
			ok := fn(cctx)
			metrics.DependencyCheckDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
			if ok {
				gauge(1)
			} else {
				gauge(0)
			}
			dm.Lock()
			deps[name] = ok
			dm.Unlock()
		}()
	}

	probe("db", metrics.DBUp.Set, h.checkDB)
	if h.Redis != nil {
		probe("redis", metrics.RedisUp.Set, func(c context.Context) bool { return h.Redis.Ping(c) == nil })
	}
	if len(h.KafkaBrokers) > 0 {
		probe("kafka", metrics.KafkaUp.Set, h.checkKafka)
	}
	if h.Etcd != nil {
		probe("etcd", metrics.EtcdUp.Set, h.checkEtcd)
	}
	wg.Wait()

	ready := deps["db"]
	h.mu.Lock()
	h.lastAt, h.lastOK, h.lastDeps = time.Now(), ready, deps
	h.mu.Unlock()
	return ready, deps
}

func (h *HealthChecker) checkDB(ctx context.Context) bool {
	if h.DB == nil {
		return false
	}
	sqlDB, err := h.DB.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(ctx) == nil
}

// kafka 没有 ping 协议, 探 TCP 即可
func (h *HealthChecker) checkKafka(ctx context.Context) bool {
	var d net.Dialer
	for _, b := range h.KafkaBrokers {
		conn, err := d.DialContext(ctx, "tcp", b)
		if err == nil {
			_ = conn.Close()
			return true
		}
	}
	return false
}

func (h *HealthChecker) checkEtcd(ctx context.Context) bool {
	for _, ep := range h.Etcd.Endpoints() {
		if _, err := h.Etcd.Status(ctx, ep); err == nil {
			return true
		}
	}
	return false
}
