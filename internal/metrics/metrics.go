package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency distribution",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "method"})
	RequestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"path", "method", "status"})
	Inflight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "http_inflight_requests",
		Help: "In-flight HTTP requests",
	})

	CustomerOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "customer_ops_total",
		Help: "Customer record operations by kind and result",
	}, []string{"op", "result"})

	DBUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_up",
		Help: "Database connectivity (1=up,0=down)",
	})
	RedisUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "redis_up",
		Help: "Redis connectivity (1=up,0=down)",
	})
	KafkaUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kafka_up",
		Help: "Kafka connectivity (1=up,0=down)",
	})
	EtcdUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "etcd_up",
		Help: "Etcd connectivity (1=up,0=down)",
	})
	DependencyCheckDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dependency_check_duration_seconds",
		Help:    "Latency of dependency health checks",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.2, 0.4, 0.8, 1},
	}, []string{"dep"})

	AuditKafkaEnqueue = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_kafka_enqueue_total",
		Help: "Audit events enqueued to the async sender (result=ok|dropped)",
	}, []string{"result"})
	AuditKafkaQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "audit_kafka_queue_depth",
		Help: "Pending audit events in the async sender queue",
	})
	AuditKafkaErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "audit_kafka_errors_total",
		Help: "Audit events that failed the batched write",
	})
	AuditKafkaBatchFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_kafka_batch_flush_total",
		Help: "Audit batch flushes by trigger (size|timeout|shutdown)",
	}, []string{"reason"})
	AuditKafkaBatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "audit_kafka_batch_size",
		Help:    "Number of audit events per flushed batch",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
	})
	AuditKafkaSendDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "audit_kafka_send_duration_seconds",
		Help:    "Latency of audit batch writes to Kafka",
		Buckets: prometheus.DefBuckets,
	})
)
