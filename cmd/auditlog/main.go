package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-customerapi/internal/config"
	"go-customerapi/internal/consumer/auditlog"
	"go-customerapi/internal/logging"
	"go-customerapi/internal/repository/postgres"

	"go.uber.org/zap"
)

// 审计日志落库消费者: 订阅 Kafka 审计 topic, 写 customer_action 表
func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "configs/config.example.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	lg, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.AuditTopic == "" {
		lg.Fatal("kafka brokers and audit_topic required for the audit consumer")
	}

	db, err := postgres.New(postgres.Config{DSN: cfg.Postgres.DSN, MaxOpen: cfg.Postgres.MaxOpen, MaxIdle: cfg.Postgres.MaxIdle})
	if err != nil {
		lg.Fatal("open postgres", zap.Error(err))
	}
	defer postgres.Close(db)
	if err := auditlog.AutoMigrate(db); err != nil {
		lg.Error("auto_migrate_failed", zap.Error(err))
	}

	c := auditlog.NewConsumer(auditlog.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.AuditTopic,
		GroupID: cfg.Kafka.AuditGroupID,
	}, db)
	defer c.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lg.Info("audit_consumer_start", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.AuditTopic))
	if err := c.Run(ctx); err != nil && ctx.Err() == nil {
		lg.Error("audit_consumer_stopped", zap.Error(err))
	}
	lg.Info("audit_consumer_exit")
}
