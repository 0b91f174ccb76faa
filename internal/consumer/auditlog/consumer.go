package auditlog

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"go-customerapi/internal/domain/model"
	"go-customerapi/internal/mq/kafka"
	"go-customerapi/internal/repository/postgres"

	kafkaGo "github.com/segmentio/kafka-go"
	"gorm.io/gorm"
)

type Config struct {
	Brokers []string
	Topic   string
	GroupID string
}

type Consumer struct {
	inner *kafka.Consumer
	DB    *gorm.DB
}

// Entry 与审计中间件产出的 JSON 对齐
type Entry struct {
	ActionName string   `json:"action_name"`
	CustomerID string   `json:"customer_id"`
	Path       string   `json:"path"`
	Method     string   `json:"method"`
	Status     int      `json:"status"`
	LatencyMs  int64    `json:"latency_ms"`
	IP         string   `json:"ip"`
	UserID     int64    `json:"user_id"`
	Time       string   `json:"time"`
	Body       string   `json:"body"`
	Errors     []string `json:"errors,omitempty"`
}

func NewConsumer(cfg Config, db *gorm.DB) *Consumer {
	inner := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: cfg.Brokers,
		GroupID: cfg.GroupID,
		Topics:  []string{cfg.Topic},
	})
	return &Consumer{inner: inner, DB: db}
}

// Run 消费审计 topic 并落库; handler 错误只记日志不中断消费
func (c *Consumer) Run(ctx context.Context) error {
	return c.inner.Start(ctx, func(mctx context.Context, m kafkaGo.Message) error {
		var e Entry
		if err := json.Unmarshal(m.Value, &e); err != nil {
			log.Printf("auditlog consumer unmarshal err: %v", err)
			return nil
		}
		ts := time.Now().Unix()
		if t, err := time.Parse(time.RFC3339, e.Time); err == nil {
			ts = t.Unix()
		}
		rec := model.CustomerAction{
			ActionName: e.ActionName,
			CustomerID: e.CustomerID,
			UID:        e.UserID,
			AddTime:    ts,
			Data:       truncate(e.Body, 2000),
			URL:        e.Path,
			Method:     e.Method,
			Status:     e.Status,
			LatencyMs:  e.LatencyMs,
			IP:         e.IP,
		}
		return c.DB.WithContext(mctx).Create(&rec).Error
	})
}

func (c *Consumer) Close() error { return c.inner.Close() }

func AutoMigrate(db *gorm.DB) error {
	return postgres.AutoMigrateModels(db, &model.CustomerAction{})
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
