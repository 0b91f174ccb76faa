package kafka

import (
	"context"
	"testing"
	"time"

	"go-customerapi/internal/logging"
	"go-customerapi/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	lg, err := logging.New("error", "console")
	require.NoError(t, err)
	return lg
}

// 指向必然拒连的端口, MaxAttempts=1 让写入快速失败
func unreachableProducer() *Producer {
	return &Producer{&kafkaGo.Writer{
		Addr:         kafkaGo.TCP("127.0.0.1:1"),
		Topic:        "audit-test",
		MaxAttempts:  1,
		BatchTimeout: time.Millisecond,
	}}
}

func TestEnqueueDropsWhenQueueFull(t *testing.T) {
	s := NewAuditAsyncSender(unreachableProducer(), testLogger(t), 1, 1, 10, time.Hour)
	// worker 不启动, 队列容量 1: 第二条必须被丢弃而不是阻塞
	dropsBefore := testutil.ToFloat64(metrics.AuditKafkaEnqueue.WithLabelValues("dropped"))

	s.Enqueue(AsyncMessage{Ctx: context.Background(), Value: []byte("evt-1")})
	s.Enqueue(AsyncMessage{Ctx: context.Background(), Value: []byte("evt-2")})

	require.Equal(t, 1, len(s.queue))
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.AuditKafkaEnqueue.WithLabelValues("dropped"))-dropsBefore)
}

func TestCloseDrainsPendingEvents(t *testing.T) {
	s := NewAuditAsyncSender(unreachableProducer(), testLogger(t), 8, 1, 10, time.Hour)

	// 事件携带已结束的请求 context: 降级重发必须仍然尝试投递而非直接失败
	reqCtx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Enqueue(AsyncMessage{Ctx: reqCtx, Value: []byte("evt-1")})
	s.Enqueue(AsyncMessage{Ctx: reqCtx, Value: []byte("evt-2")})
	errsBefore := testutil.ToFloat64(metrics.AuditKafkaErrors)

	s.Start()
	done := make(chan struct{})
	go func() {
		_ = s.Close(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(15 * time.Second):
		t.Fatal("Close did not drain the queue")
	}

	require.Equal(t, 0, len(s.queue))
	// 两条都走到批量写入(并失败), 说明关闭前队列被清空
	require.Equal(t, float64(2), testutil.ToFloat64(metrics.AuditKafkaErrors)-errsBefore)
}
