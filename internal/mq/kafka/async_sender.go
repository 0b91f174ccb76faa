package kafka

import (
	"context"
	"sync"
	"time"

	"go-customerapi/internal/logging"
	"go-customerapi/internal/metrics"

	kafkaGo "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// AsyncMessage 审计事件在队列中的形态
type AsyncMessage struct {
	Ctx       context.Context
	Key       []byte
	Value     []byte
	Headers   map[string]string
	EnqueueAt time.Time
}

// AuditAsyncSender 有界异步发送 + 批量聚合：多 worker 从 channel 取事件，
// 达到 maxBatch 或等待超过 maxWait 即写一批。队列满直接丢
// (metrics.AuditKafkaEnqueue result="dropped")，批量失败降级逐条重发。

type AuditAsyncSender struct {
	producer *Producer
	logger   *logging.Logger
	queue    chan AsyncMessage
	workers  int
	wg       sync.WaitGroup
	stopCh   chan struct{}

	maxBatch int
	maxWait  time.Duration
}

func NewAuditAsyncSender(p *Producer, l *logging.Logger, queueSize, workers, maxBatch int, maxWait time.Duration) *AuditAsyncSender {
	if queueSize <= 0 {
		queueSize = 10000
	}
	if workers <= 0 {
		workers = 1
	}
	if maxBatch <= 0 {
		maxBatch = 50
	}
	if maxWait <= 0 {
		maxWait = 20 * time.Millisecond
	}
	return &AuditAsyncSender{
		producer: p,
		logger:   l,
		queue:    make(chan AsyncMessage, queueSize),
		workers:  workers,
		stopCh:   make(chan struct{}),
		maxBatch: maxBatch,
		maxWait:  maxWait,
	}
}

func (s *AuditAsyncSender) Start() {
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.run()
	}
}

func (s *AuditAsyncSender) run() {
	defer s.wg.Done()
	batch := make([]AsyncMessage, 0, s.maxBatch)
	var timer *time.Timer
	var timerCh <-chan time.Time

	stopTimer := func() {
		if timer != nil {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timerCh = nil
		}
	}

	flush := func(reason string) {
		if len(batch) == 0 {
			return
		}
		start := time.Now()
		msgs := make([]kafkaGo.Message, 0, len(batch))
		spans := make([]trace.Span, 0, len(batch))
		for _, m := range batch {
			ctxSpan, span := s.producer.startSpan(m.Ctx)
			var hs []kafkaGo.Header
			if len(m.Headers) > 0 {
				hs = make([]kafkaGo.Header, 0, len(m.Headers))
				for k, v := range m.Headers {
					hs = append(hs, kafkaGo.Header{Key: k, Value: []byte(v)})
				}
			}
			hs = s.producer.injectHeaders(ctxSpan, hs)
			msgs = append(msgs, kafkaGo.Message{Key: m.Key, Value: m.Value, Time: time.Now(), Headers: hs})
			spans = append(spans, span)
		}
		writeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := s.producer.Writer.WriteMessages(writeCtx, msgs...)
		cancel()
		if err != nil {
			for _, sp := range spans {
				sp.SetStatus(codes.Error, err.Error())
				sp.RecordError(err)
				sp.End()
			}
			metrics.AuditKafkaErrors.Add(float64(len(batch)))
			// 逐条回退; m.Ctx 多半是已结束的请求 context, 不能复用
			for _, m := range batch {
				sendCtx, sendCancel := context.WithTimeout(context.Background(), 3*time.Second)
				_ = s.producer.SendWithHeaders(sendCtx, m.Key, m.Value, m.Headers)
				sendCancel()
			}
		} else {
			for _, sp := range spans {
				sp.End()
			}
		}
		metrics.AuditKafkaBatchFlushTotal.WithLabelValues(reason).Inc()
		metrics.AuditKafkaBatchSize.Observe(float64(len(batch)))
		metrics.AuditKafkaSendDuration.Observe(time.Since(start).Seconds())
		batch = batch[:0]
		stopTimer()
	}

	for {
		select {
		case <-s.stopCh:
			// drain 剩余队列后退出
			for {
				select {
				case m, ok := <-s.queue:
					if !ok {
						flush("shutdown")
						return
					}
					metrics.AuditKafkaQueueDepth.Dec()
					batch = append(batch, m)
					if len(batch) >= s.maxBatch {
						flush("size")
					}
				default:
					flush("shutdown")
					return
				}
			}
		case m := <-s.queue:
			metrics.AuditKafkaQueueDepth.Dec()
			batch = append(batch, m)
			if len(batch) == 1 {
				if timer == nil {
					timer = time.NewTimer(s.maxWait)
				} else {
					stopTimer()
					timer.Reset(s.maxWait)
				}
				timerCh = timer.C
			}
			if len(batch) >= s.maxBatch {
				flush("size")
			}
		case <-timerCh:
			flush("timeout")
		}
	}
}

// Enqueue 非阻塞放入，满则丢弃
func (s *AuditAsyncSender) Enqueue(m AsyncMessage) {
	if m.EnqueueAt.IsZero() {
		m.EnqueueAt = time.Now()
	}
	select {
	case s.queue <- m:
		metrics.AuditKafkaEnqueue.WithLabelValues("ok").Inc()
		metrics.AuditKafkaQueueDepth.Inc()
	default:
		metrics.AuditKafkaEnqueue.WithLabelValues("dropped").Inc()
	}
}

// Close 停止 worker 并尽量清空队列
func (s *AuditAsyncSender) Close(ctx context.Context) error {
	close(s.stopCh)
	s.wg.Wait()
	return nil
}
