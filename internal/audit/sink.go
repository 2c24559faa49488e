package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// TaskTypeRecord is the queue task type carrying one audit event.
const TaskTypeRecord = "audit:record"

// Sink receives mutation events. Implementations must be best-effort: a
// failing sink never aborts or rolls back the operation that produced the
// event.
type Sink interface {
	Record(ctx context.Context, event Event)
}

// NewRecordTask wraps an event in a queue task.
func NewRecordTask(event Event) (*asynq.Task, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeRecord, data), nil
}

// QueueSink dispatches events onto the background queue. Failures are
// logged and dropped.
type QueueSink struct {
	client *asynq.Client
	logger *slog.Logger
}

// NewQueueSink constructs a QueueSink.
func NewQueueSink(client *asynq.Client, logger *slog.Logger) *QueueSink {
	return &QueueSink{client: client, logger: logger}
}

// Record implements Sink.
func (s *QueueSink) Record(ctx context.Context, event Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	task, err := NewRecordTask(event)
	if err != nil {
		s.logger.Error("marshal audit event", slog.String("entity", event.EntityType), slog.Any("error", err))
		return
	}
	if _, err := s.client.EnqueueContext(ctx, task); err != nil {
		s.logger.Error("enqueue audit event",
			slog.String("entity", event.EntityType),
			slog.String("entity_id", event.EntityID),
			slog.Any("error", err))
	}
}

// NopSink discards events. Used where no queue is configured.
type NopSink struct{}

// Record implements Sink.
func (NopSink) Record(context.Context, Event) {}
