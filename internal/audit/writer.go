package audit

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Writer persists audit events into audit_logs. It runs in the worker
// process, off the request path.
type Writer struct {
	pool *pgxpool.Pool
}

// NewWriter constructs a Writer.
func NewWriter(pool *pgxpool.Pool) *Writer {
	return &Writer{pool: pool}
}

// Write persists one event.
func (w *Writer) Write(ctx context.Context, event Event) error {
	if event.EntityType == "" || event.Action == "" {
		return errors.New("audit: event requires entity_type and action")
	}
	if w == nil || w.pool == nil {
		return errors.New("audit: writer not initialised")
	}
	at := event.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := w.pool.Exec(ctx,
		`INSERT INTO audit_logs (entity_type, entity_id, action, principal_id, tenant_id, before_state, after_state, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		event.EntityType, event.EntityID, event.Action, event.PrincipalID, event.TenantID,
		event.Before, event.After, at)
	return err
}

// HandleRecordTask processes TaskTypeRecord tasks.
func (w *Writer) HandleRecordTask(ctx context.Context, t *asynq.Task) error {
	var event Event
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		return asynq.SkipRetry
	}
	return w.Write(ctx, event)
}

// TaskTypePurge is the queue task type for the retention sweep.
const TaskTypePurge = "audit:purge"

type purgePayload struct {
	RetainDays int `json:"retain_days"`
}

// NewPurgeTask builds a retention sweep task.
func NewPurgeTask(retainDays int) (*asynq.Task, error) {
	data, err := json.Marshal(purgePayload{RetainDays: retainDays})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypePurge, data), nil
}

// Purge deletes audit rows older than the retention window.
func (w *Writer) Purge(ctx context.Context, retainDays int) (int64, error) {
	if retainDays <= 0 {
		retainDays = 365
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -retainDays)
	tag, err := w.pool.Exec(ctx, `DELETE FROM audit_logs WHERE occurred_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// HandlePurgeTask processes TaskTypePurge tasks.
func (w *Writer) HandlePurgeTask(ctx context.Context, t *asynq.Task) error {
	var payload purgePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	_, err := w.Purge(ctx, payload.RetainDays)
	return err
}
