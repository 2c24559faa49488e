package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event captures a single mutation for the audit trail. The services
// construct and dispatch events; persistence and querying happen behind
// the sink, outside the request path.
type Event struct {
	EntityType  string          `json:"entity_type"`
	EntityID    string          `json:"entity_id"`
	Action      string          `json:"action"`
	PrincipalID uuid.UUID       `json:"principal_id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	Before      json.RawMessage `json:"before,omitempty"`
	After       json.RawMessage `json:"after,omitempty"`
	At          time.Time       `json:"at"`
}

// Snapshot serializes a record state for the Before/After fields. A record
// that fails to marshal is recorded as null rather than dropping the event.
func Snapshot(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
