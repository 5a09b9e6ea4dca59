package outbox

import (
	"encoding/json"
	"time"
)

// ActorRef identifies who produced the event.
type ActorRef struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role,omitempty"`
}

// PayloadEnvelope is the stable payload structure stored in outbox_events.
type PayloadEnvelope struct {
	Version    int             `json:"version"`
	EventID    string          `json:"event_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Actor      *ActorRef       `json:"actor,omitempty"`
	Data       json.RawMessage `json:"data"`
}

// DecodeEnvelope parses a stored payload column.
func DecodeEnvelope(payload string) (PayloadEnvelope, error) {
	var env PayloadEnvelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return PayloadEnvelope{}, err
	}
	return env, nil
}
