package trade

import (
	"encoding/json"
	"time"
)

const EventTradeCreated = "TradeCreated"

// Envelope wraps a domain event for the event stream so consumers can
// dispatch on the type before decoding the payload.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// TradeCreated is published after a trade commits.
type TradeCreated struct {
	TradeUUID string    `json:"trade_uuid"`
	MemberID  int64     `json:"member_id"`
	Items     []Item    `json:"items"`
	Total     int64     `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEnvelope marshals payload into an Envelope of the given type.
func NewEnvelope(eventType string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: eventType, Data: data}, nil
}
