package events

import (
	"encoding/json"
	"time"
)

const (
	TypeTransactionCreated = "transaction.created"
	TypeIncomeEntryCreated = "income_entry.created"
)

// Event is the envelope every message on the wire uses. Payload carries
// the type-specific body; consumers route on Type before unmarshalling.
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// TransactionCreatedPayload carries only the id; the worker fetches the
// full record from the database so stale copies never reach the export.
type TransactionCreatedPayload struct {
	TransactionID string `json:"transaction_id"`
	UserID        string `json:"user_id"`
}

// IncomeEntryCreatedPayload identifies a new income entry and the month
// it lands in, so the worker knows which monthly sheet to refresh.
type IncomeEntryCreatedPayload struct {
	EntryID string `json:"entry_id"`
	UserID  string `json:"user_id"`
	Year    int    `json:"year"`
	Month   int    `json:"month"`
}

// NewEvent wraps a payload in an envelope stamped with the current time.
func NewEvent(eventType string, payload any) (*Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   body,
		Timestamp: time.Now(),
	}, nil
}

// ToJSON converts the event to JSON bytes.
func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EventFromJSON creates an event from JSON bytes.
func EventFromJSON(data []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
