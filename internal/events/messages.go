// Package events carries change notifications out of the ledger.
//
// Events are intentionally thin: they name what changed and nothing
// else. Consumers reload whatever they need from storage, so a lost
// consumer can always catch up from the next event.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Kind labels what changed in the ledger.
type Kind string

const (
	PersonCreated      Kind = "person.created"
	PersonUpdated      Kind = "person.updated"
	PersonDeleted      Kind = "person.deleted"
	ExpenseCreated     Kind = "expense.created"
	ExpenseUpdated     Kind = "expense.updated"
	ExpenseDeleted     Kind = "expense.deleted"
	SettlementRecorded Kind = "settlement.recorded"
	SettlementDeleted  Kind = "settlement.deleted"
)

// LedgerEvent notifies consumers that the ledger changed.
type LedgerEvent struct {
	Kind       Kind      `json:"kind"`
	EntityID   string    `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewLedgerEvent creates an event stamped with the current time.
func NewLedgerEvent(kind Kind, entityID string) *LedgerEvent {
	return &LedgerEvent{
		Kind:       kind,
		EntityID:   entityID,
		OccurredAt: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEventFromJSON parses an event from JSON bytes.
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var event LedgerEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Publisher sends ledger events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, event *LedgerEvent) error
}
