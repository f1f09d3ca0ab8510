package events

import (
	"testing"
	"time"
)

func TestNewLedgerEvent(t *testing.T) {
	event := NewLedgerEvent(ExpenseCreated, "exp-1")

	if event.Kind != ExpenseCreated {
		t.Errorf("expected kind %q, got %q", ExpenseCreated, event.Kind)
	}
	if event.EntityID != "exp-1" {
		t.Errorf("expected entity ID exp-1, got %q", event.EntityID)
	}
	if event.OccurredAt.IsZero() {
		t.Error("expected OccurredAt to be set")
	}
	if time.Since(event.OccurredAt) > time.Second {
		t.Error("expected OccurredAt to be recent")
	}
}

func TestLedgerEventJSON(t *testing.T) {
	occurred := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	event := &LedgerEvent{
		Kind:       SettlementRecorded,
		EntityID:   "stl-9",
		OccurredAt: occurred,
	}

	data, err := event.ToJSON()
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}

	parsed, err := LedgerEventFromJSON(data)
	if err != nil {
		t.Fatalf("failed to parse event: %v", err)
	}
	if parsed.Kind != event.Kind || parsed.EntityID != event.EntityID {
		t.Errorf("round trip mismatch: got %+v, want %+v", parsed, event)
	}
	if !parsed.OccurredAt.Equal(occurred) {
		t.Errorf("expected OccurredAt %v, got %v", occurred, parsed.OccurredAt)
	}
}

func TestLedgerEventFromInvalidJSON(t *testing.T) {
	if _, err := LedgerEventFromJSON([]byte(`{"kind": 7}`)); err == nil {
		t.Error("expected invalid JSON to fail")
	}
}
