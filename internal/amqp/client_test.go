package amqp

import (
	"testing"
	"time"
)

func TestNewLedgerEventMessage(t *testing.T) {
	msg := NewLedgerEventMessage(EventTransactionCreated, 7, 42)

	if msg.Event != EventTransactionCreated {
		t.Errorf("Event = %v, want %v", msg.Event, EventTransactionCreated)
	}
	if msg.Version != 7 {
		t.Errorf("Version = %v, want 7", msg.Version)
	}
	if msg.Count != 42 {
		t.Errorf("Count = %v, want 42", msg.Count)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}
}

func TestLedgerEventMessage_JSON(t *testing.T) {
	timestamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := &LedgerEventMessage{
		Event:     EventStatementImported,
		Version:   3,
		Count:     18,
		Timestamp: timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := LedgerEventMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("LedgerEventMessageFromJSON() error = %v", err)
	}

	if parsed.Event != msg.Event {
		t.Errorf("Parsed Event = %v, want %v", parsed.Event, msg.Event)
	}
	if parsed.Version != msg.Version {
		t.Errorf("Parsed Version = %v, want %v", parsed.Version, msg.Version)
	}
	if parsed.Count != msg.Count {
		t.Errorf("Parsed Count = %v, want %v", parsed.Count, msg.Count)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestLedgerEventMessage_InvalidJSON(t *testing.T) {
	invalidJSON := []byte(`{"version": "not_a_number"}`)

	if _, err := LedgerEventMessageFromJSON(invalidJSON); err == nil {
		t.Error("LedgerEventMessageFromJSON() should fail with invalid JSON")
	}
}
