package amqp

import (
	"encoding/json"
	"time"
)

// Event names carried by ledger change messages.
const (
	EventTransactionCreated = "transaction.created"
	EventTransactionUpdated = "transaction.updated"
	EventTransactionDeleted = "transaction.deleted"
	EventStatementImported  = "statement.imported"
)

// LedgerEventMessage announces that the ledger changed. It carries only the
// event name and the store version after the change; consumers reload the
// snapshot from storage rather than trusting message payloads.
type LedgerEventMessage struct {
	Event     string    `json:"event"`
	Version   uint64    `json:"version"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerEventMessage creates a change message for the given event.
func NewLedgerEventMessage(event string, version uint64, count int) *LedgerEventMessage {
	return &LedgerEventMessage{
		Event:     event,
		Version:   version,
		Count:     count,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventMessageFromJSON creates a message from JSON bytes
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
