package amqp

import (
	"encoding/json"
	"time"
)

const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

// TransactionEventMessage describes a single ledger mutation. It carries a
// full snapshot of the transaction so the backup worker can journal deleted
// rows without a database lookup.
type TransactionEventMessage struct {
	ID          int64     `json:"id"`
	Action      string    `json:"action"`
	Date        string    `json:"date"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	AmountCents int64     `json:"amount_cents"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewTransactionEventMessage creates an event message stamped with the
// current time.
func NewTransactionEventMessage(action string, id int64, date, txType, category string, amountCents int64, description string) *TransactionEventMessage {
	return &TransactionEventMessage{
		ID:          id,
		Action:      action,
		Date:        date,
		Type:        txType,
		Category:    category,
		AmountCents: amountCents,
		Description: description,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *TransactionEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionEventMessageFromJSON creates a message from JSON bytes.
func TransactionEventMessageFromJSON(data []byte) (*TransactionEventMessage, error) {
	var msg TransactionEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
