package amqp

import (
	"testing"
	"time"
)

func TestNewTransactionEventMessage(t *testing.T) {
	msg := NewTransactionEventMessage(ActionCreated, 42, "2024-01-10", "Expense", "Food", 20000, "groceries")

	if msg.ID != 42 {
		t.Errorf("ID = %v, want 42", msg.ID)
	}
	if msg.Action != ActionCreated {
		t.Errorf("Action = %v, want %v", msg.Action, ActionCreated)
	}
	if msg.AmountCents != 20000 {
		t.Errorf("AmountCents = %v, want 20000", msg.AmountCents)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}
}

func TestTransactionEventMessage_JSON(t *testing.T) {
	timestamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := &TransactionEventMessage{
		ID:          12345,
		Action:      ActionDeleted,
		Date:        "2024-02-01",
		Type:        "Expense",
		Category:    "Food",
		AmountCents: 5000,
		Description: "lunch",
		Timestamp:   timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsedMsg, err := TransactionEventMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("TransactionEventMessageFromJSON() error = %v", err)
	}

	if parsedMsg.ID != msg.ID {
		t.Errorf("Parsed ID = %v, want %v", parsedMsg.ID, msg.ID)
	}
	if parsedMsg.Action != msg.Action {
		t.Errorf("Parsed Action = %v, want %v", parsedMsg.Action, msg.Action)
	}
	if parsedMsg.AmountCents != msg.AmountCents {
		t.Errorf("Parsed AmountCents = %v, want %v", parsedMsg.AmountCents, msg.AmountCents)
	}
	if !parsedMsg.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsedMsg.Timestamp, msg.Timestamp)
	}
}

func TestTransactionEventMessage_InvalidJSON(t *testing.T) {
	invalidJSON := []byte(`{"id": "not_a_number", "action": "created"}`)

	_, err := TransactionEventMessageFromJSON(invalidJSON)
	if err == nil {
		t.Error("TransactionEventMessageFromJSON() should fail with invalid JSON")
	}
}
