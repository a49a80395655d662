// Package export journals ledger mutations to an external backup target.
package export

import (
	"context"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
)

// Entry is one journal row. The journal is append-only: deletions are
// recorded as rows, never removed.
type Entry struct {
	Timestamp   time.Time
	Action      string
	ID          int64
	Date        string
	Type        string
	Category    string
	AmountCents int64
	Description string
}

// EntryFromEvent converts a broker message into a journal entry.
func EntryFromEvent(msg *amqp.TransactionEventMessage) Entry {
	return Entry{
		Timestamp:   msg.Timestamp,
		Action:      msg.Action,
		ID:          msg.ID,
		Date:        msg.Date,
		Type:        msg.Type,
		Category:    msg.Category,
		AmountCents: msg.AmountCents,
		Description: msg.Description,
	}
}

// Row renders the entry as a spreadsheet row.
func (e Entry) Row() []any {
	return []any{
		e.Timestamp.UTC().Format(time.RFC3339),
		e.Action,
		e.ID,
		e.Date,
		e.Type,
		e.Category,
		core.Money{Cents: e.AmountCents}.String(),
		e.Description,
	}
}

// Journal appends entries to a backup target.
type Journal interface {
	AppendEntry(ctx context.Context, e Entry) error
}
