// Package worker journals ledger mutations to the external backup target.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/export"
	"fintrack/internal/ledger"
)

// ActionSnapshot marks journal rows written by the periodic snapshot pass
// rather than a live event.
const ActionSnapshot = "snapshot"

// BackupWorker consumes transaction events and appends them to the backup
// journal. A periodic snapshot pass re-journals the most recent ledger rows
// to recover from missed messages; duplicates are acceptable in an
// append-only journal.
type BackupWorker struct {
	store     ledger.TransactionLister
	journal   export.Journal
	batchSize int
}

func NewBackupWorker(store ledger.TransactionLister, journal export.Journal, batchSize int) *BackupWorker {
	return &BackupWorker{
		store:     store,
		journal:   journal,
		batchSize: batchSize,
	}
}

// HandleEvent journals a single transaction event.
func (w *BackupWorker) HandleEvent(ctx context.Context, msg *amqp.TransactionEventMessage) error {
	slog.InfoContext(ctx, "Processing transaction event",
		"id", msg.ID,
		"action", msg.Action)

	if err := w.journal.AppendEntry(ctx, export.EntryFromEvent(msg)); err != nil {
		return fmt.Errorf("journal event: %w", err)
	}
	return nil
}

// SnapshotBackup journals the most recent ledger rows, up to the batch size.
func (w *BackupWorker) SnapshotBackup(ctx context.Context) error {
	if w.store == nil {
		slog.WarnContext(ctx, "No ledger store configured, skipping snapshot backup")
		return nil
	}

	txs, err := w.store.List(ctx, ledger.Filter{})
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}
	if len(txs) > w.batchSize {
		txs = txs[:w.batchSize]
	}
	if len(txs) == 0 {
		slog.InfoContext(ctx, "No transactions to snapshot")
		return nil
	}

	journaled := 0
	for _, t := range txs {
		entry := snapshotEntry(t)
		if err := w.journal.AppendEntry(ctx, entry); err != nil {
			slog.ErrorContext(ctx, "Failed to journal snapshot row",
				"id", t.ID, "error", err)
			continue
		}
		journaled++
	}

	slog.InfoContext(ctx, "Snapshot backup completed",
		"total", len(txs),
		"journaled", journaled)
	return nil
}

func snapshotEntry(t core.Transaction) export.Entry {
	return export.Entry{
		Timestamp:   time.Now(),
		Action:      ActionSnapshot,
		ID:          t.ID,
		Date:        t.Date.String(),
		Type:        string(t.Type),
		Category:    t.Category,
		AmountCents: t.Amount.Cents,
		Description: t.Description,
	}
}
