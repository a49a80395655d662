package services

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// EventPublisher is the slice of the AMQP client the service needs. It is an
// interface so tests can capture events without a broker.
type EventPublisher interface {
	PublishTransactionEvent(ctx context.Context, msg *amqp.TransactionEventMessage) error
}

// LedgerService orchestrates ledger writes and the backup event stream. The
// local write is authoritative; publish failures are logged and never
// surfaced to the caller.
type LedgerService struct {
	store     ledger.Store
	publisher EventPublisher
}

func NewLedgerService(store ledger.Store, publisher EventPublisher) *LedgerService {
	return &LedgerService{
		store:     store,
		publisher: publisher,
	}
}

// CreateTransaction saves the transaction locally and publishes a created
// event for the backup journal.
func (s *LedgerService) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	id, err := s.store.Insert(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	stored, err := s.store.Get(ctx, id)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("load stored transaction: %w", err)
	}

	s.publish(ctx, amqp.NewTransactionEventMessage(
		amqp.ActionCreated, stored.ID, stored.Date.String(), string(stored.Type),
		stored.Category, stored.Amount.Cents, stored.Description))

	return stored, nil
}

// DeleteTransaction removes the transaction locally and publishes a deleted
// event carrying the last known snapshot.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id int64) error {
	stored, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, amqp.NewTransactionEventMessage(
		amqp.ActionDeleted, stored.ID, stored.Date.String(), string(stored.Type),
		stored.Category, stored.Amount.Cents, stored.Description))

	return nil
}

func (s *LedgerService) publish(ctx context.Context, msg *amqp.TransactionEventMessage) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransactionEvent(ctx, msg); err != nil {
		// Don't fail the request - the local write already succeeded.
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"id", msg.ID, "action", msg.Action, "error", err)
	}
}
