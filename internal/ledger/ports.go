// Package ledger defines the ports the HTTP layer and workers use to reach
// a transaction store, plus the filter vocabulary shared by all backends.
package ledger

import (
	"context"
	"errors"

	"fintrack/internal/core"
)

// ErrNotFound is returned by Delete and lookups when no transaction carries
// the given id. Deleting the same id twice fails the second time.
var ErrNotFound = errors.New("transaction not found")

// Filter narrows a listing by calendar month and/or year. Zero fields widen
// the query: an all-zero filter matches every transaction.
type Filter struct {
	Month int // 1-12, 0 = any month
	Year  int // 0 = any year
}

// Matches reports whether the transaction date falls inside the filter.
func (f Filter) Matches(t core.Transaction) bool {
	if f.Year != 0 && t.Date.Year() != f.Year {
		return false
	}
	if f.Month != 0 && t.Date.Month() != f.Month {
		return false
	}
	return true
}

// Ports for ledger backends.
type (
	TransactionWriter interface {
		// Insert validates, normalizes and persists the transaction,
		// returning the assigned id.
		Insert(ctx context.Context, t core.Transaction) (int64, error)
	}

	TransactionLister interface {
		// List returns the transactions matching the filter, most recent
		// first (date descending, then id descending).
		List(ctx context.Context, f Filter) ([]core.Transaction, error)

		// Get returns a single transaction by id, or ErrNotFound.
		Get(ctx context.Context, id int64) (core.Transaction, error)
	}

	TransactionDeleter interface {
		// Delete removes the transaction, or returns ErrNotFound.
		Delete(ctx context.Context, id int64) error
	}

	// CalendarReader exposes the distinct years and months present in the
	// ledger, used to populate dashboard filter choices.
	CalendarReader interface {
		// DistinctYears returns the years with data, descending.
		DistinctYears(ctx context.Context) ([]int, error)
		// DistinctMonths returns the months with data, ascending,
		// restricted to year when year is non-zero.
		DistinctMonths(ctx context.Context, year int) ([]int, error)
	}

	// Store is the full backend surface a ledger implementation provides.
	Store interface {
		TransactionWriter
		TransactionLister
		TransactionDeleter
		CalendarReader
	}
)
