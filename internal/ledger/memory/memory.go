// Package memory provides an in-memory ledger backend used as the default
// data backend and by handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Transaction
}

var _ ledger.Store = (*Store)(nil)

func New() *Store {
	return &Store{nextID: 1}
}

// Insert validates and stores the transaction, returning the assigned id.
// Ids are monotonically increasing and never reused after deletion.
func (s *Store) Insert(_ context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	t = t.Normalized()

	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID
	s.nextID++
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	s.items = append(s.items, t)
	return t.ID, nil
}

// List returns matching transactions, date descending then id descending.
func (s *Store) List(_ context.Context, f ledger.Filter) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Transaction, 0, len(s.items))
	for _, t := range s.items {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) Get(_ context.Context, id int64) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.items {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, ledger.ErrNotFound
}

// Delete removes the transaction by id. A second delete of the same id
// reports ErrNotFound.
func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.items {
		if t.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return ledger.ErrNotFound
}

func (s *Store) DistinctYears(_ context.Context) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[int]struct{}{}
	for _, t := range s.items {
		seen[t.Date.Year()] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

func (s *Store) DistinctMonths(_ context.Context, year int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[int]struct{}{}
	for _, t := range s.items {
		if year != 0 && t.Date.Year() != year {
			continue
		}
		seen[t.Date.Month()] = struct{}{}
	}
	months := make([]int, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Ints(months)
	return months, nil
}
