// Package advisor turns ledger data into advice: a chat gateway to an
// external model plus deterministic local analyses.
package advisor

import (
	"context"

	"fintrack/internal/core"
)

// Snapshot is the read-only view of the ledger handed to the gateway. The
// gateway never touches the store directly.
type Snapshot struct {
	Transactions []core.Transaction
	Summary      core.Summary
	Breakdown    []core.CategoryAmount
	Trend        []core.MonthAmount
}

// Empty reports whether there is any data to advise on.
func (s Snapshot) Empty() bool {
	return len(s.Transactions) == 0
}

// Advisor answers a natural-language question about a financial snapshot.
// The response is opaque prose; callers pass it through unmodified.
type Advisor interface {
	Advise(ctx context.Context, question string, snapshot Snapshot) (string, error)
}
