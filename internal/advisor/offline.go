package advisor

import (
	"context"
	"strings"
)

// OfflineAdvisor answers chat questions without a language model. It routes
// the question to the closest deterministic report, so the chat endpoint
// stays useful when no API key is configured.
type OfflineAdvisor struct{}

func (OfflineAdvisor) Advise(_ context.Context, question string, snapshot Snapshot) (string, error) {
	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "budget"):
		return BudgetSuggestions(snapshot), nil
	case strings.Contains(q, "save"), strings.Contains(q, "saving"):
		return SavingsTips(snapshot), nil
	default:
		return SpendingReport(snapshot), nil
	}
}
