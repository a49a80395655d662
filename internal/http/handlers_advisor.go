package http

import (
	"log/slog"
	"net/http"
	"strings"

	"fintrack/internal/advisor"
	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// emptyLedgerChatReply is returned without consulting the model when there
// is nothing to advise on.
const emptyLedgerChatReply = "Please add some transactions first to get personalized financial advice!"

type chatResponse struct {
	Response string `json:"response"`
}

// handleChat forwards a question about the ledger to the advisor. The
// model's prose passes through untouched.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		BadRequestError("message cannot be empty").Write(w)
		return
	}

	snapshot, err := s.ledgerSnapshot(r)
	if err != nil {
		InternalServerError("internal error").Write(w)
		return
	}
	if snapshot.Empty() {
		NewJSONResponse().Body(chatResponse{Response: emptyLedgerChatReply}).Write(w)
		return
	}

	answer, err := s.advisor.Advise(r.Context(), req.Message, snapshot)
	if err != nil {
		slog.ErrorContext(r.Context(), "Advisor request failed", "error", err)
		InternalServerError("Error processing chat").Write(w)
		return
	}

	NewJSONResponse().Body(chatResponse{Response: answer}).Write(w)
}

// handleSpendingAnalysis returns the deterministic spending report.
func (s *Server) handleSpendingAnalysis(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.ledgerSnapshot(r)
	if err != nil {
		InternalServerError("internal error").Write(w)
		return
	}
	NewJSONResponse().Body(map[string]string{
		"analysis": advisor.SpendingReport(snapshot),
	}).Write(w)
}

// handleBudgetSuggestions returns 50/30/20 budget recommendations.
func (s *Server) handleBudgetSuggestions(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.ledgerSnapshot(r)
	if err != nil {
		InternalServerError("internal error").Write(w)
		return
	}
	NewJSONResponse().Body(map[string]string{
		"suggestions": advisor.BudgetSuggestions(snapshot),
	}).Write(w)
}

// handleSavingsTips returns savings advice for the biggest expense category.
func (s *Server) handleSavingsTips(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.ledgerSnapshot(r)
	if err != nil {
		InternalServerError("internal error").Write(w)
		return
	}
	NewJSONResponse().Body(map[string]string{
		"tips": advisor.SavingsTips(snapshot),
	}).Write(w)
}

// ledgerSnapshot builds the read-only view handed to the advisor: every
// transaction plus the derived aggregates.
func (s *Server) ledgerSnapshot(r *http.Request) (advisor.Snapshot, error) {
	txs, err := s.store.List(r.Context(), ledger.Filter{})
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions failed", "error", err)
		return advisor.Snapshot{}, err
	}
	return advisor.Snapshot{
		Transactions: txs,
		Summary:      core.Summarize(txs),
		Breakdown:    core.CategoryBreakdown(txs),
		Trend:        core.MonthlyTrend(txs),
	}, nil
}
