package http

import (
	"net/http"

	applog "fintrack/internal/log"
)

// handleCreateTransaction stores a new transaction and returns the stored
// record, including the assigned id.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	t, err := req.toTransaction()
	if err != nil {
		DomainError(err).Write(w)
		return
	}

	stored, err := s.svc.CreateTransaction(r.Context(), t)
	if err != nil {
		s.logs.LogError(r.Context(), "Create transaction failed", err,
			applog.ComponentLedger, applog.OpCreate,
			applog.NewFields().WithTransaction(0, req.Type, req.Category, t.Amount.Cents))
		DomainError(err).Write(w)
		return
	}

	s.logs.LogTransactionCreated(r.Context(), stored.ID, string(stored.Type), stored.Category, stored.Amount.Cents)
	NewJSONResponse().Status(http.StatusCreated).Body(toTransactionJSON(stored)).Write(w)
}

// handleListTransactions returns transactions most recent first, optionally
// narrowed by month/year query parameters.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	txs, err := s.store.List(r.Context(), filter)
	if err != nil {
		s.logs.LogError(r.Context(), "List transactions failed", err,
			applog.ComponentLedger, applog.OpList, applog.NewFields())
		InternalServerError("internal error").Write(w)
		return
	}

	out := make([]transactionJSON, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransactionJSON(t))
	}
	NewJSONResponse().Body(out).Write(w)
}

// handleDeleteTransaction removes a transaction for good. Deleting the same
// id twice reports not found the second time.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	if err := s.svc.DeleteTransaction(r.Context(), id); err != nil {
		DomainError(err).Write(w)
		return
	}

	NewJSONResponse().Body(map[string]any{
		"message": "Transaction deleted successfully",
		"success": true,
	}).Write(w)
}
