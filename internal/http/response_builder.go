// Package http provides the JSON API server for the finance tracker.
//
// This file implements a fluent builder for JSON responses and the mapping
// from domain errors to HTTP status codes.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// JSONResponseBuilder provides a fluent API for building JSON responses.
type JSONResponseBuilder struct {
	statusCode int
	payload    any
	headers    map[string]string
}

// NewJSONResponse creates a new response builder with default 200 status.
func NewJSONResponse() *JSONResponseBuilder {
	return &JSONResponseBuilder{
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

// Status sets the HTTP status code for the response.
func (b *JSONResponseBuilder) Status(code int) *JSONResponseBuilder {
	b.statusCode = code
	return b
}

// Body sets the value marshalled as the response body.
func (b *JSONResponseBuilder) Body(payload any) *JSONResponseBuilder {
	b.payload = payload
	return b
}

// Header adds a custom header to the response.
func (b *JSONResponseBuilder) Header(name, value string) *JSONResponseBuilder {
	b.headers[name] = value
	return b
}

// Write sends the built response to the http.ResponseWriter.
func (b *JSONResponseBuilder) Write(w http.ResponseWriter) {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(b.statusCode)
	if b.payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(b.payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// errorBody mirrors the {"detail": ...} error envelope of the API.
type errorBody struct {
	Detail string `json:"detail"`
}

// ErrorResponse creates an error response with the standard envelope.
func ErrorResponse(statusCode int, message string) *JSONResponseBuilder {
	return NewJSONResponse().Status(statusCode).Body(errorBody{Detail: message})
}

// BadRequestError creates a 400 Bad Request error response.
func BadRequestError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, message)
}

// NotFoundError creates a 404 Not Found error response.
func NotFoundError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusNotFound, message)
}

// InternalServerError creates a 500 Internal Server Error response.
func InternalServerError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusInternalServerError, message)
}

// DomainError maps a domain error onto the API's status codes: validation
// failures are the client's fault, missing ids are 404, anything else is a
// 500 with a generic message so internals never leak.
func DomainError(err error) *JSONResponseBuilder {
	switch {
	case core.IsValidation(err):
		return BadRequestError(err.Error())
	case errors.Is(err, ledger.ErrNotFound):
		return NotFoundError("Transaction not found")
	default:
		return InternalServerError("internal error")
	}
}

// transactionJSON is the wire shape of a stored transaction.
type transactionJSON struct {
	ID          int64      `json:"id"`
	Date        core.Date  `json:"date"`
	Category    string     `json:"category"`
	Amount      core.Money `json:"amount"`
	Type        string     `json:"type"`
	Description string     `json:"description"`
	CreatedAt   string     `json:"created_at"`
}

func toTransactionJSON(t core.Transaction) transactionJSON {
	return transactionJSON{
		ID:          t.ID,
		Date:        t.Date,
		Category:    t.Category,
		Amount:      t.Amount,
		Type:        string(t.Type),
		Description: t.Description,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// recentTransactionJSON is the abbreviated shape used in dashboard lists.
type recentTransactionJSON struct {
	ID       int64      `json:"id"`
	Date     core.Date  `json:"date"`
	Category string     `json:"category"`
	Amount   core.Money `json:"amount"`
	Type     string     `json:"type"`
}

func toRecentJSON(t core.Transaction) recentTransactionJSON {
	return recentTransactionJSON{
		ID:       t.ID,
		Date:     t.Date,
		Category: t.Category,
		Amount:   t.Amount,
		Type:     string(t.Type),
	}
}
