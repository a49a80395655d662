// Package http provides the JSON API server for the finance tracker.
//
// This file implements utilities for parsing and validating request data.
// Every endpoint decodes into an explicit request type; unknown JSON fields
// are rejected rather than ignored.
package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// maxBodyBytes caps request bodies; payloads here are small JSON documents.
const maxBodyBytes = 1 << 20

// createTransactionRequest is the body of POST /api/transactions.
type createTransactionRequest struct {
	Date        string      `json:"date"`
	Category    string      `json:"category"`
	Amount      json.Number `json:"amount"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
}

// chatRequest is the body of POST /api/chat.
type chatRequest struct {
	Message string `json:"message"`
}

// decodeJSON decodes the request body into dst, rejecting unknown fields
// and trailing data.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("decode request body: unexpected trailing data")
	}
	return nil
}

// toTransaction validates the request fields and builds the domain
// transaction. All errors belong to the validation family.
func (req createTransactionRequest) toTransaction() (core.Transaction, error) {
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	cents, err := core.ParseDecimalToCents(req.Amount.String())
	if err != nil {
		return core.Transaction{}, err
	}
	t := core.Transaction{
		Date:        date,
		Amount:      core.Money{Cents: cents},
		Type:        core.TransactionType(strings.TrimSpace(req.Type)),
		Category:    sanitizeInput(req.Category),
		Description: sanitizeInput(req.Description),
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

// parseFilter reads optional month/year query parameters into a ledger
// filter. Absent parameters leave the corresponding dimension open.
func parseFilter(query url.Values) (ledger.Filter, error) {
	var f ledger.Filter
	if v := strings.TrimSpace(query.Get("year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 {
			return ledger.Filter{}, fmt.Errorf("invalid year %q", v)
		}
		f.Year = y
	}
	if v := strings.TrimSpace(query.Get("month")); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return ledger.Filter{}, fmt.Errorf("invalid month %q: must be 1-12", v)
		}
		f.Month = m
	}
	return f, nil
}

// parseDashboardFilter is parseFilter with the dashboard default: when
// neither month nor year is given, the view narrows to the current month.
func parseDashboardFilter(query url.Values) (ledger.Filter, error) {
	f, err := parseFilter(query)
	if err != nil {
		return ledger.Filter{}, err
	}
	if f.Month == 0 && f.Year == 0 {
		now := time.Now()
		f.Month = int(now.Month())
		f.Year = now.Year()
	}
	return f, nil
}

// parseRequiredYear reads a mandatory year query parameter.
func parseRequiredYear(query url.Values) (int, error) {
	v := strings.TrimSpace(query.Get("year"))
	if v == "" {
		return 0, fmt.Errorf("missing required parameter 'year'")
	}
	y, err := strconv.Atoi(v)
	if err != nil || y < 1 {
		return 0, fmt.Errorf("invalid year %q", v)
	}
	return y, nil
}

// parsePeriod reads a comparison period from suffixed query parameters,
// e.g. year_a/month_a. The month is optional; a bare year compares whole
// years.
func parsePeriod(query url.Values, suffix string) (core.Period, error) {
	var p core.Period
	v := strings.TrimSpace(query.Get("year_" + suffix))
	if v == "" {
		return core.Period{}, fmt.Errorf("missing required parameter 'year_%s'", suffix)
	}
	y, err := strconv.Atoi(v)
	if err != nil || y < 1 {
		return core.Period{}, fmt.Errorf("invalid year_%s %q", suffix, v)
	}
	p.Year = y

	if v := strings.TrimSpace(query.Get("month_" + suffix)); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return core.Period{}, fmt.Errorf("invalid month_%s %q: must be 1-12", suffix, v)
		}
		p.Month = m
	}
	return p, nil
}

// parsePathID reads the {id} path segment as a positive integer.
func parsePathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid transaction id %q", raw)
	}
	return id, nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
