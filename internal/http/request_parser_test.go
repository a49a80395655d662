package http

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"fintrack/internal/core"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantYear  int
		wantMonth int
		wantErr   bool
	}{
		{"empty stays open", "", 0, 0, false},
		{"year only", "year=2024", 2024, 0, false},
		{"month only", "month=3", 0, 3, false},
		{"both", "year=2024&month=12", 2024, 12, false},
		{"month zero", "month=0", 0, 0, true},
		{"month thirteen", "month=13", 0, 0, true},
		{"year garbage", "year=abc", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			f, err := parseFilter(q)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && (f.Year != tt.wantYear || f.Month != tt.wantMonth) {
				t.Errorf("filter = %+v", f)
			}
		})
	}
}

func TestParseDashboardFilterDefaults(t *testing.T) {
	f, err := parseDashboardFilter(url.Values{})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	now := time.Now()
	if f.Year != now.Year() || f.Month != int(now.Month()) {
		t.Errorf("default filter = %+v, want current month", f)
	}

	// An explicit year suppresses the month default.
	q, _ := url.ParseQuery("year=2020")
	f, err = parseDashboardFilter(q)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if f.Year != 2020 || f.Month != 0 {
		t.Errorf("year-only filter = %+v", f)
	}
}

func TestParsePeriod(t *testing.T) {
	q, _ := url.ParseQuery("year_a=2024&month_a=3&year_b=2023")
	a, err := parsePeriod(q, "a")
	if err != nil || a.Year != 2024 || a.Month != 3 {
		t.Errorf("period a = %+v, err = %v", a, err)
	}
	b, err := parsePeriod(q, "b")
	if err != nil || b.Year != 2023 || !b.Yearly() {
		t.Errorf("period b = %+v, err = %v", b, err)
	}
	if _, err := parsePeriod(url.Values{}, "a"); err == nil {
		t.Error("missing year_a should fail")
	}
}

func TestToTransaction(t *testing.T) {
	req := createTransactionRequest{
		Date:        "2024-01-10",
		Category:    " Food ",
		Amount:      json.Number("12.345"),
		Type:        "Expense",
		Description: "groceries\x00",
	}
	tx, err := req.toTransaction()
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if tx.Amount.Cents != 1235 {
		t.Errorf("cents = %d, want 1235 (half-up on third decimal)", tx.Amount.Cents)
	}
	if tx.Category != "Food" {
		t.Errorf("category = %q, want trimmed", tx.Category)
	}
	if tx.Description != "groceries" {
		t.Errorf("description = %q, control characters should be stripped", tx.Description)
	}

	req.Amount = json.Number("-5")
	if _, err := req.toTransaction(); !core.IsValidation(err) {
		t.Errorf("negative amount err = %v, want validation error", err)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := sanitizeInput("  hello\x01world  "); got != "helloworld" {
		t.Errorf("sanitizeInput = %q", got)
	}
}
