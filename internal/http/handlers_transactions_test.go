package http

import (
	"fmt"
	"net/http"
	"testing"
)

func TestCreateTransaction(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doRequest(t, srv, http.MethodPost, "/api/transactions",
		`{"date":"2024-01-10","category":"Food","amount":12.34,"type":"Expense","description":"groceries"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["id"].(float64) != 1 {
		t.Errorf("id = %v, want 1", body["id"])
	}
	if body["amount"].(float64) != 12.34 {
		t.Errorf("amount = %v, want 12.34", body["amount"])
	}
	if body["date"] != "2024-01-10" {
		t.Errorf("date = %v", body["date"])
	}
	if body["category"] != "Food" {
		t.Errorf("category = %v", body["category"])
	}
}

func TestCreateTransactionPinsIncomeCategory(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doRequest(t, srv, http.MethodPost, "/api/transactions",
		`{"date":"2024-01-10","category":"Bonus","amount":100,"type":"Income","description":""}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	if got := decodeBody(t, rr)["category"]; got != "Income" {
		t.Errorf("income category = %v, want Income", got)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"unknown field rejected", `{"date":"2024-01-10","category":"Food","amount":1,"type":"Expense","extra":1}`},
		{"invalid date", `{"date":"10/01/2024","category":"Food","amount":1,"type":"Expense"}`},
		{"zero amount", `{"date":"2024-01-10","category":"Food","amount":0,"type":"Expense"}`},
		{"negative amount", `{"date":"2024-01-10","category":"Food","amount":-5,"type":"Expense"}`},
		{"bad type", `{"date":"2024-01-10","category":"Food","amount":1,"type":"Transfer"}`},
		{"expense without category", `{"date":"2024-01-10","category":"","amount":1,"type":"Expense"}`},
		{"not json", `date=2024-01-10`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, srv, http.MethodPost, "/api/transactions", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", rr.Code, rr.Body.String())
			}
		})
	}

	// Nothing should have been stored.
	rr := doRequest(t, srv, http.MethodGet, "/api/transactions", "")
	if body := rr.Body.String(); body != "[]\n" {
		t.Errorf("ledger not empty after rejected creates: %s", body)
	}
}

func TestListTransactionsOrderAndFilter(t *testing.T) {
	srv, _ := newTestServer(t)
	seedScenario(t, srv)

	rr := doRequest(t, srv, http.MethodGet, "/api/transactions", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var list []map[string]any
	mustUnmarshal(t, rr.Body.Bytes(), &list)
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	// Most recent first.
	if list[0]["date"] != "2024-02-15" {
		t.Errorf("first date = %v, want 2024-02-15", list[0]["date"])
	}

	rr = doRequest(t, srv, http.MethodGet, "/api/transactions?year=2024&month=1", "")
	mustUnmarshal(t, rr.Body.Bytes(), &list)
	if len(list) != 2 {
		t.Errorf("january len = %d, want 2", len(list))
	}

	rr = doRequest(t, srv, http.MethodGet, "/api/transactions?month=13", "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("month=13 status = %d, want 400", rr.Code)
	}
}

func TestDeleteTransaction(t *testing.T) {
	srv, _ := newTestServer(t)
	id := mustCreate(t, srv, "2024-01-10", "Food", "20.00", "Expense")

	rr := doRequest(t, srv, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", id), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("delete status = %d: %s", rr.Code, rr.Body.String())
	}
	if got := decodeBody(t, rr)["success"]; got != true {
		t.Errorf("success = %v", got)
	}

	// The deletion is permanent; a second delete is a miss.
	rr = doRequest(t, srv, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", id), "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rr.Code)
	}

	rr = doRequest(t, srv, http.MethodDelete, "/api/transactions/abc", "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", rr.Code)
	}
}
