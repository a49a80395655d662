package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

func TestJSONResponseBuilder(t *testing.T) {
	rr := httptest.NewRecorder()
	NewJSONResponse().
		Status(http.StatusCreated).
		Header("X-Custom", "yes").
		Body(map[string]int{"id": 7}).
		Write(rr)

	if rr.Code != http.StatusCreated {
		t.Errorf("status = %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json; charset=utf-8" {
		t.Errorf("content type = %q", got)
	}
	if got := rr.Header().Get("X-Custom"); got != "yes" {
		t.Errorf("custom header = %q", got)
	}
	if rr.Body.String() != "{\"id\":7}\n" {
		t.Errorf("body = %q", rr.Body.String())
	}
}

func TestDomainErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{core.ErrInvalidAmount, http.StatusBadRequest},
		{core.ErrInvalidDate, http.StatusBadRequest},
		{core.ErrEmptyCategory, http.StatusBadRequest},
		{ledger.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("wrap: %w", ledger.ErrNotFound), http.StatusNotFound},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rr := httptest.NewRecorder()
		DomainError(tt.err).Write(rr)
		if rr.Code != tt.wantStatus {
			t.Errorf("DomainError(%v) status = %d, want %d", tt.err, rr.Code, tt.wantStatus)
		}
	}

	// Internal causes never leak to the client.
	rr := httptest.NewRecorder()
	DomainError(errors.New("disk on fire")).Write(rr)
	if body := rr.Body.String(); body != "{\"detail\":\"internal error\"}\n" {
		t.Errorf("internal error body = %q", body)
	}
}
