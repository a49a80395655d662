package http

import (
	"net/http"
	"testing"
	"time"
)

func TestDashboardFiltered(t *testing.T) {
	srv, _ := newTestServer(t)
	seedScenario(t, srv)

	rr := doRequest(t, srv, http.MethodGet, "/api/dashboard?year=2024&month=1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)

	summary := body["summary"].(map[string]any)
	if summary["total_income"].(float64) != 1000 {
		t.Errorf("total_income = %v, want 1000", summary["total_income"])
	}
	if summary["total_expenses"].(float64) != 200 {
		t.Errorf("total_expenses = %v, want 200", summary["total_expenses"])
	}
	if summary["net_balance"].(float64) != 800 {
		t.Errorf("net_balance = %v, want 800", summary["net_balance"])
	}
	if summary["savings_rate"].(float64) != 80 {
		t.Errorf("savings_rate = %v, want 80", summary["savings_rate"])
	}
	if summary["transaction_count"].(float64) != 2 {
		t.Errorf("transaction_count = %v, want 2", summary["transaction_count"])
	}
	if summary["current_month"].(float64) != 1 || summary["current_year"].(float64) != 2024 {
		t.Errorf("filter echo = %v/%v", summary["current_month"], summary["current_year"])
	}

	categories := body["category_chart"].([]any)
	if len(categories) != 1 {
		t.Fatalf("category_chart len = %d, want 1", len(categories))
	}
	food := categories[0].(map[string]any)
	if food["category"] != "Food" || food["amount"].(float64) != 200 {
		t.Errorf("category_chart[0] = %v", food)
	}

	// Trend covers the whole year when a year filter is present.
	trend := body["monthly_chart"].([]any)
	if len(trend) != 2 {
		t.Fatalf("monthly_chart len = %d, want 2", len(trend))
	}
	first := trend[0].(map[string]any)
	second := trend[1].(map[string]any)
	if first["month"] != "2024-01" || first["amount"].(float64) != 200 {
		t.Errorf("trend[0] = %v", first)
	}
	if second["month"] != "2024-02" || second["amount"].(float64) != 50 {
		t.Errorf("trend[1] = %v", second)
	}

	years := body["available_years"].([]any)
	if len(years) != 1 || years[0].(float64) != 2024 {
		t.Errorf("available_years = %v", years)
	}
	months := body["available_months"].([]any)
	if len(months) != 2 || months[0].(float64) != 1 || months[1].(float64) != 2 {
		t.Errorf("available_months = %v", months)
	}
}

func TestDashboardDefaultsToCurrentMonth(t *testing.T) {
	srv, _ := newTestServer(t)
	now := time.Now()
	today := now.Format("2006-01-02")
	mustCreate(t, srv, today, "Food", "30.00", "Expense")
	mustCreate(t, srv, "2000-06-15", "Food", "999.00", "Expense")

	rr := doRequest(t, srv, http.MethodGet, "/api/dashboard", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := decodeBody(t, rr)
	summary := body["summary"].(map[string]any)

	// Only the current month's expense counts toward the summary.
	if summary["total_expenses"].(float64) != 30 {
		t.Errorf("total_expenses = %v, want 30", summary["total_expenses"])
	}
	if summary["current_month"].(float64) != float64(now.Month()) {
		t.Errorf("current_month = %v, want %d", summary["current_month"], now.Month())
	}
	if summary["current_year"].(float64) != float64(now.Year()) {
		t.Errorf("current_year = %v, want %d", summary["current_year"], now.Year())
	}

	// Both years remain offered for filtering.
	years := body["available_years"].([]any)
	if len(years) != 2 {
		t.Errorf("available_years = %v, want two entries", years)
	}
}

func TestDashboardEmptyLedger(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doRequest(t, srv, http.MethodGet, "/api/dashboard", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := decodeBody(t, rr)
	summary := body["summary"].(map[string]any)
	for _, key := range []string{"total_income", "total_expenses", "net_balance", "savings_rate", "avg_expense", "transaction_count"} {
		if summary[key].(float64) != 0 {
			t.Errorf("%s = %v, want 0", key, summary[key])
		}
	}
	if got := body["category_chart"].([]any); len(got) != 0 {
		t.Errorf("category_chart = %v, want empty", got)
	}
}

func TestYearlyDashboard(t *testing.T) {
	srv, _ := newTestServer(t)
	seedScenario(t, srv)

	rr := doRequest(t, srv, http.MethodGet, "/api/dashboard/yearly?year=2024", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := decodeBody(t, rr)
	summary := body["summary"].(map[string]any)
	if summary["total_expenses"].(float64) != 250 {
		t.Errorf("total_expenses = %v, want 250", summary["total_expenses"])
	}
	if summary["savings_rate"].(float64) != 75 {
		t.Errorf("savings_rate = %v, want 75", summary["savings_rate"])
	}
	if summary["year"].(float64) != 2024 {
		t.Errorf("year = %v", summary["year"])
	}

	rr = doRequest(t, srv, http.MethodGet, "/api/dashboard/yearly", "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("missing year status = %d, want 400", rr.Code)
	}
}

func TestCompareMonths(t *testing.T) {
	srv, _ := newTestServer(t)
	mustCreate(t, srv, "2024-01-10", "Food", "200.00", "Expense")
	mustCreate(t, srv, "2024-02-15", "Food", "50.00", "Expense")

	rr := doRequest(t, srv, http.MethodGet, "/api/compare?year_a=2024&month_a=1&year_b=2024&month_b=2", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)

	comparison := body["comparison"].(map[string]any)
	if comparison["difference"].(float64) != 150 {
		t.Errorf("difference = %v, want 150", comparison["difference"])
	}
	if comparison["percent_change"].(float64) != 300 {
		t.Errorf("percent_change = %v, want 300", comparison["percent_change"])
	}
	if comparison["narrative"] != "You spent 150.00 more than in the comparison period." {
		t.Errorf("narrative = %v", comparison["narrative"])
	}

	periodA := body["period_a"].(map[string]any)
	if periodA["summary"].(map[string]any)["total_expenses"].(float64) != 200 {
		t.Errorf("period_a expenses = %v", periodA["summary"])
	}
}

func TestCompareAgainstEmptyPeriod(t *testing.T) {
	srv, _ := newTestServer(t)
	mustCreate(t, srv, "2024-01-10", "Food", "200.00", "Expense")

	// A comparison against an empty period still computes.
	rr := doRequest(t, srv, http.MethodGet, "/api/compare?year_a=2024&month_a=1&year_b=2023&month_b=1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	comparison := decodeBody(t, rr)["comparison"].(map[string]any)
	if comparison["difference"].(float64) != 200 {
		t.Errorf("difference = %v, want 200", comparison["difference"])
	}
	if comparison["percent_change"].(float64) != 0 {
		t.Errorf("percent_change = %v, want 0 against empty period", comparison["percent_change"])
	}

	rr = doRequest(t, srv, http.MethodGet, "/api/compare?year_a=2024", "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("missing year_b status = %d, want 400", rr.Code)
	}

	// Mixing a monthly period with a yearly one is rejected.
	rr = doRequest(t, srv, http.MethodGet, "/api/compare?year_a=2024&month_a=1&year_b=2023", "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("mixed-mode status = %d, want 400", rr.Code)
	}
}

func TestComparisonSeries(t *testing.T) {
	srv, _ := newTestServer(t)
	mustCreate(t, srv, "2023-06-10", "Food", "100.00", "Expense")
	mustCreate(t, srv, "2024-01-10", "Food", "200.00", "Expense")
	mustCreate(t, srv, "2024-01-12", "Rent", "800.00", "Expense")
	mustCreate(t, srv, "2024-02-15", "Rent", "800.00", "Expense")

	rr := doRequest(t, srv, http.MethodGet, "/api/comparison", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := decodeBody(t, rr)

	monthly := body["monthly_comparison"].([]any)
	if len(monthly) != 3 {
		t.Fatalf("monthly_comparison len = %d, want 3", len(monthly))
	}
	first := monthly[0].(map[string]any)
	if first["period"] != "2023-06" || first["year"].(float64) != 2023 || first["month"].(float64) != 6 {
		t.Errorf("monthly_comparison[0] = %v", first)
	}

	yearly := body["yearly_comparison"].([]any)
	if len(yearly) != 2 {
		t.Fatalf("yearly_comparison len = %d, want 2", len(yearly))
	}
	y2024 := yearly[1].(map[string]any)
	if y2024["year"].(float64) != 2024 || y2024["amount"].(float64) != 1800 {
		t.Errorf("yearly_comparison[1] = %v", y2024)
	}

	trends := body["category_trends"].([]any)
	if len(trends) != 2 {
		t.Fatalf("category_trends len = %d, want 2", len(trends))
	}
	// Largest category first.
	rent := trends[0].(map[string]any)
	if rent["category"] != "Rent" || rent["total"].(float64) != 1600 {
		t.Errorf("category_trends[0] = %v", rent)
	}
	if data := rent["data"].([]any); len(data) != 2 {
		t.Errorf("rent trend data = %v", data)
	}
}

func TestComparisonEmptyLedger(t *testing.T) {
	srv, _ := newTestServer(t)
	rr := doRequest(t, srv, http.MethodGet, "/api/comparison", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := decodeBody(t, rr)
	for _, key := range []string{"monthly_comparison", "yearly_comparison", "category_trends"} {
		if got := body[key].([]any); len(got) != 0 {
			t.Errorf("%s = %v, want empty", key, got)
		}
	}
}

func TestDashboardRejectsBadFilters(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, path := range []string{
		"/api/dashboard?month=0",
		"/api/dashboard?month=13",
		"/api/dashboard?year=abc",
	} {
		rr := doRequest(t, srv, http.MethodGet, path, "")
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", path, rr.Code)
		}
	}
}
