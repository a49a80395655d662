package http

import (
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// trendWindow is how many monthly buckets the unfiltered dashboard and the
// comparison endpoint show.
const trendWindow = 12

// categoryTrendWindow is how many monthly buckets each category trend shows.
const categoryTrendWindow = 6

// topCategoryCount limits the comparison endpoint's category trends.
const topCategoryCount = 5

// dashboardSummary extends the headline metrics with the filter echo the
// dashboard uses to label itself.
type dashboardSummary struct {
	core.Summary
	CurrentMonth int `json:"current_month,omitempty"`
	CurrentYear  int `json:"current_year,omitempty"`
}

type dashboardResponse struct {
	Summary            dashboardSummary        `json:"summary"`
	CategoryChart      []core.CategoryAmount   `json:"category_chart"`
	MonthlyChart       []core.MonthAmount      `json:"monthly_chart"`
	RecentTransactions []recentTransactionJSON `json:"recent_transactions"`
	AvailableMonths    []int                   `json:"available_months"`
	AvailableYears     []int                   `json:"available_years"`
}

// handleDashboard returns the aggregated view for an optional month/year
// filter. With no filter the view narrows to the current month.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// The filter lists reflect the requested year before the current-month
	// default kicks in, so an unfiltered dashboard still offers every year.
	rawFilter, err := parseFilter(query)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	filter, _ := parseDashboardFilter(query)

	ctx := r.Context()

	years, err := s.store.DistinctYears(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Distinct years failed", "error", err)
		InternalServerError("internal error").Write(w)
		return
	}
	months, err := s.store.DistinctMonths(ctx, rawFilter.Year)
	if err != nil {
		slog.ErrorContext(ctx, "Distinct months failed", "error", err)
		InternalServerError("internal error").Write(w)
		return
	}

	filtered, err := s.store.List(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "List transactions failed", "error", err)
		InternalServerError("internal error").Write(w)
		return
	}

	trend, err := s.monthlyChart(r, filter.Year)
	if err != nil {
		InternalServerError("internal error").Write(w)
		return
	}

	resp := dashboardResponse{
		Summary: dashboardSummary{
			Summary:      core.Summarize(filtered),
			CurrentMonth: filter.Month,
			CurrentYear:  filter.Year,
		},
		CategoryChart:      core.CategoryBreakdown(filtered),
		MonthlyChart:       trend,
		RecentTransactions: recentOf(filtered, 5),
		AvailableMonths:    months,
		AvailableYears:     years,
	}
	NewJSONResponse().Body(resp).Write(w)
}

// monthlyChart computes the trend series: all months of the given year, or
// the last 12 recorded months when no year narrows the view.
func (s *Server) monthlyChart(r *http.Request, year int) ([]core.MonthAmount, error) {
	txs, err := s.store.List(r.Context(), ledger.Filter{Year: year})
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions for trend failed", "error", err)
		return nil, err
	}
	trend := core.MonthlyTrend(txs)
	if year == 0 {
		trend = lastN(trend, trendWindow)
	}
	return trend, nil
}

type yearlyDashboardResponse struct {
	Summary       yearlySummary         `json:"summary"`
	CategoryChart []core.CategoryAmount `json:"category_chart"`
}

type yearlySummary struct {
	core.Summary
	Year int `json:"year"`
}

// handleYearlyDashboard aggregates a whole year, no month narrowing.
func (s *Server) handleYearlyDashboard(w http.ResponseWriter, r *http.Request) {
	year, err := parseRequiredYear(r.URL.Query())
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	txs, err := s.store.List(r.Context(), ledger.Filter{Year: year})
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions failed", "error", err, "year", year)
		InternalServerError("internal error").Write(w)
		return
	}

	resp := yearlyDashboardResponse{
		Summary:       yearlySummary{Summary: core.Summarize(txs), Year: year},
		CategoryChart: core.CategoryBreakdown(txs),
	}
	NewJSONResponse().Body(resp).Write(w)
}

type compareResponse struct {
	PeriodA    core.PeriodReport `json:"period_a"`
	PeriodB    core.PeriodReport `json:"period_b"`
	Comparison core.Comparison   `json:"comparison"`
}

// handleCompare aggregates two user-chosen periods independently and derives
// the spending delta between them. Comparing against an empty period is
// well-defined: its summary is all zero.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	periodA, err := parsePeriod(query, "a")
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	periodB, err := parsePeriod(query, "b")
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	if periodA.Yearly() != periodB.Yearly() {
		BadRequestError("periods must both be monthly or both be yearly").Write(w)
		return
	}

	reportA, err := s.periodReport(r, periodA)
	if err != nil {
		InternalServerError("internal error").Write(w)
		return
	}
	reportB, err := s.periodReport(r, periodB)
	if err != nil {
		InternalServerError("internal error").Write(w)
		return
	}

	resp := compareResponse{
		PeriodA:    reportA,
		PeriodB:    reportB,
		Comparison: core.Compare(reportA.Summary, reportB.Summary),
	}
	NewJSONResponse().Body(resp).Write(w)
}

func (s *Server) periodReport(r *http.Request, p core.Period) (core.PeriodReport, error) {
	txs, err := s.store.List(r.Context(), ledger.Filter{Year: p.Year, Month: p.Month})
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions failed", "error", err,
			"year", p.Year, "month", p.Month)
		return core.PeriodReport{}, err
	}
	return core.PeriodReport{
		Period:    p,
		Summary:   core.Summarize(txs),
		Breakdown: core.CategoryBreakdown(txs),
	}, nil
}

type monthlyComparisonEntry struct {
	Period string     `json:"period"`
	Amount core.Money `json:"amount"`
	Month  int        `json:"month"`
	Year   int        `json:"year"`
}

type yearlyComparisonEntry struct {
	Year   int        `json:"year"`
	Amount core.Money `json:"amount"`
}

type categoryTrend struct {
	Category string             `json:"category"`
	Data     []core.MonthAmount `json:"data"`
	Total    core.Money         `json:"total"`
}

type comparisonResponse struct {
	MonthlyComparison []monthlyComparisonEntry `json:"monthly_comparison"`
	YearlyComparison  []yearlyComparisonEntry  `json:"yearly_comparison"`
	CategoryTrends    []categoryTrend          `json:"category_trends"`
}

// handleComparison returns the spending comparison series: the last 12
// recorded months, per-year totals, and trends for the top spending
// categories.
func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.List(r.Context(), ledger.Filter{})
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions failed", "error", err)
		InternalServerError("internal error").Write(w)
		return
	}

	resp := comparisonResponse{
		MonthlyComparison: monthlyComparison(txs),
		YearlyComparison:  yearlyComparison(txs),
		CategoryTrends:    categoryTrends(txs),
	}
	NewJSONResponse().Body(resp).Write(w)
}

func monthlyComparison(txs []core.Transaction) []monthlyComparisonEntry {
	trend := lastN(core.MonthlyTrend(txs), trendWindow)
	out := make([]monthlyComparisonEntry, 0, len(trend))
	for _, m := range trend {
		year, month := splitMonthKey(m.Month)
		out = append(out, monthlyComparisonEntry{
			Period: m.Month,
			Amount: m.Amount,
			Month:  month,
			Year:   year,
		})
	}
	return out
}

func yearlyComparison(txs []core.Transaction) []yearlyComparisonEntry {
	sums := make(map[int]int64)
	for _, t := range txs {
		if t.Type != core.Expense {
			continue
		}
		sums[t.Date.Year()] += t.Amount.Cents
	}
	years := make([]int, 0, len(sums))
	for y := range sums {
		years = append(years, y)
	}
	sort.Ints(years)
	out := make([]yearlyComparisonEntry, 0, len(years))
	for _, y := range years {
		out = append(out, yearlyComparisonEntry{Year: y, Amount: core.Money{Cents: sums[y]}})
	}
	return out
}

// categoryTrends builds monthly series for the biggest expense categories.
func categoryTrends(txs []core.Transaction) []categoryTrend {
	breakdown := core.CategoryBreakdown(txs)
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Amount.Cents > breakdown[j].Amount.Cents
	})
	if len(breakdown) > topCategoryCount {
		breakdown = breakdown[:topCategoryCount]
	}

	out := make([]categoryTrend, 0, len(breakdown))
	for _, c := range breakdown {
		var catTxs []core.Transaction
		for _, t := range txs {
			if t.Type == core.Expense && t.Category == c.Category {
				catTxs = append(catTxs, t)
			}
		}
		out = append(out, categoryTrend{
			Category: c.Category,
			Data:     lastN(core.MonthlyTrend(catTxs), categoryTrendWindow),
			Total:    c.Amount,
		})
	}
	return out
}

// recentOf takes the first n entries; lists arrive most recent first.
func recentOf(txs []core.Transaction, n int) []recentTransactionJSON {
	if len(txs) > n {
		txs = txs[:n]
	}
	out := make([]recentTransactionJSON, 0, len(txs))
	for _, t := range txs {
		out = append(out, toRecentJSON(t))
	}
	return out
}

func lastN(series []core.MonthAmount, n int) []core.MonthAmount {
	if len(series) > n {
		return series[len(series)-n:]
	}
	return series
}

// splitMonthKey parses a "YYYY-MM" bucket label.
func splitMonthKey(key string) (year, month int) {
	if len(key) != 7 {
		return 0, 0
	}
	year, _ = strconv.Atoi(key[:4])
	month, _ = strconv.Atoi(key[5:])
	return year, month
}
