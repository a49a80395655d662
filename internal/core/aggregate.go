package core

import "sort"

// Summary holds the headline metrics for a filtered transaction set.
type Summary struct {
	TotalIncome      Money   `json:"total_income"`
	TotalExpenses    Money   `json:"total_expenses"`
	NetBalance       Money   `json:"net_balance"`
	SavingsRate      float64 `json:"savings_rate"`
	AvgExpense       Money   `json:"avg_expense"`
	TransactionCount int     `json:"transaction_count"`
}

// CategoryAmount is an expense total aggregated by category name.
type CategoryAmount struct {
	Category string `json:"category"`
	Amount   Money  `json:"amount"`
}

// MonthAmount is an expense total for a single YYYY-MM bucket.
type MonthAmount struct {
	Month  string `json:"month"`
	Amount Money  `json:"amount"`
}

// Summarize computes the headline metrics over txs. It is total over its
// input: an empty set yields an all-zero summary, never an error. The
// savings rate resolves to 0 when there is no income.
func Summarize(txs []Transaction) Summary {
	var s Summary
	var expenseCount int64
	for _, t := range txs {
		switch t.Type {
		case Income:
			s.TotalIncome.Cents += t.Amount.Cents
		case Expense:
			s.TotalExpenses.Cents += t.Amount.Cents
			expenseCount++
		}
	}
	s.NetBalance.Cents = s.TotalIncome.Cents - s.TotalExpenses.Cents
	if s.TotalIncome.Cents > 0 {
		s.SavingsRate = float64(s.NetBalance.Cents) / float64(s.TotalIncome.Cents) * 100
	}
	if expenseCount > 0 {
		// Half-up rounding on the mean keeps the value within half a cent.
		s.AvgExpense.Cents = (s.TotalExpenses.Cents + expenseCount/2) / expenseCount
	}
	s.TransactionCount = len(txs)
	return s
}

// CategoryBreakdown groups expense transactions by category and sums each
// group. Income is excluded: it carries a single synthetic category and is
// not a spending view. Order is the first occurrence of each category in
// txs, which keeps the result deterministic for a given input sequence.
func CategoryBreakdown(txs []Transaction) []CategoryAmount {
	index := make(map[string]int)
	out := []CategoryAmount{}
	for _, t := range txs {
		if t.Type != Expense {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryAmount{Category: t.Category})
		}
		out[i].Amount.Cents += t.Amount.Cents
	}
	return out
}

// MonthlyTrend groups expense transactions by calendar month and sums each
// bucket, ordered chronologically ascending. Months without expenses are
// omitted; the series is sparse rather than zero-filled.
func MonthlyTrend(txs []Transaction) []MonthAmount {
	sums := make(map[string]int64)
	for _, t := range txs {
		if t.Type != Expense {
			continue
		}
		sums[t.Date.MonthKey()] += t.Amount.Cents
	}
	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]MonthAmount, 0, len(keys))
	for _, k := range keys {
		out = append(out, MonthAmount{Month: k, Amount: Money{Cents: sums[k]}})
	}
	return out
}
