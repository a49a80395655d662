package advisor

import (
	"strings"
	"testing"

	"fintrack/internal/core"
)

func snapshotOf(txs ...core.Transaction) Snapshot {
	return Snapshot{
		Transactions: txs,
		Summary:      core.Summarize(txs),
		Breakdown:    core.CategoryBreakdown(txs),
		Trend:        core.MonthlyTrend(txs),
	}
}

func tx(year int, month, day int, cents int64, txType core.TransactionType, category string) core.Transaction {
	return core.Transaction{
		Date:     core.NewDate(year, month, day),
		Amount:   core.Money{Cents: cents},
		Type:     txType,
		Category: category,
	}
}

func TestSpendingReportEmpty(t *testing.T) {
	got := SpendingReport(Snapshot{})
	if got != "No transaction data available for analysis." {
		t.Errorf("unexpected empty-ledger report: %q", got)
	}
}

func TestSpendingReportHealthStatus(t *testing.T) {
	tests := []struct {
		name         string
		incomeCents  int64
		expenseCents int64
		wantStatus   string
	}{
		{"excellent at 20 percent", 100000, 80000, "excellent"},
		{"good at 10 percent", 100000, 90000, "good"},
		{"fair at zero", 100000, 100000, "fair"},
		{"poor when overspending", 100000, 120000, "poor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := snapshotOf(
				tx(2024, 1, 1, tt.incomeCents, core.Income, "Salary"),
				tx(2024, 1, 10, tt.expenseCents, core.Expense, "Food"),
			)
			got := SpendingReport(s)
			if !strings.Contains(got, "Financial health: "+tt.wantStatus) {
				t.Errorf("report missing status %q:\n%s", tt.wantStatus, got)
			}
		})
	}
}

func TestSpendingReportTopCategory(t *testing.T) {
	s := snapshotOf(
		tx(2024, 1, 1, 100000, core.Income, "Salary"),
		tx(2024, 1, 5, 30000, core.Expense, "Food"),
		tx(2024, 1, 6, 10000, core.Expense, "Transportation"),
	)
	got := SpendingReport(s)
	if !strings.Contains(got, "Top category: Food (300.00, 75.0% of expenses)") {
		t.Errorf("report missing top category line:\n%s", got)
	}
	if !strings.Contains(got, "Food dominates your spending") {
		t.Errorf("75%% share should flag a dominating category:\n%s", got)
	}
}

func TestBudgetSuggestions(t *testing.T) {
	t.Run("empty ledger", func(t *testing.T) {
		got := BudgetSuggestions(Snapshot{})
		if !strings.Contains(got, "Add some transactions") {
			t.Errorf("unexpected reply: %q", got)
		}
	})

	t.Run("no income", func(t *testing.T) {
		got := BudgetSuggestions(snapshotOf(tx(2024, 1, 5, 5000, core.Expense, "Food")))
		if !strings.Contains(got, "Add income transactions") {
			t.Errorf("unexpected reply: %q", got)
		}
	})

	t.Run("fifty thirty twenty split", func(t *testing.T) {
		got := BudgetSuggestions(snapshotOf(
			tx(2024, 1, 1, 100000, core.Income, "Salary"),
			tx(2024, 1, 5, 50000, core.Expense, "Food"),
		))
		for _, want := range []string{
			"Needs budget (50%): 500.00",
			"Wants budget (30%): 300.00",
			"Savings target (20%): 200.00",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("missing %q in:\n%s", want, got)
			}
		}
	})

	t.Run("low savings rate gets critical action item", func(t *testing.T) {
		got := BudgetSuggestions(snapshotOf(
			tx(2024, 1, 1, 100000, core.Income, "Salary"),
			tx(2024, 1, 5, 95000, core.Expense, "Food"),
		))
		if !strings.Contains(got, "at least 10%") {
			t.Errorf("5%% savings rate should trigger the critical item:\n%s", got)
		}
	})
}

func TestSavingsTips(t *testing.T) {
	t.Run("empty ledger", func(t *testing.T) {
		got := SavingsTips(Snapshot{})
		if !strings.Contains(got, "Add transactions") {
			t.Errorf("unexpected reply: %q", got)
		}
	})

	t.Run("known category gets a targeted tip", func(t *testing.T) {
		got := SavingsTips(snapshotOf(tx(2024, 1, 5, 5000, core.Expense, "Food")))
		if !strings.Contains(got, "Plan meals ahead") {
			t.Errorf("Food should get the meal-planning tip:\n%s", got)
		}
	})

	t.Run("unknown category falls back to generic focus", func(t *testing.T) {
		got := SavingsTips(snapshotOf(tx(2024, 1, 5, 5000, core.Expense, "Pets")))
		if !strings.Contains(got, "Pets is your biggest expense category") {
			t.Errorf("unknown category should still be named:\n%s", got)
		}
	})
}

func TestTopExpenseCategoryPrefersLargest(t *testing.T) {
	s := snapshotOf(
		tx(2024, 1, 5, 1000, core.Expense, "Food"),
		tx(2024, 1, 6, 9000, core.Expense, "Rent"),
	)
	top, pct, ok := topExpenseCategory(s)
	if !ok || top.Category != "Rent" {
		t.Fatalf("top = %+v, ok = %v; want Rent", top, ok)
	}
	if pct != 90.0 {
		t.Errorf("pct = %v, want 90.0", pct)
	}
}
