package advisor

import (
	"fmt"
	"strings"

	"fintrack/internal/core"
)

// Savings-rate thresholds for the health assessment.
const (
	rateExcellent = 20.0
	rateGood      = 10.0
)

// SpendingReport produces a deterministic spending-pattern analysis. No
// external model is involved.
func SpendingReport(s Snapshot) string {
	if s.Empty() {
		return "No transaction data available for analysis."
	}

	var b strings.Builder
	b.WriteString("Spending analysis\n\n")

	status, advice := healthAssessment(s.Summary.SavingsRate)
	fmt.Fprintf(&b, "Financial health: %s\n", status)
	fmt.Fprintf(&b, "Total income: %s\n", s.Summary.TotalIncome)
	fmt.Fprintf(&b, "Total expenses: %s\n", s.Summary.TotalExpenses)
	fmt.Fprintf(&b, "Net balance: %s\n", s.Summary.NetBalance)
	fmt.Fprintf(&b, "Savings rate: %.1f%% (%s)\n", s.Summary.SavingsRate, advice)

	if top, pct, ok := topExpenseCategory(s); ok {
		fmt.Fprintf(&b, "\nTop category: %s (%s, %.1f%% of expenses)\n", top.Category, top.Amount, pct)
		fmt.Fprintf(&b, "Categories used: %d\n", len(s.Breakdown))
		fmt.Fprintf(&b, "Transactions: %d\n", s.Summary.TransactionCount)

		b.WriteString("\nInsights:\n")
		if len(s.Breakdown) >= 5 {
			b.WriteString("- Spending is spread across a healthy number of categories.\n")
		} else {
			b.WriteString("- Consider tracking more spending categories for a fuller picture.\n")
		}
		if pct < 40 {
			b.WriteString("- No single category dominates your spending.\n")
		} else {
			fmt.Fprintf(&b, "- %s dominates your spending; look there first for cuts.\n", top.Category)
		}
	}

	return b.String()
}

// BudgetSuggestions compares current allocation against the 50/30/20 rule.
func BudgetSuggestions(s Snapshot) string {
	if s.Empty() {
		return "Add some transactions to get personalized budget suggestions."
	}
	income := s.Summary.TotalIncome
	if income.Cents <= 0 {
		return "Add income transactions to get budget recommendations."
	}

	needs := core.Money{Cents: income.Cents * 50 / 100}
	wants := core.Money{Cents: income.Cents * 30 / 100}
	savings := core.Money{Cents: income.Cents * 20 / 100}

	var b strings.Builder
	b.WriteString("Budget recommendations (50/30/20 rule)\n\n")
	fmt.Fprintf(&b, "Needs budget (50%%): %s\n", needs)
	fmt.Fprintf(&b, "Wants budget (30%%): %s\n", wants)
	fmt.Fprintf(&b, "Savings target (20%%): %s\n", savings)
	fmt.Fprintf(&b, "\nCurrent savings rate: %.1f%%\n", s.Summary.SavingsRate)
	if s.Summary.SavingsRate >= rateExcellent {
		b.WriteString("You are meeting the 20% savings target.\n")
	} else {
		fmt.Fprintf(&b, "Increase savings by %.1f percentage points to reach the 20%% target.\n",
			rateExcellent-s.Summary.SavingsRate)
	}

	if top, pct, ok := topExpenseCategory(s); ok {
		b.WriteString("\nAction items:\n")
		if pct > 40 {
			fmt.Fprintf(&b, "- Reduce %s spending, currently %.1f%% of expenses.\n", top.Category, pct)
		}
		if s.Summary.SavingsRate < rateGood {
			fmt.Fprintf(&b, "- Raise your savings rate from %.1f%% to at least 10%%.\n", s.Summary.SavingsRate)
		}
	}

	return b.String()
}

var categoryTips = map[string]string{
	"Food":           "Plan meals ahead and cook at home more often.",
	"Food & Dining":  "Plan meals ahead and cook at home more often.",
	"Shopping":       "Shop with a list and wait 24 hours before non-essential purchases.",
	"Entertainment":  "Look for free or low-cost alternatives and review streaming subscriptions.",
	"Transportation": "Use public transport or carpool where possible.",
	"Utilities":      "Watch electricity usage and switch to energy-efficient appliances.",
}

// SavingsTips returns savings advice focused on the biggest expense category.
func SavingsTips(s Snapshot) string {
	if s.Empty() {
		return "Add transactions to get personalized savings tips."
	}

	var b strings.Builder
	b.WriteString("Savings tips\n\n")

	if top, _, ok := topExpenseCategory(s); ok {
		if tip, found := categoryTips[top.Category]; found {
			fmt.Fprintf(&b, "Focus area, %s: %s\n\n", top.Category, tip)
		} else {
			fmt.Fprintf(&b, "Focus area: %s is your biggest expense category.\n\n", top.Category)
		}
	}

	b.WriteString("General tips:\n")
	b.WriteString("- Set up automatic transfers to a savings account.\n")
	b.WriteString("- Review and cancel unused subscriptions.\n")
	b.WriteString("- Compare prices before major purchases.\n")
	b.WriteString("- Set specific financial goals and track progress.\n")
	return b.String()
}

func healthAssessment(savingsRate float64) (status, advice string) {
	switch {
	case savingsRate >= rateExcellent:
		return "excellent", "keep it up"
	case savingsRate >= rateGood:
		return "good", "try to reach a 20% savings rate"
	case savingsRate >= 0:
		return "fair", "focus on reducing expenses"
	default:
		return "poor", "expenses exceed income"
	}
}

// topExpenseCategory returns the largest expense category and its share of
// total expenses. The breakdown keeps first-occurrence order, so ties go to
// the earlier category.
func topExpenseCategory(s Snapshot) (core.CategoryAmount, float64, bool) {
	if len(s.Breakdown) == 0 {
		return core.CategoryAmount{}, 0, false
	}
	top := s.Breakdown[0]
	for _, c := range s.Breakdown[1:] {
		if c.Amount.Cents > top.Amount.Cents {
			top = c
		}
	}
	pct := 0.0
	if s.Summary.TotalExpenses.Cents > 0 {
		pct = float64(top.Amount.Cents) / float64(s.Summary.TotalExpenses.Cents) * 100
	}
	return top, pct, true
}
