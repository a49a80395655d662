package advisor

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a personal finance advisor. Base your advice on the
user's actual transaction data. Give specific, actionable recommendations with
numbers, reference standard benchmarks (50/30/20 rule, 20% savings rate,
3-6 month emergency fund), and keep answers concise.`

// BuildPrompt renders the snapshot and the user's question into a single
// deterministic prompt. Same snapshot and question, same prompt.
func BuildPrompt(question string, s Snapshot) string {
	var b strings.Builder

	b.WriteString("User's financial data:\n")
	if s.Empty() {
		b.WriteString("No transactions recorded.\n")
	} else {
		fmt.Fprintf(&b, "Total income: %s\n", s.Summary.TotalIncome)
		fmt.Fprintf(&b, "Total expenses: %s\n", s.Summary.TotalExpenses)
		fmt.Fprintf(&b, "Net balance: %s\n", s.Summary.NetBalance)
		fmt.Fprintf(&b, "Savings rate: %.1f%%\n", s.Summary.SavingsRate)
		fmt.Fprintf(&b, "Transactions: %d\n", s.Summary.TransactionCount)

		if len(s.Breakdown) > 0 {
			b.WriteString("\nExpenses by category:\n")
			for _, c := range s.Breakdown {
				fmt.Fprintf(&b, "- %s: %s\n", c.Category, c.Amount)
			}
		}
		if len(s.Trend) > 0 {
			b.WriteString("\nMonthly expenses:\n")
			for _, m := range s.Trend {
				fmt.Fprintf(&b, "- %s: %s\n", m.Month, m.Amount)
			}
		}
	}

	b.WriteString("\nQuestion: ")
	b.WriteString(question)
	return b.String()
}
