package core

import "fmt"

// Period identifies a comparison window: a specific month of a year, or a
// whole year when Month is zero.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month,omitempty"`
}

// Yearly reports whether the period spans a whole year.
func (p Period) Yearly() bool {
	return p.Month == 0
}

// Label renders the period as "2024-01" or "2024".
func (p Period) Label() string {
	if p.Yearly() {
		return fmt.Sprintf("%d", p.Year)
	}
	return fmt.Sprintf("%d-%02d", p.Year, p.Month)
}

// PeriodReport pairs a period with its aggregation results.
type PeriodReport struct {
	Period    Period           `json:"period"`
	Summary   Summary          `json:"summary"`
	Breakdown []CategoryAmount `json:"category_chart"`
}

// Comparison is the derived insight between two period summaries.
type Comparison struct {
	Difference    Money   `json:"difference"`
	PercentChange float64 `json:"percent_change"`
	Narrative     string  `json:"narrative"`
}

// Compare derives the spending delta between two period summaries. The
// difference is a's expenses minus b's; the percent change is relative to b
// and resolves to 0 when b had no expenses. A comparison against an empty
// period is well-defined, never an error.
func Compare(a, b Summary) Comparison {
	diff := a.TotalExpenses.Cents - b.TotalExpenses.Cents
	c := Comparison{Difference: Money{Cents: diff}}
	if b.TotalExpenses.Cents > 0 {
		c.PercentChange = float64(diff) / float64(b.TotalExpenses.Cents) * 100
	}
	switch {
	case diff > 0:
		c.Narrative = fmt.Sprintf("You spent %s more than in the comparison period.", c.Difference)
	case diff < 0:
		c.Narrative = fmt.Sprintf("You spent %s less than in the comparison period. Great job!", Money{Cents: -diff})
	default:
		c.Narrative = "You spent exactly the same in both periods."
	}
	return c
}
