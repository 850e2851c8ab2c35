package purchases

import (
	"sort"
	"strings"

	"github.com/rkaran/silverdash/internal/format"
	"github.com/rkaran/silverdash/internal/model"
)

// Summary holds the headline figures of a state table.
type Summary struct {
	States   int     `json:"states"`
	TotalKg  float64 `json:"total_kg"`
	TopState string  `json:"top_state"`
	MeanKg   float64 `json:"mean_kg"`
}

// Summarize computes totals over rows.
func Summarize(rows []model.StatePurchase) Summary {
	s := Summary{States: len(rows)}
	if len(rows) == 0 {
		return s
	}
	for _, r := range rows {
		s.TotalKg += r.QuantityKg
	}
	s.MeanKg = s.TotalKg / float64(len(rows))
	s.TopState = Sorted(rows)[0].State
	return s
}

// Metrics renders the summary as dashboard cards.
func (s Summary) Metrics() []model.Metric {
	return []model.Metric{
		{Label: "Total Purchases", Value: format.Kilograms(s.TotalKg), Delta: "All states"},
		{Label: "Top State", Value: s.TopState, Delta: "Highest"},
		{Label: "Avg per State", Value: format.Kilograms(s.MeanKg), Delta: "Average"},
	}
}

// Sorted returns a copy of rows ordered by quantity, largest first.
// Rows with equal quantities keep their input order.
func Sorted(rows []model.StatePurchase) []model.StatePurchase {
	out := make([]model.StatePurchase, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].QuantityKg > out[j].QuantityKg
	})
	return out
}

// Search keeps rows whose state contains term, ignoring case.
// An empty term keeps everything.
func Search(rows []model.StatePurchase, term string) []model.StatePurchase {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return rows
	}
	out := make([]model.StatePurchase, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.State), term) {
			out = append(out, r)
		}
	}
	return out
}

// Top returns the n largest purchasers.
func Top(rows []model.StatePurchase, n int) []model.StatePurchase {
	sorted := Sorted(rows)
	if n < 0 {
		n = 0
	}
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// Insights compares the largest and smallest purchasers.
type Insights struct {
	Highest      model.StatePurchase `json:"highest"`
	Lowest       model.StatePurchase `json:"lowest"`
	DifferenceKg float64             `json:"difference_kg"`
}

// InsightsOf finds the highest and lowest rows; on ties the first row wins.
func InsightsOf(rows []model.StatePurchase) Insights {
	if len(rows) == 0 {
		return Insights{}
	}
	hi, lo := rows[0], rows[0]
	for _, r := range rows[1:] {
		if r.QuantityKg > hi.QuantityKg {
			hi = r
		}
		if r.QuantityKg < lo.QuantityKg {
			lo = r
		}
	}
	return Insights{Highest: hi, Lowest: lo, DifferenceKg: hi.QuantityKg - lo.QuantityKg}
}
