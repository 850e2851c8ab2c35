// Package january holds the January daily purchase series and its weekly
// breakdown.
package january

import (
	"fmt"

	"github.com/rkaran/silverdash/internal/format"
	"github.com/rkaran/silverdash/internal/model"
)

// DaysInMonth is the length of the series.
const DaysInMonth = 31

// Weeks is the number of weekly buckets; the last one absorbs days 22-31.
const Weeks = 4

var purchasesKg = [DaysInMonth]float64{
	120, 135, 128, 142, 155, 148, 160, 175, 182, 165,
	170, 185, 192, 188, 195, 205, 210, 198, 215, 220,
	225, 235, 240, 230, 245, 250, 255, 260, 248, 270, 275,
}

// Daily returns the purchase series for days 1 through 31.
func Daily() []model.DailyPurchase {
	out := make([]model.DailyPurchase, DaysInMonth)
	for i, q := range purchasesKg {
		out[i] = model.DailyPurchase{Day: i + 1, QuantityKg: q}
	}
	return out
}

// Summary holds the headline figures for the month.
type Summary struct {
	TotalKg    float64 `json:"total_kg"`
	HighestDay int     `json:"highest_day"`
	HighestKg  float64 `json:"highest_kg"`
	MeanKg     float64 `json:"mean_kg"`
	LowestDay  int     `json:"lowest_day"`
	LowestKg   float64 `json:"lowest_kg"`
}

// Summarize computes the month summary. On ties the earliest day wins.
func Summarize(days []model.DailyPurchase) Summary {
	if len(days) == 0 {
		return Summary{}
	}

	s := Summary{
		HighestDay: days[0].Day,
		HighestKg:  days[0].QuantityKg,
		LowestDay:  days[0].Day,
		LowestKg:   days[0].QuantityKg,
	}
	for _, d := range days {
		s.TotalKg += d.QuantityKg
		if d.QuantityKg > s.HighestKg {
			s.HighestDay, s.HighestKg = d.Day, d.QuantityKg
		}
		if d.QuantityKg < s.LowestKg {
			s.LowestDay, s.LowestKg = d.Day, d.QuantityKg
		}
	}
	s.MeanKg = s.TotalKg / float64(len(days))
	return s
}

// Metrics renders the summary as dashboard cards.
func (s Summary) Metrics() []model.Metric {
	return []model.Metric{
		{Label: "Total (January)", Value: format.Kilograms(s.TotalKg), Delta: "All days"},
		{Label: "Highest Day", Value: fmt.Sprintf("Day %d", s.HighestDay), Delta: format.Kilograms(s.HighestKg)},
		{Label: "Daily Avg", Value: format.Number(s.MeanKg, 1) + " kg", Delta: "Average"},
		{Label: "Lowest Day", Value: fmt.Sprintf("Day %d", s.LowestDay), Delta: format.Kilograms(s.LowestKg)},
	}
}

// Cumulative returns the running total through each day.
func Cumulative(days []model.DailyPurchase) []model.CumulativePurchase {
	out := make([]model.CumulativePurchase, len(days))
	var total float64
	for i, d := range days {
		total += d.QuantityKg
		out[i] = model.CumulativePurchase{Day: d.Day, CumulativeKg: total}
	}
	return out
}

// WeekOf maps a day of the month onto its week: 1-7, 8-14, 15-21, 22-31.
func WeekOf(day int) int {
	w := (day-1)/7 + 1
	if w > Weeks {
		w = Weeks
	}
	if w < 1 {
		w = 1
	}
	return w
}

// Weekly buckets days into the four weeks. Each day lands in exactly one week.
func Weekly(days []model.DailyPurchase) []model.WeeklyTotal {
	weeks := make([]model.WeeklyTotal, Weeks)
	for i := range weeks {
		first := i*7 + 1
		last := first + 6
		if i == Weeks-1 {
			last = DaysInMonth
		}
		weeks[i] = model.WeeklyTotal{
			Week:     i + 1,
			Label:    fmt.Sprintf("Week %d (%d-%d)", i+1, first, last),
			FirstDay: first,
			LastDay:  last,
		}
	}
	for _, d := range days {
		weeks[WeekOf(d.Day)-1].TotalKg += d.QuantityKg
	}
	return weeks
}

// Growth compares the last week with the first.
type Growth struct {
	DeltaKg    float64 `json:"delta_kg"`
	DeltaPct   float64 `json:"delta_pct"`
	BestWeek   string  `json:"best_week"`
	BestWeekKg float64 `json:"best_week_kg"`
}

// GrowthOf computes week-over-month growth from weekly totals.
// A zero first week reports 0% rather than dividing by zero.
func GrowthOf(weeks []model.WeeklyTotal) Growth {
	if len(weeks) == 0 {
		return Growth{}
	}

	first, last := weeks[0].TotalKg, weeks[len(weeks)-1].TotalKg
	g := Growth{DeltaKg: last - first}
	if first != 0 {
		g.DeltaPct = (last - first) / first * 100
	}

	best := weeks[0]
	for _, w := range weeks[1:] {
		if w.TotalKg > best.TotalKg {
			best = w
		}
	}
	g.BestWeek = fmt.Sprintf("Week %d", best.Week)
	g.BestWeekKg = best.TotalKg
	return g
}

// Metrics renders growth as dashboard cards.
func (g Growth) Metrics() []model.Metric {
	return []model.Metric{
		{
			Label: "Growth (Week 1 to Week 4)",
			Value: format.Kilograms(g.DeltaKg),
			Delta: format.Number(g.DeltaPct, 1) + "%",
		},
		{Label: "Best Week", Value: g.BestWeek, Delta: format.Kilograms(g.BestWeekKg)},
	}
}
