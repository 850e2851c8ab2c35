package january

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rkaran/silverdash/internal/model"
)

func TestDaily(t *testing.T) {
	days := Daily()
	if len(days) != DaysInMonth {
		t.Fatalf("len(Daily()) = %d, want %d", len(days), DaysInMonth)
	}
	if days[0] != (model.DailyPurchase{Day: 1, QuantityKg: 120}) {
		t.Errorf("day 1 = %+v", days[0])
	}
	if days[30] != (model.DailyPurchase{Day: 31, QuantityKg: 275}) {
		t.Errorf("day 31 = %+v", days[30])
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(Daily())

	want := Summary{
		TotalKg:    6221,
		HighestDay: 31,
		HighestKg:  275,
		MeanKg:     6221.0 / 31,
		LowestDay:  1,
		LowestKg:   120,
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}

	m := s.Metrics()
	if m[0].Value != "6,221 kg" {
		t.Errorf("total metric = %q", m[0].Value)
	}
	if m[2].Value != "200.7 kg" {
		t.Errorf("avg metric = %q", m[2].Value)
	}
}

func TestSummarize_TiesPickEarliestDay(t *testing.T) {
	days := []model.DailyPurchase{{Day: 1, QuantityKg: 5}, {Day: 2, QuantityKg: 9}, {Day: 3, QuantityKg: 9}, {Day: 4, QuantityKg: 5}}
	s := Summarize(days)
	if s.HighestDay != 2 || s.LowestDay != 1 {
		t.Errorf("HighestDay = %d, LowestDay = %d; want 2, 1", s.HighestDay, s.LowestDay)
	}
}

func TestCumulative(t *testing.T) {
	cum := Cumulative(Daily())
	if cum[0].CumulativeKg != 120 || cum[1].CumulativeKg != 255 {
		t.Errorf("cumulative start = %v, %v", cum[0].CumulativeKg, cum[1].CumulativeKg)
	}
	if last := cum[len(cum)-1]; last.Day != 31 || last.CumulativeKg != 6221 {
		t.Errorf("cumulative end = %+v, want day 31 at 6221", last)
	}
}

func TestWeekOf(t *testing.T) {
	tests := []struct {
		day, want int
	}{
		{1, 1}, {7, 1}, {8, 2}, {14, 2}, {15, 3}, {21, 3}, {22, 4}, {28, 4}, {29, 4}, {31, 4},
	}
	for _, tt := range tests {
		if got := WeekOf(tt.day); got != tt.want {
			t.Errorf("WeekOf(%d) = %d, want %d", tt.day, got, tt.want)
		}
	}
}

func TestWeekly(t *testing.T) {
	weeks := Weekly(Daily())

	want := []model.WeeklyTotal{
		{Week: 1, Label: "Week 1 (1-7)", FirstDay: 1, LastDay: 7, TotalKg: 988},
		{Week: 2, Label: "Week 2 (8-14)", FirstDay: 8, LastDay: 14, TotalKg: 1257},
		{Week: 3, Label: "Week 3 (15-21)", FirstDay: 15, LastDay: 21, TotalKg: 1468},
		{Week: 4, Label: "Week 4 (22-31)", FirstDay: 22, LastDay: 31, TotalKg: 2508},
	}
	if diff := cmp.Diff(want, weeks); diff != "" {
		t.Errorf("Weekly() mismatch (-want +got):\n%s", diff)
	}
}

func TestWeekly_SumsToTotalOnce(t *testing.T) {
	// Distinct powers of two make any double count or gap visible in the sum.
	days := make([]model.DailyPurchase, DaysInMonth)
	var total float64
	for i := range days {
		days[i] = model.DailyPurchase{Day: i + 1, QuantityKg: math.Pow(2, float64(i))}
		total += days[i].QuantityKg
	}

	var sum float64
	covered := 0
	for _, w := range Weekly(days) {
		sum += w.TotalKg
		covered += w.LastDay - w.FirstDay + 1
	}
	if sum != total {
		t.Errorf("weekly sum = %v, want %v", sum, total)
	}
	if covered != DaysInMonth {
		t.Errorf("weeks cover %d days, want %d", covered, DaysInMonth)
	}
}

func TestGrowthOf(t *testing.T) {
	g := GrowthOf(Weekly(Daily()))

	if g.DeltaKg != 1520 {
		t.Errorf("DeltaKg = %v, want 1520", g.DeltaKg)
	}
	if math.Abs(g.DeltaPct-153.846) > 0.001 {
		t.Errorf("DeltaPct = %v, want ~153.846", g.DeltaPct)
	}
	if g.BestWeek != "Week 4" || g.BestWeekKg != 2508 {
		t.Errorf("best = %s %v, want Week 4 2508", g.BestWeek, g.BestWeekKg)
	}
	if m := g.Metrics(); m[0].Delta != "153.8%" {
		t.Errorf("growth delta = %q, want 153.8%%", m[0].Delta)
	}
}

func TestGrowthOf_ZeroFirstWeek(t *testing.T) {
	g := GrowthOf([]model.WeeklyTotal{{Week: 1}, {Week: 2, TotalKg: 10}})
	if g.DeltaPct != 0 {
		t.Errorf("DeltaPct = %v, want 0", g.DeltaPct)
	}
	if g.BestWeek != "Week 2" {
		t.Errorf("BestWeek = %q, want Week 2", g.BestWeek)
	}
}
