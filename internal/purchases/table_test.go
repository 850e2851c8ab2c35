package purchases

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rkaran/silverdash/internal/model"
)

func TestSummarize(t *testing.T) {
	s := Summarize(Sample().Rows)

	if s.States != 10 {
		t.Errorf("States = %d, want 10", s.States)
	}
	if s.TotalKg != 14300 {
		t.Errorf("TotalKg = %v, want 14300", s.TotalKg)
	}
	if s.MeanKg != 1430 {
		t.Errorf("MeanKg = %v, want 1430", s.MeanKg)
	}
	if s.TopState != "Rajasthan" {
		t.Errorf("TopState = %q, want Rajasthan", s.TopState)
	}

	m := s.Metrics()
	if m[0].Value != "14,300 kg" {
		t.Errorf("total metric = %q, want %q", m[0].Value, "14,300 kg")
	}
}

func TestSummarize_Empty(t *testing.T) {
	if got := Summarize(nil); got != (Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero", got)
	}
}

func TestSorted_StableDescending(t *testing.T) {
	rows := []model.StatePurchase{
		{State: "A", QuantityKg: 10},
		{State: "B", QuantityKg: 30},
		{State: "C", QuantityKg: 10},
		{State: "D", QuantityKg: 20},
	}

	got := Sorted(rows)
	want := []string{"B", "D", "A", "C"}
	for i, r := range got {
		if r.State != want[i] {
			t.Errorf("Sorted[%d] = %q, want %q", i, r.State, want[i])
		}
	}
	if rows[0].State != "A" {
		t.Error("Sorted must not modify its input")
	}
}

func TestSearch(t *testing.T) {
	rows := Sample().Rows

	tests := []struct {
		term string
		want []string
	}{
		{"", []string{"Rajasthan", "Gujarat", "Karnataka", "Telangana", "Maharashtra", "Uttar Pradesh", "Delhi", "Tamil Nadu", "Punjab", "Bihar"}},
		{"pradesh", []string{"Uttar Pradesh"}},
		{"RA", []string{"Rajasthan", "Gujarat", "Maharashtra", "Uttar Pradesh"}},
		{"  delhi ", []string{"Delhi"}},
		{"kerala", []string{}},
		{"a.a", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got := []string{}
			for _, r := range Search(rows, tt.term) {
				got = append(got, r.State)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Search(%q) mismatch (-want +got):\n%s", tt.term, diff)
			}
		})
	}
}

func TestTop(t *testing.T) {
	rows := Sample().Rows

	if got := Top(rows, 3); len(got) != 3 || got[2].State != "Karnataka" {
		t.Errorf("Top(3) = %v", got)
	}
	if got := Top(rows, 50); len(got) != len(rows) {
		t.Errorf("len(Top(50)) = %d, want %d", len(got), len(rows))
	}
	if got := Top(rows, -1); len(got) != 0 {
		t.Errorf("len(Top(-1)) = %d, want 0", len(got))
	}
}

func TestInsightsOf(t *testing.T) {
	rows := []model.StatePurchase{
		{State: "A", QuantityKg: 5},
		{State: "B", QuantityKg: 9},
		{State: "C", QuantityKg: 9},
		{State: "D", QuantityKg: 5},
	}

	got := InsightsOf(rows)
	if got.Highest.State != "B" {
		t.Errorf("Highest = %q, want B", got.Highest.State)
	}
	if got.Lowest.State != "A" {
		t.Errorf("Lowest = %q, want A", got.Lowest.State)
	}
	if got.DifferenceKg != 4 {
		t.Errorf("DifferenceKg = %v, want 4", got.DifferenceKg)
	}

	if empty := InsightsOf(nil); empty != (Insights{}) {
		t.Errorf("InsightsOf(nil) = %+v, want zero", empty)
	}
}
