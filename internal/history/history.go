// Package history generates the historical silver price series and filters it
// into price brackets.
package history

import (
	"fmt"
	"time"

	"github.com/rkaran/silverdash/internal/format"
	"github.com/rkaran/silverdash/internal/model"
)

// Series bounds, inclusive.
var (
	SeriesStart = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	SeriesEnd   = time.Date(2024, time.January, 30, 0, 0, 0, 0, time.UTC)
)

// Bracket boundaries in INR per kilogram.
const (
	LowerBound = 20000.0
	UpperBound = 30000.0
)

// Bracket selects a price range of the series.
type Bracket string

// Supported brackets. Low, Mid and High partition the series.
const (
	BracketAll  Bracket = "all"
	BracketLow  Bracket = "le20000" // price <= 20000
	BracketMid  Bracket = "between" // 20000 < price < 30000
	BracketHigh Bracket = "ge30000" // price >= 30000
)

// Brackets lists every bracket in display order.
func Brackets() []Bracket {
	return []Bracket{BracketAll, BracketLow, BracketMid, BracketHigh}
}

// Label is the human-readable bracket name.
func (b Bracket) Label() string {
	switch b {
	case BracketLow:
		return "Less than or equal to 20000"
	case BracketMid:
		return "Between 20000 and 30000"
	case BracketHigh:
		return "Greater than or equal to 30000"
	default:
		return "All"
	}
}

// ParseBracket accepts a bracket name or label; empty means all.
func ParseBracket(s string) (Bracket, error) {
	if s == "" {
		return BracketAll, nil
	}
	for _, b := range Brackets() {
		if s == string(b) || s == b.Label() {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown price bracket %q", s)
}

// Contains reports whether price falls inside the bracket.
func (b Bracket) Contains(price float64) bool {
	switch b {
	case BracketLow:
		return price <= LowerBound
	case BracketMid:
		return price > LowerBound && price < UpperBound
	case BracketHigh:
		return price >= UpperBound
	default:
		return true
	}
}

// PriceOn is the synthetic price for the i-th day of the series.
func PriceOn(i int) float64 {
	return float64(18000 + i*5 + (i%7)*500)
}

// Series returns the daily price series from SeriesStart through SeriesEnd.
func Series() []model.PricePoint {
	days := int(SeriesEnd.Sub(SeriesStart).Hours()/24) + 1
	points := make([]model.PricePoint, days)
	for i := range points {
		points[i] = model.PricePoint{
			Date:          SeriesStart.AddDate(0, 0, i),
			PriceINRPerKg: PriceOn(i),
		}
	}
	return points
}

// Filter keeps the points inside bracket, preserving order.
func Filter(points []model.PricePoint, b Bracket) []model.PricePoint {
	out := make([]model.PricePoint, 0, len(points))
	for _, p := range points {
		if b.Contains(p.PriceINRPerKg) {
			out = append(out, p)
		}
	}
	return out
}

// Stats summarises a filtered series.
type Stats struct {
	Count int     `json:"count"`
	Max   float64 `json:"max"`
	Min   float64 `json:"min"`
	Mean  float64 `json:"mean"`
	Range float64 `json:"range"`
}

// Summarize computes Stats. An empty series yields the zero Stats.
func Summarize(points []model.PricePoint) Stats {
	if len(points) == 0 {
		return Stats{}
	}

	s := Stats{
		Count: len(points),
		Max:   points[0].PriceINRPerKg,
		Min:   points[0].PriceINRPerKg,
	}
	var sum float64
	for _, p := range points {
		sum += p.PriceINRPerKg
		if p.PriceINRPerKg > s.Max {
			s.Max = p.PriceINRPerKg
		}
		if p.PriceINRPerKg < s.Min {
			s.Min = p.PriceINRPerKg
		}
	}
	s.Mean = sum / float64(len(points))
	s.Range = s.Max - s.Min
	return s
}

// Metrics renders Stats as dashboard cards.
func (s Stats) Metrics() []model.Metric {
	return []model.Metric{
		{Label: "Max Price", Value: format.RupeesWhole(s.Max)},
		{Label: "Min Price", Value: format.RupeesWhole(s.Min)},
		{Label: "Avg Price", Value: format.RupeesWhole(s.Mean)},
		{Label: "Price Range", Value: format.RupeesWhole(s.Range)},
	}
}
