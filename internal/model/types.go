package model

import "time"

// PricePoint is one day of the historical silver price series.
type PricePoint struct {
	Date          time.Time `json:"date"`
	PriceINRPerKg float64   `json:"price_inr_per_kg"`
}

// StatePurchase is the silver purchased in one state.
type StatePurchase struct {
	State      string  `json:"state" csv:"State" validate:"required"`
	QuantityKg float64 `json:"silver_purchased_kg" csv:"Silver_Purchased_kg" validate:"gte=0"`
}

// DailyPurchase is the silver purchased on one day of January.
type DailyPurchase struct {
	Day        int     `json:"day"`
	QuantityKg float64 `json:"silver_purchased_kg"`
}

// CumulativePurchase is a running total through a given day.
type CumulativePurchase struct {
	Day          int     `json:"day"`
	CumulativeKg float64 `json:"cumulative_kg"`
}

// WeeklyTotal sums daily purchases over an inclusive day range.
type WeeklyTotal struct {
	Week     int     `json:"week"`
	Label    string  `json:"label"` // e.g. "Week 1 (1-7)"
	FirstDay int     `json:"first_day"`
	LastDay  int     `json:"last_day"`
	TotalKg  float64 `json:"total_kg"`
}

// Dataset is a state purchase table together with where it came from.
type Dataset struct {
	Rows     []StatePurchase `json:"rows"`
	Source   string          `json:"source"`           // "csv", "postgres" or "sample"
	Origin   string          `json:"origin,omitempty"` // file path or table name
	Warnings []string        `json:"warnings,omitempty"`
	LoadedAt time.Time       `json:"loaded_at"`
}

// Dataset sources.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceSample   = "sample"
)

// Metric is a headline figure shown as a card, with a short secondary line.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta,omitempty"`
}
