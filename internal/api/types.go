package api

import (
	"time"

	"github.com/rkaran/silverdash/internal/history"
	"github.com/rkaran/silverdash/internal/january"
	"github.com/rkaran/silverdash/internal/model"
	"github.com/rkaran/silverdash/internal/purchases"
	"github.com/rkaran/silverdash/internal/version"
)

// Health is the /healthz answer.
type Health struct {
	Status     string                 `json:"status"`
	Version    version.Info           `json:"version"`
	Components map[string]interface{} `json:"components"`
}

// Currency is one entry of the conversion table.
type Currency struct {
	Code string `json:"code"`
	Rate string `json:"rate"`
}

// CurrenciesResponse lists the supported currencies.
type CurrenciesResponse struct {
	Base       string     `json:"base"`
	Currencies []Currency `json:"currencies"`
}

// QuoteParams are the query parameters of a purchase quote. Zero values
// leave the server defaults in place.
type QuoteParams struct {
	Weight       float64
	Unit         string
	PricePerGram float64
	Currency     string
}

// Bracket names a price bracket with its label.
type Bracket struct {
	Name  history.Bracket `json:"name"`
	Label string          `json:"label"`
}

// HistoryResponse is the filtered price series.
type HistoryResponse struct {
	Bracket  history.Bracket    `json:"bracket"`
	Label    string             `json:"label"`
	Brackets []Bracket          `json:"brackets"`
	Stats    history.Stats      `json:"stats"`
	Metrics  []model.Metric     `json:"metrics"`
	Points   []model.PricePoint `json:"points"`
}

// StatesResponse is the state purchase table.
type StatesResponse struct {
	Source   string                `json:"source"`
	Origin   string                `json:"origin,omitempty"`
	Warnings []string              `json:"warnings,omitempty"`
	LoadedAt time.Time             `json:"loaded_at"`
	Search   string                `json:"search,omitempty"`
	Summary  purchases.Summary     `json:"summary"`
	Metrics  []model.Metric        `json:"metrics"`
	Insights purchases.Insights    `json:"insights"`
	Rows     []model.StatePurchase `json:"rows"`
}

// TopStatesResponse holds the n largest purchasers.
type TopStatesResponse struct {
	N      int                   `json:"n"`
	Source string                `json:"source"`
	Rows   []model.StatePurchase `json:"rows"`
}

// ReloadResponse describes the dataset after a reload.
type ReloadResponse struct {
	Type     string    `json:"type"`
	Source   string    `json:"source"`
	Origin   string    `json:"origin,omitempty"`
	Rows     int       `json:"rows"`
	Warnings []string  `json:"warnings,omitempty"`
	At       time.Time `json:"at"`
}

// JanuaryResponse is the January daily purchase analysis.
type JanuaryResponse struct {
	Days          []model.DailyPurchase      `json:"days"`
	Summary       january.Summary            `json:"summary"`
	Metrics       []model.Metric             `json:"metrics"`
	Cumulative    []model.CumulativePurchase `json:"cumulative"`
	Weekly        []model.WeeklyTotal        `json:"weekly"`
	Growth        january.Growth             `json:"growth"`
	GrowthMetrics []model.Metric             `json:"growth_metrics"`
}

// Upload describes a stored GeoJSON file.
type Upload struct {
	ID            string    `json:"id"`
	Name          string    `json:"name,omitempty"`
	Size          int       `json:"size"`
	Features      int       `json:"features"`
	Columns       []string  `json:"columns"`
	DefaultColumn string    `json:"default_column"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// JoinRecord is one feature with its joined quantity. QuantityKg is nil
// when no purchase row matched.
type JoinRecord struct {
	Name       string   `json:"name"`
	Normalized string   `json:"normalized"`
	QuantityKg *float64 `json:"silver_purchased_kg"`
}

// JoinResponse is the join of an upload with the state table.
type JoinResponse struct {
	Column         string       `json:"column"`
	Records        []JoinRecord `json:"records"`
	Total          int          `json:"total"`
	Matched        int          `json:"matched"`
	Unmatched      int          `json:"unmatched"`
	UnmatchedNames []string     `json:"unmatched_names"`
	FeatureNames   []string     `json:"feature_names"`
	PurchaseNames  []string     `json:"purchase_names"`
	Warnings       []string     `json:"warnings,omitempty"`
}
