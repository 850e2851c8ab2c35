package calculator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/rkaran/silverdash/internal/format"
	"github.com/rkaran/silverdash/internal/model"
)

// Unit is the unit the purchase weight is entered in.
type Unit string

// Supported weight units.
const (
	UnitGrams     Unit = "grams"
	UnitKilograms Unit = "kilograms"
)

// Input bounds for a purchase request.
const (
	MinWeight       = 0.0
	MaxWeight       = 100.0
	MinPricePerGram = 50.0
	MaxPricePerGram = 150.0
)

var gramsPerKilogram = decimal.NewFromInt(1000)

// Request describes a silver purchase to price.
type Request struct {
	Weight       float64 `json:"weight" validate:"gte=0,lte=100"`
	Unit         Unit    `json:"unit" validate:"required,oneof=grams kilograms"`
	PricePerGram float64 `json:"price_per_gram" validate:"gte=50,lte=150"`
	Currency     string  `json:"currency" validate:"required,len=3"`
}

// DefaultRequest mirrors the calculator's initial inputs.
func DefaultRequest() Request {
	return Request{
		Weight:       1.0,
		Unit:         UnitGrams,
		PricePerGram: 75.0,
		Currency:     BaseCurrency,
	}
}

// BreakdownRow is one line of the price breakdown table.
type BreakdownRow struct {
	Description string `json:"description"`
	Value       string `json:"value"`
}

// Quote is the priced result of a Request.
type Quote struct {
	WeightGrams    decimal.Decimal `json:"weight_grams"`
	WeightKg       decimal.Decimal `json:"weight_kg"`
	PricePerGram   decimal.Decimal `json:"price_per_gram"`
	TotalINR       decimal.Decimal `json:"total_inr"`
	Currency       string          `json:"currency"`
	Rate           decimal.Decimal `json:"rate"`
	TotalConverted decimal.Decimal `json:"total_converted"`
	Summary        string          `json:"summary"`
	Metrics        []model.Metric  `json:"metrics"`
	Breakdown      []BreakdownRow  `json:"breakdown"`
}

// Calculator prices purchases against a rate table.
type Calculator struct {
	rates    *Rates
	validate *validator.Validate
}

// New creates a Calculator.
func New(rates *Rates) *Calculator {
	return &Calculator{
		rates:    rates,
		validate: validator.New(),
	}
}

// Rates returns the calculator's rate table.
func (c *Calculator) Rates() *Rates {
	return c.rates
}

// Quote validates req and prices it.
func (c *Calculator) Quote(req Request) (Quote, error) {
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if err := c.validate.Struct(req); err != nil {
		return Quote{}, fmt.Errorf("invalid request: %w", err)
	}

	rate, err := c.rates.Rate(req.Currency)
	if err != nil {
		return Quote{}, err
	}

	grams := WeightInGrams(decimal.NewFromFloat(req.Weight), req.Unit)
	price := decimal.NewFromFloat(req.PricePerGram)
	totalINR := Cost(grams, price)
	converted := totalINR.Mul(rate)

	q := Quote{
		WeightGrams:    grams,
		WeightKg:       grams.Div(gramsPerKilogram),
		PricePerGram:   price,
		TotalINR:       totalINR,
		Currency:       req.Currency,
		Rate:           rate,
		TotalConverted: converted,
	}
	q.Summary = fmt.Sprintf("At Rs%s/gram, %sg costs Rs%s",
		price.String(),
		format.Number(grams.InexactFloat64(), 0),
		format.Number(totalINR.InexactFloat64(), 2),
	)
	q.Metrics = []model.Metric{
		{
			Label: "Weight (grams)",
			Value: format.Grams(grams.InexactFloat64()),
			Delta: q.WeightKg.StringFixed(2) + " kg",
		},
		{
			Label: "Total Cost (INR)",
			Value: format.Rupees(totalINR.InexactFloat64()),
			Delta: "+" + price.StringFixed(2) + "/gram",
		},
		{
			Label: fmt.Sprintf("Total Cost (%s)", req.Currency),
			Value: format.Number(converted.InexactFloat64(), 2),
			Delta: "@" + rate.String(),
		},
	}
	q.Breakdown = []BreakdownRow{
		{Description: "Weight", Value: grams.String() + " g"},
		{Description: "Price per gram", Value: "Rs " + price.String()},
		{Description: "Total (INR)", Value: format.Rupees(totalINR.InexactFloat64())},
		{Description: fmt.Sprintf("Converted (%s)", req.Currency), Value: format.Number(converted.InexactFloat64(), 2)},
	}
	return q, nil
}

// WeightInGrams converts a weight in unit into grams.
func WeightInGrams(weight decimal.Decimal, unit Unit) decimal.Decimal {
	if unit == UnitKilograms {
		return weight.Mul(gramsPerKilogram)
	}
	return weight
}

// Cost is the INR price of grams of silver at pricePerGram.
func Cost(grams, pricePerGram decimal.Decimal) decimal.Decimal {
	return grams.Mul(pricePerGram)
}
