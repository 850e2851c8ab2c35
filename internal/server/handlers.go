package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rkaran/silverdash/internal/calculator"
	"github.com/rkaran/silverdash/internal/history"
	"github.com/rkaran/silverdash/internal/january"
	"github.com/rkaran/silverdash/internal/model"
	"github.com/rkaran/silverdash/internal/purchases"
)

type currency struct {
	Code string `json:"code"`
	Rate string `json:"rate"`
}

func (s *Server) currenciesHandler(w http.ResponseWriter, r *http.Request) {
	rates := s.deps.Calculator.Rates()
	out := make([]currency, 0, len(rates.Codes()))
	for _, code := range rates.Codes() {
		rate, _ := rates.Rate(code)
		out = append(out, currency{Code: code, Rate: rate.String()})
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"base":       calculator.BaseCurrency,
		"currencies": out,
	})
}

func (s *Server) quoteHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := calculator.DefaultRequest()

	var err error
	if req.Weight, err = floatParam(q.Get("weight"), req.Weight); err != nil {
		respondWithError(w, http.StatusBadRequest, "weight: "+err.Error(), quoteHints()...)
		return
	}
	if req.PricePerGram, err = floatParam(q.Get("price"), req.PricePerGram); err != nil {
		respondWithError(w, http.StatusBadRequest, "price: "+err.Error(), quoteHints()...)
		return
	}
	if v := q.Get("unit"); v != "" {
		req.Unit = calculator.Unit(strings.ToLower(v))
	}
	if v := q.Get("currency"); v != "" {
		req.Currency = v
	}

	quote, err := s.deps.Calculator.Quote(req)
	if err != nil {
		var verrs validator.ValidationErrors
		switch {
		case errors.Is(err, calculator.ErrUnknownCurrency):
			respondWithError(w, http.StatusUnprocessableEntity, err.Error(),
				"Supported currencies: "+strings.Join(s.deps.Calculator.Rates().Codes(), ", "))
		case errors.As(err, &verrs):
			respondWithError(w, http.StatusUnprocessableEntity, err.Error(), quoteHints()...)
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	respondWithJSON(w, http.StatusOK, quote)
}

func quoteHints() []string {
	return []string{
		fmt.Sprintf("weight must be between %g and %g", calculator.MinWeight, calculator.MaxWeight),
		"unit must be grams or kilograms",
		fmt.Sprintf("price must be between %g and %g INR per gram", calculator.MinPricePerGram, calculator.MaxPricePerGram),
	}
}

func floatParam(v string, def float64) (float64, error) {
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", v)
	}
	return f, nil
}

type historyResponse struct {
	Bracket  history.Bracket    `json:"bracket"`
	Label    string             `json:"label"`
	Brackets []bracketInfo      `json:"brackets"`
	Stats    history.Stats      `json:"stats"`
	Metrics  []model.Metric     `json:"metrics"`
	Points   []model.PricePoint `json:"points"`
}

type bracketInfo struct {
	Name  history.Bracket `json:"name"`
	Label string          `json:"label"`
}

func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	bracket, err := history.ParseBracket(r.URL.Query().Get("bracket"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), bracketHints()...)
		return
	}

	points := history.Filter(history.Series(), bracket)
	stats := history.Summarize(points)

	respondWithJSON(w, http.StatusOK, historyResponse{
		Bracket:  bracket,
		Label:    bracket.Label(),
		Brackets: bracketList(),
		Stats:    stats,
		Metrics:  stats.Metrics(),
		Points:   points,
	})
}

func bracketList() []bracketInfo {
	out := make([]bracketInfo, 0, len(history.Brackets()))
	for _, b := range history.Brackets() {
		out = append(out, bracketInfo{Name: b, Label: b.Label()})
	}
	return out
}

func bracketHints() []string {
	hints := make([]string, 0, len(history.Brackets()))
	for _, b := range history.Brackets() {
		hints = append(hints, fmt.Sprintf("%s (%s)", b, b.Label()))
	}
	return hints
}

type statesResponse struct {
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

func (s *Server) statesHandler(w http.ResponseWriter, r *http.Request) {
	ds := s.deps.States.Current(r.Context())
	term := strings.TrimSpace(r.URL.Query().Get("search"))
	summary := purchases.Summarize(ds.Rows)

	respondWithJSON(w, http.StatusOK, statesResponse{
		Source:   ds.Source,
		Origin:   ds.Origin,
		Warnings: ds.Warnings,
		LoadedAt: ds.LoadedAt,
		Search:   term,
		Summary:  summary,
		Metrics:  summary.Metrics(),
		Insights: purchases.InsightsOf(ds.Rows),
		Rows:     purchases.Sorted(purchases.Search(ds.Rows, term)),
	})
}

func (s *Server) topStatesHandler(w http.ResponseWriter, r *http.Request) {
	n := 5
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("n must be a positive integer, got %q", v))
			return
		}
		n = parsed
	}

	ds := s.deps.States.Current(r.Context())
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"n":      n,
		"source": ds.Source,
		"rows":   purchases.Top(ds.Rows, n),
	})
}

func (s *Server) reloadStatesHandler(w http.ResponseWriter, r *http.Request) {
	ds := s.deps.States.Reload(r.Context())
	respondWithJSON(w, http.StatusOK, DatasetEvent(ds))
}

type januaryResponse struct {
	Days          []model.DailyPurchase      `json:"days"`
	Summary       january.Summary            `json:"summary"`
	Metrics       []model.Metric             `json:"metrics"`
	Cumulative    []model.CumulativePurchase `json:"cumulative"`
	Weekly        []model.WeeklyTotal        `json:"weekly"`
	Growth        january.Growth             `json:"growth"`
	GrowthMetrics []model.Metric             `json:"growth_metrics"`
}

func (s *Server) januaryHandler(w http.ResponseWriter, r *http.Request) {
	days := january.Daily()
	summary := january.Summarize(days)
	weeks := january.Weekly(days)
	growth := january.GrowthOf(weeks)

	respondWithJSON(w, http.StatusOK, januaryResponse{
		Days:          days,
		Summary:       summary,
		Metrics:       summary.Metrics(),
		Cumulative:    january.Cumulative(days),
		Weekly:        weeks,
		Growth:        growth,
		GrowthMetrics: growth.Metrics(),
	})
}
