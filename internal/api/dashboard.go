package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rkaran/silverdash/internal/calculator"
)

const apiPrefix = "/api/v1"

// Health returns the server health report. A 503 answer is still decoded
// so the caller can show which component failed.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var resp Health
	body, err := c.doRequest(ctx, http.MethodGet, "/healthz", nil, nil, "")
	if err != nil {
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusServiceUnavailable {
			return nil, err
		}
		body = apiErr.Body
	}
	if err := decode(body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Currencies returns the conversion table.
func (c *Client) Currencies(ctx context.Context) (*CurrenciesResponse, error) {
	var resp CurrenciesResponse
	if err := c.get(ctx, apiPrefix+"/currencies", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Quote prices a purchase.
func (c *Client) Quote(ctx context.Context, params QuoteParams) (*calculator.Quote, error) {
	query := url.Values{}
	if params.Weight != 0 {
		query.Set("weight", strconv.FormatFloat(params.Weight, 'f', -1, 64))
	}
	if params.Unit != "" {
		query.Set("unit", params.Unit)
	}
	if params.PricePerGram != 0 {
		query.Set("price", strconv.FormatFloat(params.PricePerGram, 'f', -1, 64))
	}
	if params.Currency != "" {
		query.Set("currency", params.Currency)
	}

	var resp calculator.Quote
	if err := c.get(ctx, apiPrefix+"/quote", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// History returns the price series for a bracket. An empty bracket means
// all prices.
func (c *Client) History(ctx context.Context, bracket string) (*HistoryResponse, error) {
	query := url.Values{}
	if bracket != "" {
		query.Set("bracket", bracket)
	}

	var resp HistoryResponse
	if err := c.get(ctx, apiPrefix+"/history", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// States returns the state table filtered by search.
func (c *Client) States(ctx context.Context, search string) (*StatesResponse, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}

	var resp StatesResponse
	if err := c.get(ctx, apiPrefix+"/states", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TopStates returns the n largest purchasers.
func (c *Client) TopStates(ctx context.Context, n int) (*TopStatesResponse, error) {
	query := url.Values{}
	if n > 0 {
		query.Set("n", strconv.Itoa(n))
	}

	var resp TopStatesResponse
	if err := c.get(ctx, apiPrefix+"/states/top", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ReloadStates asks the server to reload the state table.
func (c *Client) ReloadStates(ctx context.Context) (*ReloadResponse, error) {
	var resp ReloadResponse
	if err := c.send(ctx, http.MethodPost, apiPrefix+"/states/reload", nil, nil, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// January returns the January purchase analysis.
func (c *Client) January(ctx context.Context) (*JanuaryResponse, error) {
	var resp JanuaryResponse
	if err := c.get(ctx, apiPrefix+"/january", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func decode(body []byte, result any) error {
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
