package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

var _ MetalPriceSource = (*MetalPriceAPISource)(nil)

var gramsPerTroyOunce = decimal.RequireFromString("31.1034768")

// MetalPriceAPISource fetches gold and silver prices from the metalpriceapi.com API.
type MetalPriceAPISource struct {
	baseURL string
	apiKey  string
	base    string
	client  *http.Client
}

// NewMetalPriceAPISource creates a new MetalPriceAPISource with the given configuration.
func NewMetalPriceAPISource(baseURL, apiKey, base string, timeoutSec int) *MetalPriceAPISource {
	if baseURL == "" {
		baseURL = "https://api.metalpriceapi.com/v1"
	}
	if base == "" {
		base = "INR"
	}
	return &MetalPriceAPISource{
		baseURL: baseURL,
		apiKey:  apiKey,
		base:    base,
		client:  &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

// Name returns the source identifier stored alongside fetched rates.
func (p *MetalPriceAPISource) Name() string { return "metalpriceapi" }

// getLatestURL forms the API URL for fetching the latest prices.
func (p *MetalPriceAPISource) getLatestURL() string {
	q := url.Values{}
	q.Set("api_key", p.apiKey)
	q.Set("base", p.base)
	q.Set("currencies", SymbolGold+","+SymbolSilver)
	return p.baseURL + "/latest?" + q.Encode()
}

// metalpriceapi latest API response structure
type metalPriceAPIResponse struct {
	Success *bool                      `json:"success"`
	Base    string                     `json:"base"`
	Rates   map[string]decimal.Decimal `json:"rates"`
}

// FetchRates fetches the latest gold and silver prices.
func (p *MetalPriceAPISource) FetchRates(ctx context.Context) (MetalQuote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.getLatestURL(), http.NoBody)
	if err != nil {
		return MetalQuote{}, fmt.Errorf("metalpriceapi request creation failed: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return MetalQuote{}, fmt.Errorf("metalpriceapi request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return MetalQuote{}, fmt.Errorf("metalpriceapi returned status %d: %s: %w", resp.StatusCode, string(body), ErrBadStatus)
	}

	var result metalPriceAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return MetalQuote{}, fmt.Errorf("failed to decode metalpriceapi response: %v: %w", err, ErrParse)
	}
	if result.Success != nil && !*result.Success {
		return MetalQuote{}, fmt.Errorf("metalpriceapi returned success=false: %w", ErrBadPayload)
	}

	gold, err := p.pricePerGram(result.Rates, SymbolGold)
	if err != nil {
		return MetalQuote{}, err
	}
	silver, err := p.pricePerGram(result.Rates, SymbolSilver)
	if err != nil {
		return MetalQuote{}, err
	}

	return MetalQuote{
		Gold:      gold,
		Silver:    silver,
		Source:    p.Name(),
		FetchedAt: time.Now().UTC(),
	}, nil
}

// pricePerGram converts a quote into the base-currency price of one gram.
// The API quotes troy ounces of metal per unit of base currency under the bare
// symbol and, on most plans, the base-currency price of one ounce under base+symbol
// (e.g. INRXAU). The direct key wins when present.
func (p *MetalPriceAPISource) pricePerGram(rates map[string]decimal.Decimal, symbol string) (decimal.Decimal, error) {
	perOunce, ok := rates[p.base+symbol]
	if !ok {
		inverse, err := positiveRate(rates, symbol)
		if err != nil {
			return decimal.Zero, err
		}
		perOunce = decimal.NewFromInt(1).Div(inverse)
	}
	if !perOunce.IsPositive() {
		return decimal.Zero, fmt.Errorf("non-positive price %s for %s: %w", perOunce, symbol, ErrBadPayload)
	}

	perGram := perOunce.Div(gramsPerTroyOunce)
	if !perGram.Round(2).IsPositive() {
		return decimal.Zero, fmt.Errorf("price %s per gram for %s rounds to zero: %w", perGram, symbol, ErrBadPayload)
	}
	return perGram, nil
}

func positiveRate(rates map[string]decimal.Decimal, symbol string) (decimal.Decimal, error) {
	v, ok := rates[symbol]
	if !ok {
		return decimal.Zero, fmt.Errorf("no rate for %s in response: %w", symbol, ErrBadPayload)
	}
	if !v.IsPositive() {
		return decimal.Zero, fmt.Errorf("non-positive rate %s for %s: %w", v, symbol, ErrBadPayload)
	}
	return v, nil
}
